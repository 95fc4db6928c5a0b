package engine

import (
	"fmt"

	"nim/game"
	"nim/player"
	"nim/utils"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		if observer != nil {
			e.observers = append(e.observers, observer)
		}
	}
}

// Engine runs games between two players, alternating turns over a shared pile.
type Engine struct {
	rules     game.Rules
	players   [2]player.Player
	pile      int
	status    Status
	active    int
	observers []Observer
}

// New validates rules and returns an engine ready to Restart.
func New(rules game.Rules, players [2]player.Player, options ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	for i, p := range players {
		if p == nil {
			return nil, &game.ConfigurationError{Field: "players", Reason: fmt.Sprintf("player %d is missing", i)}
		}
	}
	e := &Engine{
		rules:   rules,
		players: players,
		pile:    rules.PileSize,
		status:  Finished,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Restart sets up a new game where players[first] moves first.
func (e *Engine) Restart(first int) error {
	if first != 0 && first != 1 {
		return &game.ConfigurationError{Field: "starting player", Reason: fmt.Sprintf("must be 0 or 1, got %d", first)}
	}
	e.pile = e.rules.PileSize
	e.status = InProgress
	e.active = first
	for _, p := range e.players {
		p.ResetGameHistory()
	}
	return nil
}

// Step asks the active player for a move, applies it and notifies both
// players. The turn passes to the other player even after the final move.
func (e *Engine) Step() error {
	if e.status == Finished {
		return ErrGameOver
	}

	mover := e.players[e.active]
	opponent := e.players[1-e.active]

	successors := e.rules.Successors(e.pile)
	if len(successors) == 0 {
		return &game.ConfigurationError{Field: "actions", Reason: "no legal successors"}
	}

	next, err := mover.Play(e.pile, successors)
	if err != nil {
		return fmt.Errorf("player %s failed to move: %w", mover.Name(), err)
	}
	if utils.FindIndex(successors, next) == -1 {
		return &game.ContractViolationError{Player: mover.Name(), Returned: next, Offered: successors}
	}

	previous := e.pile
	action := previous - next
	e.pile = next
	terminal := game.IsTerminal(next)
	if terminal {
		e.status = Finished
	}

	log.Debug().Msgf("player %s took %d: %d -> %d", mover.Name(), action, previous, next)

	mover.TurnFinished(true, terminal, previous, next, action)
	opponent.TurnFinished(false, terminal, previous, next, action)

	turn := Turn{Player: e.active, Previous: previous, Next: next, Action: action, Terminal: terminal}
	for _, observe := range e.observers {
		observe(turn)
	}

	e.active = 1 - e.active
	return nil
}

// Run plays the current game to the end. It returns the index of the winner,
// the player who did not take the last stick, and the number of moves played.
// When the first move already ends the game, the winner never moved and so
// has no transition to reward: its Stats record no win for that game.
func (e *Engine) Run() (winner int, moves int, err error) {
	if e.status == Finished {
		return -1, 0, ErrGameOver
	}
	for e.status == InProgress {
		if err := e.Step(); err != nil {
			return -1, moves, err
		}
		moves++
	}
	// The pointer has already flipped past the player who took the last stick.
	return e.active, moves, nil
}

func (e *Engine) Pile() int {
	return e.pile
}

func (e *Engine) Status() Status {
	return e.status
}

// Active returns the index of the player to move next.
func (e *Engine) Active() int {
	return e.active
}

func (e *Engine) Players() [2]player.Player {
	return e.players
}

func (e *Engine) Rules() game.Rules {
	return e.rules
}
