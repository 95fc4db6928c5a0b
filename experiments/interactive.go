package experiments

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"nim/engine"
	"nim/game"
	"nim/learner"
	"nim/player"
	"nim/utils"
)

// Emitter displays a line of text.
type Emitter interface {
	Emit(text string)
}

type InteractiveConfig struct {
	Rules      game.Rules
	Seed       uint64
	HumanFirst bool
}

// Interactive lets a person play against a greedy learner reading table until
// they decline another game or close the input. It returns the person's
// statistics.
func Interactive(cfg InteractiveConfig, table *learner.ValueTable, prompter player.Prompter, out Emitter) (player.Stats, error) {
	human := player.NewHuman("you", prompter)
	agent := learner.New(utils.NewRand(cfg.Seed), learner.WithName("computer"), learner.WithEpsilon(0), learner.WithTable(table))

	var e *engine.Engine
	report := func(turn engine.Turn) {
		left := max(turn.Next, 0)
		out.Emit(fmt.Sprintf("%s took %d, %d left", e.Players()[turn.Player].Name(), turn.Action, left))
		if !turn.Terminal {
			out.Emit(game.RenderPile(turn.Next))
		}
	}
	e, err := engine.New(cfg.Rules, [2]player.Player{human, agent}, engine.WithObserver(report))
	if err != nil {
		return player.Stats{}, err
	}

	first := 1
	if cfg.HumanFirst {
		first = 0
	}
	for {
		if err := e.Restart(first); err != nil {
			return human.Stats(), err
		}
		out.Emit(fmt.Sprintf("New game with %d sticks. Whoever takes the last stick loses.", e.Rules().PileSize))
		out.Emit(game.RenderPile(e.Pile()))

		winner, _, err := e.Run()
		if errors.Is(err, io.EOF) {
			out.Emit("Input closed, stopping.")
			break
		} else if err != nil {
			return human.Stats(), err
		}
		if winner == 0 {
			out.Emit("You win!")
		} else {
			out.Emit("You lose!")
		}

		answer, err := prompter.Prompt("Play again? [y/N] ")
		if err != nil || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			break
		}
		first = 1 - first
	}

	stats := human.Stats()
	out.Emit(fmt.Sprintf("Games won: %d, lost: %d", stats.Wins, stats.Losses))
	return stats, nil
}
