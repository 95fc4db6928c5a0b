package player

// Player is anything that can take a turn in a game: a person at a terminal,
// a fixed or random baseline, or a learning agent.
type Player interface {
	// Name identifies the player in logs and errors.
	Name() string
	// Play picks one of the offered successor piles. Successors is never empty
	// and may contain duplicates, which count as separate choices.
	Play(state int, successors []int) (int, error)
	// TurnFinished is called for both players after every move.
	TurnFinished(isSelf, isTerminal bool, previous, next, action int)
	// ResetGameHistory drops the transitions of the current game.
	ResetGameHistory()
	// ResetStatistics clears win and loss counts and the reward log.
	ResetStatistics()
	// Stats returns a copy of the statistics gathered so far.
	Stats() Stats
}

// Fixed always takes the first offered successor.
type Fixed struct {
	Ledger
	name string
}

func NewFixed(name string) *Fixed {
	return &Fixed{name: name}
}

func (p *Fixed) Name() string {
	return p.name
}

func (p *Fixed) Play(state int, successors []int) (int, error) {
	return successors[0], nil
}
