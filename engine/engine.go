package engine

import "errors"

// ErrGameOver is returned when a move is requested from a finished game.
var ErrGameOver = errors.New("game is over - no moves allowed")

// Status is the phase of a game.
type Status int

const (
	InProgress Status = iota
	Finished
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Turn describes one move, as reported to observers.
type Turn struct {
	Player   int // Index of the mover
	Previous int
	Next     int
	Action   int
	Terminal bool
}

// Observer is called after every move.
type Observer func(Turn)
