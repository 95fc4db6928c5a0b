package game

import "fmt"

// Rules configures a game: how many sticks a pile starts with and how many
// sticks a player may take on one turn. Actions keep their configured order,
// which is the order successors are offered to players.
type Rules struct {
	PileSize int
	Actions  []int
}

// Validate reports a ConfigurationError when no game can be played under r.
func (r Rules) Validate() error {
	if r.PileSize <= 0 {
		return &ConfigurationError{Field: "pile size", Reason: fmt.Sprintf("must be positive, got %d", r.PileSize)}
	}
	if len(r.Actions) == 0 {
		return &ConfigurationError{Field: "actions", Reason: "no allowed actions"}
	}
	for _, a := range r.Actions {
		if a <= 0 {
			return &ConfigurationError{Field: "actions", Reason: fmt.Sprintf("action %d is not positive", a)}
		}
	}
	return nil
}

// Successors lists the pile after each allowed action, in action order.
// Piles at or below zero are kept: reaching them is what ends a game.
// Duplicates are kept too, each one is a distinct choice.
func (r Rules) Successors(pile int) []int {
	successors := make([]int, len(r.Actions))
	for i, a := range r.Actions {
		successors[i] = pile - a
	}
	return successors
}

// IsTerminal reports whether a pile ends the game.
func IsTerminal(pile int) bool {
	return pile <= 0
}
