package game

import "nim/meta"

// NewStandardRules returns the classic 24 stick game where a player takes one
// to three sticks per turn.
func NewStandardRules() Rules {
	actions := make([]int, len(meta.ACTIONS))
	copy(actions, meta.ACTIONS)
	return Rules{
		PileSize: meta.PILE_SIZE,
		Actions:  actions,
	}
}
