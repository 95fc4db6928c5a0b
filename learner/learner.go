// Package learner implements a tabular temporal-difference player that learns
// the stick game from its own games.
package learner

import (
	"nim/player"
	"nim/utils"

	"golang.org/x/exp/rand"
)

type Option func(l *Learner)

func WithAlpha(alpha float64) Option {
	return func(l *Learner) {
		l.alpha = alpha
	}
}

func WithEpsilon(epsilon float64) Option {
	return func(l *Learner) {
		l.epsilon = epsilon
	}
}

// WithTable makes the learner read and update table, which may be shared with
// other learners.
func WithTable(table *ValueTable) Option {
	return func(l *Learner) {
		if table != nil {
			l.table = table
		}
	}
}

func WithName(name string) Option {
	return func(l *Learner) {
		l.name = name
	}
}

// Learner plays epsilon-greedily against its value table and updates the
// table from the transitions of each finished game.
type Learner struct {
	player.Ledger
	name    string
	table   *ValueTable
	alpha   float64
	epsilon float64
	rng     *rand.Rand
}

func New(rng *rand.Rand, options ...Option) *Learner {
	l := &Learner{ // Default values
		name:    "learner",
		alpha:   0.1,
		epsilon: 0.1,
		rng:     rng,
	}
	for _, option := range options {
		option(l)
	}
	if l.rng == nil {
		panic("learner needs a random source")
	}
	if l.alpha <= 0 {
		panic("alpha must be positive")
	}
	if l.epsilon < 0 || l.epsilon > 1 {
		panic("epsilon must be within [0, 1]")
	}
	if l.table == nil {
		l.table = NewValueTable()
	}
	return l
}

func (l *Learner) Name() string {
	return l.name
}

// Play explores with probability epsilon, otherwise it leaves the opponent the
// pile with the lowest value. Ties go to the first offered successor.
func (l *Learner) Play(state int, successors []int) (int, error) {
	if l.rng.Float64() < l.epsilon {
		return utils.Choice(l.rng, successors), nil
	}
	best := successors[0]
	bestValue := l.table.Get(best)
	for _, next := range successors[1:] {
		if v := l.table.Get(next); v < bestValue {
			best = next
			bestValue = v
		}
	}
	return best, nil
}

// Train updates the value table from the current game, newest transition
// first, and clears the game history.
func (l *Learner) Train() {
	Update(l.table, l.History(), l.alpha)
	l.ResetGameHistory()
}

// Update applies one pass of the value update over history in reverse order.
// Terminal transitions move toward their reward, the others toward the value
// of the pile the player faced next.
func Update(table *ValueTable, history []player.Transition, alpha float64) {
	for i := len(history) - 1; i >= 0; i-- {
		t := history[i]
		if t.Reward == player.Neutral && t.Pending {
			continue
		}
		if t.Reward == player.Neutral {
			target := table.Get(t.Next)
			table.update(t.Previous, func(v float64) float64 {
				return v + alpha*(target-v)
			})
			continue
		}
		reward := float64(t.Reward)
		table.update(t.Previous, func(v float64) float64 {
			return v + alpha*(reward-v)
		})
	}
}

func (l *Learner) SetEpsilon(epsilon float64) {
	if epsilon < 0 || epsilon > 1 {
		panic("epsilon must be within [0, 1]")
	}
	l.epsilon = epsilon
}

func (l *Learner) Epsilon() float64 {
	return l.epsilon
}

func (l *Learner) Alpha() float64 {
	return l.alpha
}

func (l *Learner) Table() *ValueTable {
	return l.table
}
