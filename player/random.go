package player

import (
	"nim/utils"

	"golang.org/x/exp/rand"
)

// Random picks a uniformly random successor.
type Random struct {
	Ledger
	name string
	rng  *rand.Rand
}

func NewRandom(name string, rng *rand.Rand) *Random {
	if rng == nil {
		panic("random player needs a random source")
	}
	return &Random{name: name, rng: rng}
}

func (p *Random) Name() string {
	return p.name
}

func (p *Random) Play(state int, successors []int) (int, error) {
	return utils.Choice(p.rng, successors), nil
}
