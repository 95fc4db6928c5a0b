package utils

import "golang.org/x/exp/rand"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// NewRand returns a random source seeded with seed, so training and evaluation
// runs can be reproduced.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Choice returns a uniformly random element of items.
func Choice[T any](rng *rand.Rand, items []T) T {
	if len(items) == 0 {
		panic("cannot choose from an empty slice")
	}
	return items[rng.Intn(len(items))]
}
