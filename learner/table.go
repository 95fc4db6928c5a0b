package learner

import "sync"

// ValueTable maps a pile to how good it is for the player about to move from
// it. Piles never written are worth 0. The table is safe for concurrent use.
type ValueTable struct {
	mu     sync.RWMutex
	values map[int]float64
}

func NewValueTable() *ValueTable {
	return &ValueTable{values: make(map[int]float64)}
}

// NewValueTableFrom copies values into a new table.
func NewValueTableFrom(values map[int]float64) *ValueTable {
	t := &ValueTable{values: make(map[int]float64, len(values))}
	for state, v := range values {
		t.values[state] = v
	}
	return t
}

// Get returns the value of state, or 0 if it was never written.
func (t *ValueTable) Get(state int) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.values[state]
}

func (t *ValueTable) Set(state int, value float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.values[state] = value
}

func (t *ValueTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}

// Snapshot returns a copy of all written values.
func (t *ValueTable) Snapshot() map[int]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	values := make(map[int]float64, len(t.values))
	for state, v := range t.values {
		values[state] = v
	}
	return values
}

// update applies fn to a single entry under the write lock.
func (t *ValueTable) update(state int, fn func(v float64) float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.values[state] = fn(t.values[state])
}
