package sequence

import (
	"context"
	"database/sql"
	"sync"
)

type memoryKey struct {
	scope string
	year  int
}

// Memory is an in-process Allocator used by tests and by callers that have
// no database at hand. It ignores the transaction argument.
type Memory struct {
	mu       sync.Mutex
	counters map[memoryKey]int
}

// NewMemory creates an empty in-memory Allocator.
func NewMemory() *Memory {
	return &Memory{
		counters: make(map[memoryKey]int),
	}
}

// Next returns the next value for (scope, year), starting at 1.
func (m *Memory) Next(_ context.Context, _ *sql.Tx, scope string, year int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memoryKey{scope: scope, year: year}
	m.counters[key]++
	return m.counters[key], nil
}
