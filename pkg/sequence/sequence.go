// Package sequence provides atomic, year-scoped sequence number allocation.
// Case numbers, session numbers, and decision numbers are all issued as
// (sequence, year) pairs that must be gapless and collision-free under
// concurrent allocation.
package sequence

import (
	"context"
	"database/sql"
	"fmt"
)

// Allocator issues the next sequence number for a named scope within a year.
// Implementations must guarantee that two concurrent calls for the same
// (scope, year) never return the same value.
type Allocator interface {
	Next(ctx context.Context, tx *sql.Tx, scope string, year int) (int, error)
}

// Scopes issued by the judgment core.
const (
	ScopeCase     = "case"
	ScopeSession  = "session"
	ScopeDecision = "decision"
)

type postgres struct{}

// NewPostgres creates an Allocator backed by the sequence_counters table.
// Allocation uses INSERT ... ON CONFLICT DO UPDATE, which serializes
// concurrent callers on the counter row for the duration of the enclosing
// transaction.
func NewPostgres() Allocator {
	return postgres{}
}

func (postgres) Next(ctx context.Context, tx *sql.Tx, scope string, year int) (int, error) {
	const q = `
		INSERT INTO sequence_counters (scope, year, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (scope, year)
		DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value`

	var value int
	if err := tx.QueryRowContext(ctx, q, scope, year).Scan(&value); err != nil {
		return 0, fmt.Errorf("allocate %s sequence for %d: %w", scope, year, err)
	}

	return value, nil
}
