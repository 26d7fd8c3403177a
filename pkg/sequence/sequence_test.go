package sequence_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"

	"plenario/pkg/sequence"
)

func TestMemoryNextStartsAtOne(t *testing.T) {
	alloc := sequence.NewMemory()

	for want := 1; want <= 3; want++ {
		got, err := alloc.Next(context.Background(), nil, sequence.ScopeCase, 2026)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	}
}

func TestMemoryScopesIndependent(t *testing.T) {
	alloc := sequence.NewMemory()
	ctx := context.Background()

	if _, err := alloc.Next(ctx, nil, sequence.ScopeCase, 2026); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if _, err := alloc.Next(ctx, nil, sequence.ScopeCase, 2026); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	tests := []struct {
		name  string
		scope string
		year  int
	}{
		{name: "different scope", scope: sequence.ScopeDecision, year: 2026},
		{name: "different year", scope: sequence.ScopeCase, year: 2027},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := alloc.Next(ctx, nil, tt.scope, tt.year)
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			if got != 1 {
				t.Errorf("Next() = %d, want 1", got)
			}
		})
	}
}

func TestMemoryConcurrentAllocationIsGapless(t *testing.T) {
	const workers = 64

	alloc := sequence.NewMemory()

	var mu sync.Mutex
	issued := make([]int, 0, workers)

	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			n, err := alloc.Next(context.Background(), nil, sequence.ScopeDecision, 2026)
			if err != nil {
				return err
			}
			mu.Lock()
			issued = append(issued, n)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent allocation failed: %v", err)
	}

	sort.Ints(issued)
	for i, n := range issued {
		if n != i+1 {
			t.Fatalf("issued[%d] = %d, want %d: duplicates or gaps under concurrency", i, n, i+1)
		}
	}
}
