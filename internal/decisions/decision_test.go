package decisions_test

import (
	"testing"

	"plenario/internal/decisions"
)

func TestDecisionNumber(t *testing.T) {
	d := decisions.Decision{Sequence: 42, Year: 2026}
	if got := d.Number(); got != "42/2026" {
		t.Errorf("Number() = %q, want 42/2026", got)
	}
}

func TestNextPublicationOrder(t *testing.T) {
	tests := []struct {
		name     string
		existing []decisions.Publication
		want     int
	}{
		{name: "first publication", existing: nil, want: 1},
		{
			name:     "republication follows first",
			existing: []decisions.Publication{{PublicationOrder: 1}},
			want:     2,
		},
		{
			name: "appends after highest order",
			existing: []decisions.Publication{
				{PublicationOrder: 1},
				{PublicationOrder: 2},
				{PublicationOrder: 3},
			},
			want: 4,
		},
		{
			name: "never reuses an earlier order",
			existing: []decisions.Publication{
				{PublicationOrder: 1},
				{PublicationOrder: 5},
			},
			want: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decisions.NextPublicationOrder(tt.existing); got != tt.want {
				t.Errorf("NextPublicationOrder() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFileKindValid(t *testing.T) {
	tests := []struct {
		kind decisions.FileKind
		want bool
	}{
		{kind: decisions.FileVote, want: true},
		{kind: decisions.FileDecision, want: true},
		{kind: "minutes", want: false},
		{kind: "", want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
