package distribution_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"plenario/internal/distribution"
	"plenario/internal/members"
)

// Mirrors the canonical assignment flow: a case with one registered
// authority accepts an unrelated rapporteur and reviewer, then rejects a
// redistribution that would seat the authority as rapporteur.
func TestAssignmentScenario(t *testing.T) {
	alice := members.Authority{Name: "Alice", Active: true}
	authorities := []members.Authority{alice}

	bob := distribution.Assignee{ID: uuid.New(), Name: "Bob"}
	carol := distribution.Assignee{ID: uuid.New(), Name: "Carol"}

	if err := distribution.CheckEligibility(
		[]distribution.Assignee{bob, carol},
		authorities,
	); err != nil {
		t.Fatalf("initial distribution rejected: %v", err)
	}

	redistribution := []distribution.Assignee{
		{ID: uuid.New(), Name: "Alice"},
		carol,
	}
	err := distribution.CheckEligibility(redistribution, authorities)
	if !errors.Is(err, distribution.ErrAuthorityConflict) {
		t.Fatalf("redistribution error = %v, want ErrAuthorityConflict", err)
	}
}
