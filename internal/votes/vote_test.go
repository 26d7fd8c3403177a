package votes_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"plenario/internal/votes"
)

// One vote per member per case appearance: a rapporteur who has already
// voted cannot record again, while a reviewer voting for the first time
// passes the guard.
func TestGuardSingleVote(t *testing.T) {
	rapporteur := uuid.New()
	reviewer := uuid.New()

	recorded := []votes.Vote{
		{
			ID:            uuid.New(),
			MemberID:      rapporteur,
			Role:          votes.RoleRapporteur,
			KnowledgeType: votes.Knowledge,
			VoteText:      "Dar provimento ao recurso.",
		},
	}

	if err := votes.GuardSingleVote(recorded, rapporteur); !errors.Is(err, votes.ErrDuplicateVote) {
		t.Errorf("second vote by same member: error = %v, want ErrDuplicateVote", err)
	}

	if err := votes.GuardSingleVote(recorded, reviewer); err != nil {
		t.Errorf("first vote by reviewer: error = %v, want nil", err)
	}

	if err := votes.GuardSingleVote(nil, rapporteur); err != nil {
		t.Errorf("empty vote set: error = %v, want nil", err)
	}
}
