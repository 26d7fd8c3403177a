package votes

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for vote operations.
type System interface {
	Handler() *Handler

	// Record casts a member's vote on a case appearance, deriving the role
	// from the distribution and materializing the vote text. Recording a
	// vote never concludes the case; judgment is a separate confirmation
	// through the session scheduler.
	Record(ctx context.Context, sessionCaseID uuid.UUID, cmd RecordCommand) (*Vote, error)

	// Update edits an existing vote while its session is open.
	Update(ctx context.Context, voteID uuid.UUID, cmd UpdateCommand) (*Vote, error)

	// Find returns a single vote with its derived role.
	Find(ctx context.Context, voteID uuid.UUID) (*Vote, error)

	// ListForCase returns all votes of a case appearance in recording order.
	ListForCase(ctx context.Context, sessionCaseID uuid.UUID) ([]Vote, error)

	// Templates returns the active decision template catalog, optionally
	// restricted to one kind.
	Templates(ctx context.Context, kind *TemplateKind) ([]Template, error)
}
