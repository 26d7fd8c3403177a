package distribution

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for distribution operations.
type System interface {
	Handler() *Handler

	// Assign creates or replaces the distribution for a case appearance.
	// It fails once any vote exists for the appearance.
	Assign(ctx context.Context, sessionCaseID uuid.UUID, cmd AssignCommand) (*Distribution, error)

	// Find returns the distribution for a case appearance.
	Find(ctx context.Context, sessionCaseID uuid.UUID) (*Distribution, error)
}
