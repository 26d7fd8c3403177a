package cases

import (
	"context"

	"github.com/google/uuid"

	"plenario/pkg/pagination"
)

// System defines the public contract for case registry operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Case], error)

	Find(ctx context.Context, id uuid.UUID) (*Case, error)
	Create(ctx context.Context, cmd CreateCommand) (*Case, error)

	// SetStatus applies a guarded status change to the registry entry.
	// Session scheduling and decision emission are the expected callers.
	SetStatus(ctx context.Context, id uuid.UUID, cmd StatusCommand) (*Case, error)

	// Archive soft-archives a case. Cases are never destroyed.
	Archive(ctx context.Context, id uuid.UUID) error
}
