package members

import (
	"context"

	"github.com/google/uuid"

	"plenario/pkg/pagination"
)

// System defines the read-only contract for directory lookups.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Member], error)

	Find(ctx context.Context, id uuid.UUID) (*Member, error)

	// AuthoritiesForCase returns the active registered authorities linked to a case.
	AuthoritiesForCase(ctx context.Context, caseID uuid.UUID) ([]Authority, error)
}
