package decisions

import (
	"context"

	"github.com/google/uuid"

	"plenario/pkg/pagination"
)

// System defines decision emission, publication, and attachment operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Decision], error)
	Find(ctx context.Context, id uuid.UUID) (*Decision, error)
	FindByCase(ctx context.Context, caseID uuid.UUID) (*Decision, error)
	Emit(ctx context.Context, cmd EmitCommand) (*Decision, error)
	Publish(ctx context.Context, id uuid.UUID, cmd PublishCommand) (*Publication, error)
	Publications(ctx context.Context, id uuid.UUID) ([]Publication, error)
	AttachFile(ctx context.Context, id uuid.UUID, cmd AttachCommand) (*Decision, error)
	Handler(maxUploadSize int64) *Handler
}
