package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"plenario/internal/events"
	"plenario/pkg/pagination"
)

// System defines notification list, item, and attempt operations. The
// tracker receives published decisions from the judgment core and emits
// nothing back into it.
type System interface {
	Lists(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[List], error)
	FindList(ctx context.Context, id uuid.UUID) (*List, error)
	CreateList(ctx context.Context, cmd CreateListCommand) (*List, error)
	Items(ctx context.Context, listID uuid.UUID) ([]Item, error)
	AddItem(ctx context.Context, listID uuid.UUID, cmd AddItemCommand) (*Item, error)
	Attempts(ctx context.Context, itemID uuid.UUID) ([]Attempt, error)
	AddAttempt(ctx context.Context, itemID uuid.UUID, cmd AddAttemptCommand) (*Attempt, error)
	SetAttemptStatus(ctx context.Context, attemptID uuid.UUID, target AttemptStatus) (*Attempt, error)
	ExpireSweep(ctx context.Context, now time.Time) (int, error)
	SeedPublished(ctx context.Context, evt events.DecisionPublished) error
	Handler() *Handler
}
