package sessions

import (
	"context"

	"github.com/google/uuid"

	"plenario/pkg/pagination"
)

// System defines the public contract for session scheduling operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Session], error)

	Find(ctx context.Context, id uuid.UUID) (*Session, error)
	Create(ctx context.Context, cmd CreateCommand) (*Session, error)

	// SetStatus advances the session lifecycle (publish agenda, start,
	// conclude, cancel) under the transition guard.
	SetStatus(ctx context.Context, id uuid.UUID, target Status) (*Session, error)

	// Agenda returns the ordered appearances of a session.
	Agenda(ctx context.Context, id uuid.UUID) ([]SessionCase, error)

	// AddCase places a case at the end of the agenda, creating a new
	// appearance and returning the registry entry to IN_AGENDA.
	AddCase(ctx context.Context, id uuid.UUID, cmd AgendaCommand) (*SessionCase, error)

	// RemoveCase drops an appearance that has not been judged.
	RemoveCase(ctx context.Context, id, sessionCaseID uuid.UUID) error

	// ReorderAgenda applies a full ordering of the session's appearance ids.
	ReorderAgenda(ctx context.Context, id uuid.UUID, ordered []uuid.UUID) error

	// SetCaseStatus applies a guarded status change to one appearance,
	// mirroring the result onto the case registry entry.
	SetCaseStatus(ctx context.Context, sessionCaseID uuid.UUID, cmd CaseStatusCommand) (*SessionCase, error)

	// FindCase returns a single appearance.
	FindCase(ctx context.Context, sessionCaseID uuid.UUID) (*SessionCase, error)

	// Attendance returns the member ids registered as present.
	Attendance(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)

	// RegisterAttendance replaces the attendance list of a session.
	RegisterAttendance(ctx context.Context, id uuid.UUID, memberIDs []uuid.UUID) error

	// Progress derives the agenda completion of a session.
	Progress(ctx context.Context, id uuid.UUID) (*Progress, error)
}
