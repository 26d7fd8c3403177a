package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"plenario/internal/events"
	"plenario/pkg/pagination"
	"plenario/pkg/query"
	"plenario/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a notification tracker repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "notifications"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Lists(
	ctx context.Context,
	page pagination.PageRequest,
) (*pagination.PageResult[List], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(listProjection, listDefaultSort).
		WhereSearch(page.Search, "Title")

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count notification lists: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	ls, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanList)
	if err != nil {
		return nil, fmt.Errorf("query notification lists: %w", err)
	}

	result := pagination.NewPageResult(ls, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) FindList(ctx context.Context, id uuid.UUID) (*List, error) {
	q, args := query.NewBuilder(listProjection).BuildSingle("ID", id)

	l, err := repository.QueryOne(ctx, r.db, q, args, scanList)
	if err != nil {
		return nil, repository.MapError(err, ErrListNotFound, ErrInvalid)
	}
	return &l, nil
}

func (r *repo) CreateList(ctx context.Context, cmd CreateListCommand) (*List, error) {
	if cmd.Title == "" {
		return nil, fmt.Errorf("%w: title required", ErrInvalid)
	}

	const q = `
		INSERT INTO notification_lists(id, title)
		VALUES ($1, $2)
		RETURNING id, title, created_at`

	l, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (List, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), cmd.Title}, scanList)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrListNotFound, ErrInvalid)
	}

	r.logger.Info("notification list created", "id", l.ID, "title", l.Title)
	return &l, nil
}

const itemColumns = `
	id, list_id, case_id, decision_number, created_at`

func (r *repo) Items(ctx context.Context, listID uuid.UUID) ([]Item, error) {
	if _, err := r.FindList(ctx, listID); err != nil {
		return nil, err
	}

	const q = `
		SELECT` + itemColumns + `
		FROM notification_items
		WHERE list_id = $1
		ORDER BY created_at`

	is, err := repository.QueryMany(ctx, r.db, q, []any{listID}, scanItem)
	if err != nil {
		return nil, fmt.Errorf("query notification items: %w", err)
	}
	return is, nil
}

func (r *repo) AddItem(ctx context.Context, listID uuid.UUID, cmd AddItemCommand) (*Item, error) {
	const q = `
		INSERT INTO notification_items(id, list_id, case_id, decision_number)
		VALUES ($1, $2, $3, $4)
		RETURNING` + itemColumns

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Item, error) {
		return repository.QueryOne(
			ctx, tx, q,
			[]any{uuid.New(), listID, cmd.CaseID, cmd.DecisionNumber},
			scanItem,
		)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrListNotFound, ErrDuplicateItem)
	}

	r.logger.Info("notification item added", "list", listID, "case", cmd.CaseID)
	return &i, nil
}

const attemptColumns = `
	id, item_id, channel, deadline, status, confirmed_at, created_at, updated_at`

func (r *repo) Attempts(ctx context.Context, itemID uuid.UUID) ([]Attempt, error) {
	const q = `
		SELECT` + attemptColumns + `
		FROM notification_attempts
		WHERE item_id = $1
		ORDER BY created_at`

	as, err := repository.QueryMany(ctx, r.db, q, []any{itemID}, scanAttempt)
	if err != nil {
		return nil, fmt.Errorf("query notification attempts: %w", err)
	}
	return as, nil
}

func (r *repo) AddAttempt(ctx context.Context, itemID uuid.UUID, cmd AddAttemptCommand) (*Attempt, error) {
	if !cmd.Channel.Valid() {
		return nil, fmt.Errorf("%w: unknown channel %q", ErrInvalid, cmd.Channel)
	}

	const q = `
		INSERT INTO notification_attempts(id, item_id, channel, deadline, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING` + attemptColumns

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Attempt, error) {
		var exists bool
		err := tx.
			QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM notification_items WHERE id = $1)", itemID).
			Scan(&exists)
		if err != nil {
			return Attempt{}, err
		}
		if !exists {
			return Attempt{}, ErrItemNotFound
		}

		return repository.QueryOne(
			ctx, tx, q,
			[]any{uuid.New(), itemID, cmd.Channel, cmd.Deadline, StatusPending},
			scanAttempt,
		)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrItemNotFound, ErrInvalid)
	}

	r.logger.Info("notification attempt opened", "item", itemID, "channel", cmd.Channel)
	return &a, nil
}

// SetAttemptStatus applies a guarded status change to an attempt. The
// attempt row is locked so concurrent outcome reports cannot both win.
func (r *repo) SetAttemptStatus(
	ctx context.Context,
	attemptID uuid.UUID,
	target AttemptStatus,
) (*Attempt, error) {
	const updateQ = `
		UPDATE notification_attempts
		SET status = $2,
			confirmed_at = CASE WHEN $2 = 'CONFIRMED' THEN now() ELSE confirmed_at END,
			updated_at = now()
		WHERE id = $1
		RETURNING` + attemptColumns

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Attempt, error) {
		row := tx.QueryRowContext(
			ctx,
			"SELECT"+attemptColumns+" FROM notification_attempts WHERE id = $1 FOR UPDATE",
			attemptID,
		)

		current, err := scanAttempt(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return Attempt{}, ErrAttemptNotFound
			}
			return Attempt{}, err
		}

		if err := Transition(current.Status, target, current.Deadline, time.Now()); err != nil {
			return Attempt{}, err
		}

		return repository.QueryOne(ctx, tx, updateQ, []any{attemptID, target}, scanAttempt)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrAttemptNotFound, ErrInvalid)
	}

	r.logger.Info("notification attempt updated", "id", attemptID, "status", a.Status)
	return &a, nil
}

// ExpireSweep marks every open attempt whose deadline has passed as
// expired and returns the number of attempts affected. Invoked as an
// explicit operation rather than a background worker.
func (r *repo) ExpireSweep(ctx context.Context, now time.Time) (int, error) {
	const q = `
		UPDATE notification_attempts
		SET status = $2, updated_at = now()
		WHERE status IN ($3, $4)
			AND deadline IS NOT NULL
			AND deadline < $1`

	count, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		result, err := tx.ExecContext(ctx, q, now, StatusExpired, StatusPending, StatusDelivered)
		if err != nil {
			return 0, err
		}

		affected, err := result.RowsAffected()
		return int(affected), err
	})
	if err != nil {
		return 0, fmt.Errorf("expire notification attempts: %w", err)
	}

	if count > 0 {
		r.logger.Info("notification attempts expired", "count", count)
	}
	return count, nil
}

// SeedPublished enrolls a freshly published decision in the notification
// list for its publication day, creating the list on first use. Safe to
// replay; a case already enrolled in the day's list is skipped.
func (r *repo) SeedPublished(ctx context.Context, evt events.DecisionPublished) error {
	title := fmt.Sprintf("Publicações %s", evt.PublishedAt.Format("02/01/2006"))

	const listQ = `
		INSERT INTO notification_lists(id, title)
		VALUES ($1, $2)
		ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
		RETURNING id, title, created_at`

	const itemQ = `
		INSERT INTO notification_items(id, list_id, case_id, decision_number)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (list_id, case_id) DO NOTHING`

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		l, err := repository.QueryOne(ctx, tx, listQ, []any{uuid.New(), title}, scanList)
		if err != nil {
			return struct{}{}, err
		}

		_, err = tx.ExecContext(ctx, itemQ, uuid.New(), l.ID, evt.CaseID, evt.DecisionNumber)
		return struct{}{}, err
	})
	if err != nil {
		return fmt.Errorf("seed notification for decision %s: %w", evt.DecisionNumber, err)
	}

	r.logger.Info(
		"published decision enrolled for notification",
		"case", evt.CaseID,
		"decision", evt.DecisionNumber,
	)
	return nil
}
