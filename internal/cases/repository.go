package cases

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"plenario/pkg/pagination"
	"plenario/pkg/query"
	"plenario/pkg/repository"
	"plenario/pkg/sequence"
)

type repo struct {
	db         *sql.DB
	sequences  sequence.Allocator
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a case registry repository implementing the System interface.
func New(
	db *sql.DB,
	sequences sequence.Allocator,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		sequences:  sequences,
		logger:     logger.With("system", "cases"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Case], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Classification")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count cases: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	cs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCase)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}

	result := pagination.NewPageResult(cs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Case, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCase)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Case, error) {
	if cmd.Year == 0 {
		cmd.Year = time.Now().Year()
	}
	if cmd.Classification == "" {
		return nil, fmt.Errorf("%w: classification required", ErrInvalid)
	}

	const q = `
		INSERT INTO cases(id, sequence, year, classification, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sequence, year, classification, status, archived, created_at, updated_at`

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		seq, err := r.sequences.Next(ctx, tx, sequence.ScopeCase, cmd.Year)
		if err != nil {
			return Case{}, err
		}

		args := []any{uuid.New(), seq, cmd.Year, cmd.Classification, StatusInAgenda}
		return repository.QueryOne(ctx, tx, q, args, scanCase)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case registered", "id", c.ID, "number", c.Number())
	return &c, nil
}

func (r *repo) SetStatus(ctx context.Context, id uuid.UUID, cmd StatusCommand) (*Case, error) {
	const lockQ = `
		SELECT status FROM cases WHERE id = $1 FOR UPDATE`

	const updateQ = `
		UPDATE cases
		SET status = $2, status_cause = NULLIF($3, ''), updated_at = now()
		WHERE id = $1
		RETURNING id, sequence, year, classification, status, archived, created_at, updated_at`

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		var current Status
		if err := tx.QueryRowContext(ctx, lockQ, id).Scan(&current); err != nil {
			return Case{}, err
		}

		if err := Transition(current, cmd); err != nil {
			return Case{}, err
		}

		return repository.QueryOne(
			ctx, tx, updateQ,
			[]any{id, cmd.Status, cmd.Cause},
			scanCase,
		)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case status changed", "id", id, "status", c.Status)
	return &c, nil
}

func (r *repo) Archive(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE cases SET archived = TRUE, updated_at = now() WHERE id = $1",
			id,
		)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case archived", "id", id)
	return nil
}
