package members

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"plenario/pkg/pagination"
	"plenario/pkg/query"
	"plenario/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a directory repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "members"),
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
) (*pagination.PageResult[Member], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	ms, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanMember)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}

	result := pagination.NewPageResult(ms, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Member, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	m, err := repository.QueryOne(ctx, r.db, q, args, scanMember)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalid)
	}
	return &m, nil
}

func (r *repo) AuthoritiesForCase(ctx context.Context, caseID uuid.UUID) ([]Authority, error) {
	active := true
	q, args := query.
		NewBuilder(authorityProjection).
		WhereEquals("CaseID", caseID).
		WhereEquals("Active", &active).
		Build()

	as, err := repository.QueryMany(ctx, r.db, q, args, scanAuthority)
	if err != nil {
		return nil, fmt.Errorf("query case authorities: %w", err)
	}
	return as, nil
}
