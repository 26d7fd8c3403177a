package decisions

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"plenario/internal/cases"
	"plenario/internal/events"
	"plenario/pkg/pagination"
	"plenario/pkg/query"
	"plenario/pkg/repository"
	"plenario/pkg/sequence"
	"plenario/pkg/storage"
)

type repo struct {
	db         *sql.DB
	sequences  sequence.Allocator
	files      storage.System
	bus        *events.Bus
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a decision emitter repository implementing the System interface.
func New(
	db *sql.DB,
	sequences sequence.Allocator,
	files storage.System,
	bus *events.Bus,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		sequences:  sequences,
		files:      files,
		bus:        bus,
		logger:     logger.With("system", "decisions"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Decision], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "EmentaTitle")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count decisions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	ds, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDecision)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}

	result := pagination.NewPageResult(ds, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Decision, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDecision)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrAlreadyEmitted)
	}
	return &d, nil
}

func (r *repo) FindByCase(ctx context.Context, caseID uuid.UUID) (*Decision, error) {
	q, args := query.NewBuilder(projection).BuildSingle("CaseID", caseID)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDecision)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrAlreadyEmitted)
	}
	return &d, nil
}

const decisionColumns = `
	id, case_id, sequence, year, ementa_title, ementa_body,
	vote_file_key, decision_file_key, emitted_at, updated_at`

// Emit drafts the decision record for a judged case. The case row is
// locked so a concurrent emission for the same case observes the
// existing decision instead of allocating a second number.
func (r *repo) Emit(ctx context.Context, cmd EmitCommand) (*Decision, error) {
	if cmd.EmentaTitle == "" {
		return nil, fmt.Errorf("%w: ementa title required", ErrInvalid)
	}

	const insertQ = `
		INSERT INTO decisions(id, case_id, sequence, year, ementa_title, ementa_body)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING` + decisionColumns

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Decision, error) {
		var status cases.Status
		err := tx.
			QueryRowContext(ctx, "SELECT status FROM cases WHERE id = $1 FOR UPDATE", cmd.CaseID).
			Scan(&status)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return Decision{}, ErrCaseNotFound
			}
			return Decision{}, err
		}

		if status != cases.StatusJudged {
			return Decision{}, ErrCaseNotJudged
		}

		var emitted bool
		err = tx.
			QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM decisions WHERE case_id = $1)", cmd.CaseID).
			Scan(&emitted)
		if err != nil {
			return Decision{}, err
		}
		if emitted {
			return Decision{}, ErrAlreadyEmitted
		}

		year := time.Now().Year()
		seq, err := r.sequences.Next(ctx, tx, sequence.ScopeDecision, year)
		if err != nil {
			return Decision{}, err
		}

		args := []any{uuid.New(), cmd.CaseID, seq, year, cmd.EmentaTitle, cmd.EmentaBody}
		return repository.QueryOne(ctx, tx, insertQ, args, scanDecision)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrAlreadyEmitted)
	}

	r.logger.Info("decision emitted", "id", d.ID, "case", d.CaseID, "number", d.Number())
	return &d, nil
}

const publicationColumns = `
	id, decision_id, publication_order, number, published_at`

// Publish appends a publication entry for a decision and announces it on
// the event bus. Ordering is serialized on the decision row.
func (r *repo) Publish(ctx context.Context, id uuid.UUID, cmd PublishCommand) (*Publication, error) {
	if cmd.Number == "" {
		return nil, fmt.Errorf("%w: publication number required", ErrInvalid)
	}
	if cmd.PublishedAt.IsZero() {
		cmd.PublishedAt = time.Now()
	}

	const insertQ = `
		INSERT INTO publications(id, decision_id, publication_order, number, published_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING` + publicationColumns

	const existingQ = `
		SELECT` + publicationColumns + `
		FROM publications
		WHERE decision_id = $1
		ORDER BY publication_order`

	var d Decision
	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Publication, error) {
		row := tx.QueryRowContext(
			ctx,
			"SELECT"+decisionColumns+" FROM decisions WHERE id = $1 FOR UPDATE",
			id,
		)

		var err error
		if d, err = scanDecision(row); err != nil {
			return Publication{}, err
		}

		existing, err := repository.QueryMany(ctx, tx, existingQ, []any{id}, scanPublication)
		if err != nil {
			return Publication{}, err
		}

		args := []any{uuid.New(), id, NextPublicationOrder(existing), cmd.Number, cmd.PublishedAt}
		return repository.QueryOne(ctx, tx, insertQ, args, scanPublication)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalid)
	}

	r.bus.Publish(events.New(events.TypeDecisionPublished, events.DecisionPublished{
		CaseID:         d.CaseID,
		DecisionID:     d.ID,
		DecisionNumber: d.Number(),
		PublishedAt:    p.PublishedAt,
	}))

	r.logger.Info(
		"decision published",
		"id", d.ID,
		"number", d.Number(),
		"order", p.PublicationOrder,
	)
	return &p, nil
}

func (r *repo) Publications(ctx context.Context, id uuid.UUID) ([]Publication, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	const q = `
		SELECT` + publicationColumns + `
		FROM publications
		WHERE decision_id = $1
		ORDER BY publication_order`

	ps, err := repository.QueryMany(ctx, r.db, q, []any{id}, scanPublication)
	if err != nil {
		return nil, fmt.Errorf("query publications: %w", err)
	}
	return ps, nil
}

// AttachFile validates an uploaded PDF, stores it in blob storage, and
// records the blob key on the decision.
func (r *repo) AttachFile(ctx context.Context, id uuid.UUID, cmd AttachCommand) (*Decision, error) {
	if !cmd.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown attachment kind %q", ErrInvalid, cmd.Kind)
	}
	if len(cmd.Data) == 0 {
		return nil, ErrInvalidFile
	}

	pages, err := api.PageCount(bytes.NewReader(cmd.Data), nil)
	if err != nil || pages < 1 {
		return nil, ErrNotPDF
	}

	key := fmt.Sprintf("decisions/%s/%s.pdf", id, cmd.Kind)
	if err := r.files.Upload(ctx, key, bytes.NewReader(cmd.Data), "application/pdf"); err != nil {
		return nil, fmt.Errorf("store decision file: %w", err)
	}

	column := "vote_file_key"
	if cmd.Kind == FileDecision {
		column = "decision_file_key"
	}

	updateQ := fmt.Sprintf(`
		UPDATE decisions
		SET %s = $2, updated_at = now()
		WHERE id = $1
		RETURNING`+decisionColumns, column)

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Decision, error) {
		return repository.QueryOne(ctx, tx, updateQ, []any{id, key}, scanDecision)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalid)
	}

	r.logger.Info("decision file attached", "id", id, "kind", cmd.Kind, "pages", pages)
	return &d, nil
}
