package sessions

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"plenario/internal/cases"
	"plenario/internal/events"
	"plenario/pkg/pagination"
	"plenario/pkg/query"
	"plenario/pkg/repository"
	"plenario/pkg/sequence"
)

type repo struct {
	db         *sql.DB
	sequences  sequence.Allocator
	bus        *events.Bus
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a session scheduler repository implementing the System interface.
func New(
	db *sql.DB,
	sequences sequence.Allocator,
	bus *events.Bus,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		sequences:  sequences,
		bus:        bus,
		logger:     logger.With("system", "sessions"),
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
) (*pagination.PageResult[Session], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	ss, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSession)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	result := pagination.NewPageResult(ss, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Session, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSession)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Session, error) {
	if !cmd.OrdinalType.Valid() {
		return nil, fmt.Errorf("%w: unknown ordinal type %q", ErrInvalid, cmd.OrdinalType)
	}
	if cmd.Date.IsZero() {
		return nil, fmt.Errorf("%w: date required", ErrInvalid)
	}

	const q = `
		INSERT INTO sessions(id, sequence, year, ordinal, ordinal_type, date, president_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, sequence, year, ordinal, ordinal_type, date, start_time, end_time,
			president_id, status, created_at, updated_at`

	year := cmd.Date.Year()

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
		seq, err := r.sequences.Next(ctx, tx, sequence.ScopeSession, year)
		if err != nil {
			return Session{}, err
		}

		args := []any{
			uuid.New(), seq, year,
			cmd.Ordinal, cmd.OrdinalType, cmd.Date,
			cmd.PresidentID, StatusAwaitingPublication,
		}
		return repository.QueryOne(ctx, tx, q, args, scanSession)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("session scheduled", "id", s.ID, "number", s.Number(), "date", s.Date)
	return &s, nil
}

func (r *repo) SetStatus(ctx context.Context, id uuid.UUID, target Status) (*Session, error) {
	const lockQ = `SELECT status FROM sessions WHERE id = $1 FOR UPDATE`

	const updateQ = `
		UPDATE sessions
		SET status = $2,
			start_time = CASE WHEN $2 = 'IN_PROGRESS' THEN now() ELSE start_time END,
			end_time   = CASE WHEN $2 IN ('CONCLUDED', 'CANCELLED') THEN now() ELSE end_time END,
			updated_at = now()
		WHERE id = $1
		RETURNING id, sequence, year, ordinal, ordinal_type, date, start_time, end_time,
			president_id, status, created_at, updated_at`

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
		var current Status
		if err := tx.QueryRowContext(ctx, lockQ, id).Scan(&current); err != nil {
			return Session{}, err
		}

		if err := Transition(current, target); err != nil {
			return Session{}, err
		}

		return repository.QueryOne(ctx, tx, updateQ, []any{id, target}, scanSession)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("session status changed", "id", id, "status", s.Status)
	return &s, nil
}

func (r *repo) Agenda(ctx context.Context, id uuid.UUID) ([]SessionCase, error) {
	q, args := query.
		NewBuilder(caseProjection, query.SortField{Field: "AgendaOrder"}).
		WhereEquals("SessionID", id).
		Build()

	scs, err := repository.QueryMany(ctx, r.db, q, args, scanSessionCase)
	if err != nil {
		return nil, fmt.Errorf("query agenda: %w", err)
	}
	return scs, nil
}

func (r *repo) FindCase(ctx context.Context, sessionCaseID uuid.UUID) (*SessionCase, error) {
	q, args := query.NewBuilder(caseProjection).BuildSingle("ID", sessionCaseID)

	sc, err := repository.QueryOne(ctx, r.db, q, args, scanSessionCase)
	if err != nil {
		return nil, repository.MapError(err, ErrCaseNotFound, ErrDuplicate)
	}
	return &sc, nil
}

func (r *repo) AddCase(ctx context.Context, id uuid.UUID, cmd AgendaCommand) (*SessionCase, error) {
	const insertQ = `
		INSERT INTO session_cases(id, session_id, case_id, agenda_order, status)
		SELECT $1, $2, $3, COALESCE(MAX(agenda_order), 0) + 1, $4
		FROM session_cases WHERE session_id = $2
		RETURNING id, session_id, case_id, agenda_order, status, result, minutes, created_at, updated_at`

	sc, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (SessionCase, error) {
		status, err := lockSession(ctx, tx, id)
		if err != nil {
			return SessionCase{}, err
		}
		if status.Terminal() {
			return SessionCase{}, ErrSessionClosed
		}

		var caseStatus cases.Status
		err = tx.QueryRowContext(
			ctx,
			"SELECT status FROM cases WHERE id = $1 FOR UPDATE",
			cmd.CaseID,
		).Scan(&caseStatus)
		if err != nil {
			if err == sql.ErrNoRows {
				return SessionCase{}, cases.ErrNotFound
			}
			return SessionCase{}, err
		}

		judgedInOpen, err := judgedInOpenSession(ctx, tx, cmd.CaseID)
		if err != nil {
			return SessionCase{}, err
		}
		if err := GuardAgendaEntry(caseStatus, judgedInOpen); err != nil {
			return SessionCase{}, err
		}

		args := []any{uuid.New(), id, cmd.CaseID, cases.StatusInAgenda}
		appearance, err := repository.QueryOne(ctx, tx, insertQ, args, scanSessionCase)
		if err != nil {
			return SessionCase{}, err
		}

		// Agenda entry returns the registry entry to the open agenda; this is
		// the scheduler's sanctioned mutation of the case record.
		err = repository.ExecExpectOne(
			ctx, tx,
			"UPDATE cases SET status = $2, updated_at = now() WHERE id = $1",
			cmd.CaseID, cases.StatusInAgenda,
		)
		if err != nil {
			return SessionCase{}, err
		}

		return appearance, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case added to agenda", "session_id", id, "case_id", cmd.CaseID, "order", sc.AgendaOrder)
	return &sc, nil
}

func (r *repo) RemoveCase(ctx context.Context, id, sessionCaseID uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		status, err := lockSession(ctx, tx, id)
		if err != nil {
			return struct{}{}, err
		}
		if status.Terminal() {
			return struct{}{}, ErrSessionClosed
		}

		var caseStatus cases.Status
		err = tx.QueryRowContext(
			ctx,
			"SELECT status FROM session_cases WHERE id = $1 AND session_id = $2 FOR UPDATE",
			sessionCaseID, id,
		).Scan(&caseStatus)
		if err != nil {
			if err == sql.ErrNoRows {
				return struct{}{}, ErrCaseNotFound
			}
			return struct{}{}, err
		}
		if caseStatus.Terminal() {
			return struct{}{}, fmt.Errorf("%w: appearance already judged", ErrInvalidTransition)
		}

		err = repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM session_cases WHERE id = $1",
			sessionCaseID,
		)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrCaseNotFound, ErrDuplicate)
	}

	r.logger.Info("case removed from agenda", "session_id", id, "session_case_id", sessionCaseID)
	return nil
}

func (r *repo) ReorderAgenda(ctx context.Context, id uuid.UUID, ordered []uuid.UUID) error {
	if len(ordered) == 0 {
		return fmt.Errorf("%w: empty agenda order", ErrInvalid)
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		status, err := lockSession(ctx, tx, id)
		if err != nil {
			return struct{}{}, err
		}
		if status.Terminal() {
			return struct{}{}, ErrSessionClosed
		}

		for i, scID := range ordered {
			err := repository.ExecExpectOne(
				ctx, tx,
				"UPDATE session_cases SET agenda_order = $3, updated_at = now() WHERE id = $1 AND session_id = $2",
				scID, id, i+1,
			)
			if err != nil {
				if err == sql.ErrNoRows {
					return struct{}{}, ErrCaseNotFound
				}
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agenda reordered", "session_id", id, "entries", len(ordered))
	return nil
}

func (r *repo) SetCaseStatus(
	ctx context.Context,
	sessionCaseID uuid.UUID,
	cmd CaseStatusCommand,
) (*SessionCase, error) {
	const updateQ = `
		UPDATE session_cases
		SET status = $2,
			result = COALESCE($3, result),
			minutes = COALESCE($4, minutes),
			status_cause = NULLIF($5, ''),
			updated_at = now()
		WHERE id = $1
		RETURNING id, session_id, case_id, agenda_order, status, result, minutes, created_at, updated_at`

	sc, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (SessionCase, error) {
		appearance, sessionStatus, err := lockAppearance(ctx, tx, sessionCaseID)
		if err != nil {
			return SessionCase{}, err
		}
		if sessionStatus.Terminal() {
			return SessionCase{}, ErrSessionClosed
		}

		voteCount, resolved, err := voteResolution(ctx, tx, sessionCaseID)
		if err != nil {
			return SessionCase{}, err
		}

		guard := cases.StatusCommand{
			Status:    cmd.Status,
			Cause:     cmd.Cause,
			VoteCount: voteCount,
			Resolved:  resolved,
		}
		if err := cases.Transition(appearance.Status, guard); err != nil {
			return SessionCase{}, err
		}

		updated, err := repository.QueryOne(
			ctx, tx, updateQ,
			[]any{sessionCaseID, cmd.Status, cmd.Result, cmd.Minutes, cmd.Cause},
			scanSessionCase,
		)
		if err != nil {
			return SessionCase{}, err
		}

		// Mirror the appearance status onto the registry entry.
		err = repository.ExecExpectOne(
			ctx, tx,
			"UPDATE cases SET status = $2, updated_at = now() WHERE id = $1",
			updated.CaseID, cmd.Status,
		)
		if err != nil {
			return SessionCase{}, err
		}

		return updated, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrCaseNotFound, ErrDuplicate)
	}

	if sc.Status == cases.StatusJudged {
		r.bus.Publish(events.New(events.TypeCaseJudged, events.CaseJudged{
			CaseID:        sc.CaseID,
			SessionCaseID: sc.ID,
			JudgedAt:      sc.UpdatedAt,
		}))
	}

	r.logger.Info("appearance status changed", "session_case_id", sessionCaseID, "status", sc.Status)
	return &sc, nil
}

func (r *repo) Attendance(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(
		ctx,
		"SELECT member_id FROM session_attendance WHERE session_id = $1 ORDER BY member_id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var memberID uuid.UUID
		if err := rows.Scan(&memberID); err != nil {
			return nil, err
		}
		ids = append(ids, memberID)
	}
	return ids, rows.Err()
}

func (r *repo) RegisterAttendance(ctx context.Context, id uuid.UUID, memberIDs []uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		status, err := lockSession(ctx, tx, id)
		if err != nil {
			return struct{}{}, err
		}
		if status.Terminal() {
			return struct{}{}, ErrSessionClosed
		}

		if _, err := tx.ExecContext(
			ctx,
			"DELETE FROM session_attendance WHERE session_id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}

		for _, memberID := range memberIDs {
			if _, err := tx.ExecContext(
				ctx,
				"INSERT INTO session_attendance(session_id, member_id) VALUES ($1, $2)",
				id, memberID,
			); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("attendance registered", "session_id", id, "members", len(memberIDs))
	return nil
}

func (r *repo) Progress(ctx context.Context, id uuid.UUID) (*Progress, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(
		ctx,
		"SELECT status FROM session_cases WHERE session_id = $1",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query agenda statuses: %w", err)
	}
	defer rows.Close()

	statuses := make([]cases.Status, 0)
	for rows.Next() {
		var s cases.Status
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	p := ComputeProgress(statuses)
	return &p, nil
}

// judgedInOpenSession reports whether the case carries a judged appearance
// in a session that has not yet concluded or been cancelled.
func judgedInOpenSession(ctx context.Context, tx *sql.Tx, caseID uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM session_cases sc
			JOIN sessions s ON s.id = sc.session_id
			WHERE sc.case_id = $1
				AND sc.status = $2
				AND s.status NOT IN ($3, $4))`

	var judged bool
	err := tx.QueryRowContext(
		ctx, q,
		caseID, cases.StatusJudged, StatusConcluded, StatusCancelled,
	).Scan(&judged)
	return judged, err
}

func lockSession(ctx context.Context, tx *sql.Tx, id uuid.UUID) (Status, error) {
	var status Status
	err := tx.QueryRowContext(
		ctx,
		"SELECT status FROM sessions WHERE id = $1 FOR UPDATE",
		id,
	).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", err
	}
	return status, nil
}

// lockAppearance locks one session_cases row and returns it with the parent
// session status. Every distribution and vote mutation serializes on this row.
func lockAppearance(ctx context.Context, tx *sql.Tx, sessionCaseID uuid.UUID) (*SessionCase, Status, error) {
	const q = `
		SELECT sc.id, sc.session_id, sc.case_id, sc.agenda_order, sc.status,
			sc.result, sc.minutes, sc.created_at, sc.updated_at, s.status
		FROM session_cases sc
		JOIN sessions s ON s.id = sc.session_id
		WHERE sc.id = $1
		FOR UPDATE OF sc`

	var sc SessionCase
	var sessionStatus Status
	err := tx.QueryRowContext(ctx, q, sessionCaseID).Scan(
		&sc.ID,
		&sc.SessionID,
		&sc.CaseID,
		&sc.AgendaOrder,
		&sc.Status,
		&sc.Result,
		&sc.Minutes,
		&sc.CreatedAt,
		&sc.UpdatedAt,
		&sessionStatus,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", ErrCaseNotFound
		}
		return nil, "", err
	}
	return &sc, sessionStatus, nil
}

// voteResolution reports how many votes an appearance has and whether the
// vote set is resolved: a distribution exists and the rapporteur and every
// reviewer have voted.
func voteResolution(ctx context.Context, tx *sql.Tx, sessionCaseID uuid.UUID) (int, bool, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM votes v WHERE v.session_case_id = $1),
			(SELECT COUNT(*) FROM distributions d WHERE d.session_case_id = $1),
			(SELECT COUNT(*) FROM distribution_reviewers dr WHERE dr.session_case_id = $1)`

	var votes, distributions, reviewers int
	if err := tx.QueryRowContext(ctx, q, sessionCaseID).Scan(&votes, &distributions, &reviewers); err != nil {
		return 0, false, err
	}

	resolved := distributions == 1 && votes >= 1+reviewers
	return votes, resolved, nil
}
