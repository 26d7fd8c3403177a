package distribution

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"plenario/internal/members"
	"plenario/internal/sessions"
	"plenario/pkg/repository"
)

type repo struct {
	db        *sql.DB
	directory members.System
	logger    *slog.Logger
}

// New creates a distribution repository implementing the System interface.
func New(db *sql.DB, directory members.System, logger *slog.Logger) System {
	return &repo{
		db:        db,
		directory: directory,
		logger:    logger.With("system", "distribution"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Find(ctx context.Context, sessionCaseID uuid.UUID) (*Distribution, error) {
	const q = `
		SELECT session_case_id, rapporteur_id, assigned_at
		FROM distributions WHERE session_case_id = $1`

	var d Distribution
	err := r.db.QueryRowContext(ctx, q, sessionCaseID).Scan(
		&d.SessionCaseID,
		&d.RapporteurID,
		&d.AssignedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query distribution: %w", err)
	}

	d.ReviewerIDs, err = r.reviewers(ctx, sessionCaseID)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *repo) Assign(
	ctx context.Context,
	sessionCaseID uuid.UUID,
	cmd AssignCommand,
) (*Distribution, error) {
	if cmd.RapporteurID == uuid.Nil {
		return nil, fmt.Errorf("%w: rapporteur required", ErrInvalid)
	}
	for _, reviewerID := range cmd.ReviewerIDs {
		if reviewerID == cmd.RapporteurID {
			return nil, fmt.Errorf("%w: rapporteur cannot also review", ErrInvalid)
		}
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Distribution, error) {
		caseID, sessionID, sessionStatus, err := lockAppearance(ctx, tx, sessionCaseID)
		if err != nil {
			return Distribution{}, err
		}
		if sessionStatus.Terminal() {
			return Distribution{}, sessions.ErrSessionClosed
		}

		voteCount, err := countVotes(ctx, tx, sessionCaseID)
		if err != nil {
			return Distribution{}, err
		}
		if voteCount > 0 {
			return Distribution{}, ErrDistributionLocked
		}

		assignees, err := r.resolveAssignees(ctx, tx, sessionID, cmd)
		if err != nil {
			return Distribution{}, err
		}

		authorities, err := r.directory.AuthoritiesForCase(ctx, caseID)
		if err != nil {
			return Distribution{}, err
		}
		if err := CheckEligibility(assignees, authorities); err != nil {
			return Distribution{}, err
		}

		return replace(ctx, tx, sessionCaseID, cmd)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"distribution assigned",
		"session_case_id", sessionCaseID,
		"rapporteur_id", d.RapporteurID,
		"reviewers", len(d.ReviewerIDs),
	)
	return &d, nil
}

// resolveAssignees verifies every assignee is attending the session and
// returns them paired with their directory names.
func (r *repo) resolveAssignees(
	ctx context.Context,
	tx *sql.Tx,
	sessionID uuid.UUID,
	cmd AssignCommand,
) ([]Assignee, error) {
	const q = `
		SELECT m.id, m.name
		FROM members m
		JOIN session_attendance sa ON sa.member_id = m.id
		WHERE sa.session_id = $1 AND m.id = $2`

	ids := append([]uuid.UUID{cmd.RapporteurID}, cmd.ReviewerIDs...)
	assignees := make([]Assignee, 0, len(ids))

	for _, id := range ids {
		var a Assignee
		err := tx.QueryRowContext(ctx, q, sessionID, id).Scan(&a.ID, &a.Name)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("%w: member %s", ErrNotAttending, id)
			}
			return nil, err
		}
		assignees = append(assignees, a)
	}

	return assignees, nil
}

func replace(
	ctx context.Context,
	tx *sql.Tx,
	sessionCaseID uuid.UUID,
	cmd AssignCommand,
) (Distribution, error) {
	if _, err := tx.ExecContext(
		ctx,
		"DELETE FROM distribution_reviewers WHERE session_case_id = $1",
		sessionCaseID,
	); err != nil {
		return Distribution{}, err
	}
	if _, err := tx.ExecContext(
		ctx,
		"DELETE FROM distributions WHERE session_case_id = $1",
		sessionCaseID,
	); err != nil {
		return Distribution{}, err
	}

	const insertQ = `
		INSERT INTO distributions(session_case_id, rapporteur_id)
		VALUES ($1, $2)
		RETURNING session_case_id, rapporteur_id, assigned_at`

	var d Distribution
	err := tx.QueryRowContext(ctx, insertQ, sessionCaseID, cmd.RapporteurID).Scan(
		&d.SessionCaseID,
		&d.RapporteurID,
		&d.AssignedAt,
	)
	if err != nil {
		return Distribution{}, err
	}

	d.ReviewerIDs = make([]uuid.UUID, 0, len(cmd.ReviewerIDs))
	for i, reviewerID := range cmd.ReviewerIDs {
		if _, err := tx.ExecContext(
			ctx,
			"INSERT INTO distribution_reviewers(session_case_id, member_id, position) VALUES ($1, $2, $3)",
			sessionCaseID, reviewerID, i+1,
		); err != nil {
			return Distribution{}, err
		}
		d.ReviewerIDs = append(d.ReviewerIDs, reviewerID)
	}

	return d, nil
}

func (r *repo) reviewers(ctx context.Context, sessionCaseID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(
		ctx,
		"SELECT member_id FROM distribution_reviewers WHERE session_case_id = $1 ORDER BY position",
		sessionCaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("query reviewers: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// lockAppearance serializes distribution mutation on the session_cases row so
// the vote-existence and session-status checks are race-free.
func lockAppearance(
	ctx context.Context,
	tx *sql.Tx,
	sessionCaseID uuid.UUID,
) (caseID, sessionID uuid.UUID, sessionStatus sessions.Status, err error) {
	const q = `
		SELECT sc.case_id, sc.session_id, s.status
		FROM session_cases sc
		JOIN sessions s ON s.id = sc.session_id
		WHERE sc.id = $1
		FOR UPDATE OF sc`

	err = tx.QueryRowContext(ctx, q, sessionCaseID).Scan(&caseID, &sessionID, &sessionStatus)
	if err == sql.ErrNoRows {
		err = sessions.ErrCaseNotFound
	}
	return caseID, sessionID, sessionStatus, err
}

func countVotes(ctx context.Context, tx *sql.Tx, sessionCaseID uuid.UUID) (int, error) {
	var count int
	err := tx.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM votes WHERE session_case_id = $1",
		sessionCaseID,
	).Scan(&count)
	return count, err
}
