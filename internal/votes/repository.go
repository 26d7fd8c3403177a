package votes

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"plenario/internal/sessions"
	"plenario/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a vote repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "votes"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Find(ctx context.Context, voteID uuid.UUID) (*Vote, error) {
	q := "SELECT" + voteColumns + voteFrom + " WHERE v.id = $1"

	v, err := repository.QueryOne(ctx, r.db, q, []any{voteID}, scanVote)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateVote)
	}
	return &v, nil
}

func (r *repo) ListForCase(ctx context.Context, sessionCaseID uuid.UUID) ([]Vote, error) {
	q := "SELECT" + voteColumns + voteFrom +
		" WHERE v.session_case_id = $1 ORDER BY v.created_at"

	vs, err := repository.QueryMany(ctx, r.db, q, []any{sessionCaseID}, scanVote)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}
	return vs, nil
}

func (r *repo) Templates(ctx context.Context, kind *TemplateKind) ([]Template, error) {
	q := `
		SELECT id, kind, description, accept_text, reject_text, text, active
		FROM decision_templates
		WHERE active AND ($1::text IS NULL OR kind = $1)
		ORDER BY kind, description`

	ts, err := repository.QueryMany(ctx, r.db, q, []any{kind}, scanTemplate)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	return ts, nil
}

func (r *repo) Record(
	ctx context.Context,
	sessionCaseID uuid.UUID,
	cmd RecordCommand,
) (*Vote, error) {
	if cmd.MemberID == uuid.Nil {
		return nil, fmt.Errorf("%w: member required", ErrInvalid)
	}
	if err := validateChoices(choices(cmd)); err != nil {
		return nil, err
	}

	const insertQ = `
		INSERT INTO votes(id, session_case_id, member_id, knowledge_type,
			preliminary_outcome, preliminary_template_id, merit_template_id,
			official_template_id, vote_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	v, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Vote, error) {
		sessionStatus, err := lockAppearance(ctx, tx, sessionCaseID)
		if err != nil {
			return Vote{}, err
		}
		if sessionStatus.Terminal() {
			return Vote{}, sessions.ErrSessionClosed
		}

		if _, err := deriveRole(ctx, tx, sessionCaseID, cmd.MemberID); err != nil {
			return Vote{}, err
		}

		existing, err := listForCaseTx(ctx, tx, sessionCaseID)
		if err != nil {
			return Vote{}, err
		}
		if err := GuardSingleVote(existing, cmd.MemberID); err != nil {
			return Vote{}, err
		}

		text, err := r.composeText(ctx, tx, choices(cmd))
		if err != nil {
			return Vote{}, err
		}

		id := uuid.New()
		if _, err := tx.ExecContext(
			ctx, insertQ,
			id, sessionCaseID, cmd.MemberID, cmd.KnowledgeType,
			cmd.PreliminaryOutcome, cmd.PreliminaryTemplateID,
			cmd.MeritTemplateID, cmd.OfficialTemplateID, text,
		); err != nil {
			return Vote{}, err
		}

		return findTx(ctx, tx, id)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateVote)
	}

	r.logger.Info(
		"vote recorded",
		"session_case_id", sessionCaseID,
		"member_id", cmd.MemberID,
		"role", v.Role,
	)
	return &v, nil
}

func (r *repo) Update(ctx context.Context, voteID uuid.UUID, cmd UpdateCommand) (*Vote, error) {
	c := voteChoices{
		knowledge:   cmd.KnowledgeType,
		outcome:     cmd.PreliminaryOutcome,
		preliminary: cmd.PreliminaryTemplateID,
		merit:       cmd.MeritTemplateID,
		official:    cmd.OfficialTemplateID,
	}
	if err := validateChoices(c); err != nil {
		return nil, err
	}

	const updateQ = `
		UPDATE votes
		SET knowledge_type = $2, preliminary_outcome = $3,
			preliminary_template_id = $4, merit_template_id = $5,
			official_template_id = $6, vote_text = $7, updated_at = now()
		WHERE id = $1`

	v, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Vote, error) {
		var sessionCaseID uuid.UUID
		err := tx.QueryRowContext(
			ctx,
			"SELECT session_case_id FROM votes WHERE id = $1 FOR UPDATE",
			voteID,
		).Scan(&sessionCaseID)
		if err != nil {
			if err == sql.ErrNoRows {
				return Vote{}, ErrNotFound
			}
			return Vote{}, err
		}

		sessionStatus, err := lockAppearance(ctx, tx, sessionCaseID)
		if err != nil {
			return Vote{}, err
		}
		if sessionStatus.Terminal() {
			return Vote{}, sessions.ErrSessionClosed
		}

		var text string
		if cmd.VoteText != nil {
			text = *cmd.VoteText
		} else {
			text, err = r.composeText(ctx, tx, c)
			if err != nil {
				return Vote{}, err
			}
		}
		if text == "" {
			return Vote{}, fmt.Errorf("%w: vote text empty", ErrInvalid)
		}

		if _, err := tx.ExecContext(
			ctx, updateQ,
			voteID, cmd.KnowledgeType, cmd.PreliminaryOutcome,
			cmd.PreliminaryTemplateID, cmd.MeritTemplateID,
			cmd.OfficialTemplateID, text,
		); err != nil {
			return Vote{}, err
		}

		return findTx(ctx, tx, voteID)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateVote)
	}

	r.logger.Info("vote updated", "vote_id", voteID)
	return &v, nil
}

// voteChoices normalizes Record/Update commands for shared validation and
// composition.
type voteChoices struct {
	knowledge   KnowledgeType
	outcome     *Outcome
	preliminary *uuid.UUID
	merit       *uuid.UUID
	official    *uuid.UUID
}

func choices(cmd RecordCommand) voteChoices {
	return voteChoices{
		knowledge:   cmd.KnowledgeType,
		outcome:     cmd.PreliminaryOutcome,
		preliminary: cmd.PreliminaryTemplateID,
		merit:       cmd.MeritTemplateID,
		official:    cmd.OfficialTemplateID,
	}
}

// validateChoices applies the caller-side pre-checks of the composition
// grammar. These run before any persistence write.
func validateChoices(c voteChoices) error {
	if !c.knowledge.Valid() {
		return fmt.Errorf("%w: unknown knowledge type %q", ErrInvalid, c.knowledge)
	}

	switch c.knowledge {
	case Knowledge:
		if c.merit == nil {
			return fmt.Errorf("%w: merit template required", ErrInvalid)
		}
	case NonKnowledge:
		if c.outcome == nil || !c.outcome.Valid() {
			return fmt.Errorf("%w: preliminary outcome required", ErrInvalid)
		}
		if c.merit != nil {
			return fmt.Errorf("%w: merit template not allowed without knowledge", ErrInvalid)
		}
		switch *c.outcome {
		case OutcomeAccept:
			if c.preliminary == nil && c.official == nil {
				return ErrIncompleteRationale
			}
		case OutcomeReject:
			if c.official != nil {
				return fmt.Errorf("%w: ex-officio directive requires an accepted preliminary", ErrInvalid)
			}
		}
	}

	return nil
}

// composeText resolves template fragments and runs the composer.
func (r *repo) composeText(ctx context.Context, tx *sql.Tx, c voteChoices) (string, error) {
	in := ComposeInput{Knowledge: c.knowledge}
	if c.outcome != nil {
		in.Outcome = *c.outcome
	}

	if c.preliminary != nil {
		t, err := findTemplate(ctx, tx, *c.preliminary, TemplatePreliminary)
		if err != nil {
			return "", err
		}
		if in.Outcome == OutcomeReject {
			in.Preliminary = t.RejectText
		} else {
			in.Preliminary = t.AcceptText
		}
	}

	if c.merit != nil {
		t, err := findTemplate(ctx, tx, *c.merit, TemplateMerit)
		if err != nil {
			return "", err
		}
		in.Merit = t.Text
	}

	if c.official != nil {
		t, err := findTemplate(ctx, tx, *c.official, TemplateOfficial)
		if err != nil {
			return "", err
		}
		in.Official = t.Text
	}

	return Compose(in), nil
}

func findTemplate(ctx context.Context, tx *sql.Tx, id uuid.UUID, kind TemplateKind) (*Template, error) {
	const q = `
		SELECT id, kind, description, accept_text, reject_text, text, active
		FROM decision_templates
		WHERE id = $1 AND kind = $2 AND active`

	t, err := repository.QueryOne(ctx, tx, q, []any{id, kind}, scanTemplate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s %s", ErrTemplateNotFound, kind, id)
		}
		return nil, err
	}
	return &t, nil
}

func findTx(ctx context.Context, tx *sql.Tx, voteID uuid.UUID) (Vote, error) {
	q := "SELECT" + voteColumns + voteFrom + " WHERE v.id = $1"
	return repository.QueryOne(ctx, tx, q, []any{voteID}, scanVote)
}

func listForCaseTx(ctx context.Context, tx *sql.Tx, sessionCaseID uuid.UUID) ([]Vote, error) {
	q := "SELECT" + voteColumns + voteFrom +
		" WHERE v.session_case_id = $1 ORDER BY v.created_at"
	return repository.QueryMany(ctx, tx, q, []any{sessionCaseID}, scanVote)
}

// deriveRole resolves a member's role from the distribution. Members outside
// the distribution cannot vote.
func deriveRole(ctx context.Context, tx *sql.Tx, sessionCaseID, memberID uuid.UUID) (Role, error) {
	var rapporteurID uuid.UUID
	err := tx.QueryRowContext(
		ctx,
		"SELECT rapporteur_id FROM distributions WHERE session_case_id = $1",
		sessionCaseID,
	).Scan(&rapporteurID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotDistributed
		}
		return "", err
	}

	if rapporteurID == memberID {
		return RoleRapporteur, nil
	}

	var reviewer bool
	err = tx.QueryRowContext(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM distribution_reviewers WHERE session_case_id = $1 AND member_id = $2)",
		sessionCaseID, memberID,
	).Scan(&reviewer)
	if err != nil {
		return "", err
	}
	if !reviewer {
		return "", ErrNotDistributed
	}

	return RoleReviewer, nil
}

// lockAppearance serializes vote mutation on the session_cases row.
func lockAppearance(ctx context.Context, tx *sql.Tx, sessionCaseID uuid.UUID) (sessions.Status, error) {
	const q = `
		SELECT s.status
		FROM session_cases sc
		JOIN sessions s ON s.id = sc.session_id
		WHERE sc.id = $1
		FOR UPDATE OF sc`

	var status sessions.Status
	err := tx.QueryRowContext(ctx, q, sessionCaseID).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", sessions.ErrCaseNotFound
		}
		return "", err
	}
	return status, nil
}
