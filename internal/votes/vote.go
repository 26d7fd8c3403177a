// Package votes implements vote recording and vote-text composition for
// Plenário. Each distributed member casts at most one vote per case
// appearance; the member's role is always derived from the distribution,
// never stored. Vote text is materialized from structured choices by the
// composer and stays editable while the session is open.
package votes

import (
	"time"

	"github.com/google/uuid"
)

// Role is a member's function in a vote, derived from the distribution.
type Role string

// Vote roles.
const (
	RoleRapporteur Role = "RAPPORTEUR"
	RoleReviewer   Role = "REVIEWER"
)

// KnowledgeType records whether the vote reaches the merits of the appeal.
type KnowledgeType string

// Knowledge types.
const (
	NonKnowledge KnowledgeType = "NON_KNOWLEDGE"
	Knowledge    KnowledgeType = "KNOWLEDGE"
)

// Valid reports whether k is a known knowledge type.
func (k KnowledgeType) Valid() bool {
	return k == NonKnowledge || k == Knowledge
}

// Outcome is the result of a preliminary (non-knowledge) objection.
type Outcome string

// Preliminary outcomes. Rejecting the objection is itself the path to
// substantive review.
const (
	OutcomeAccept Outcome = "ACCEPT"
	OutcomeReject Outcome = "REJECT"
)

// Valid reports whether o is a known preliminary outcome.
func (o Outcome) Valid() bool {
	return o == OutcomeAccept || o == OutcomeReject
}

// TemplateKind partitions the decision template catalog.
type TemplateKind string

// Template kinds.
const (
	TemplatePreliminary TemplateKind = "PRELIMINARY"
	TemplateMerit       TemplateKind = "MERIT"
	TemplateOfficial    TemplateKind = "OFFICIAL"
)

// Template is a catalog entry of reusable decision prose. Preliminary
// templates carry distinct accept/reject variants; merit and official
// templates carry a single text.
type Template struct {
	ID          uuid.UUID    `json:"id"`
	Kind        TemplateKind `json:"kind"`
	Description string       `json:"description"`
	AcceptText  string       `json:"accept_text,omitempty"`
	RejectText  string       `json:"reject_text,omitempty"`
	Text        string       `json:"text,omitempty"`
	Active      bool         `json:"active"`
}

// Vote is one member's vote on a case appearance.
type Vote struct {
	ID                    uuid.UUID     `json:"id"`
	SessionCaseID         uuid.UUID     `json:"session_case_id"`
	MemberID              uuid.UUID     `json:"member_id"`
	Role                  Role          `json:"role"`
	KnowledgeType         KnowledgeType `json:"knowledge_type"`
	PreliminaryOutcome    *Outcome      `json:"preliminary_outcome,omitempty"`
	PreliminaryTemplateID *uuid.UUID    `json:"preliminary_template_id,omitempty"`
	MeritTemplateID       *uuid.UUID    `json:"merit_template_id,omitempty"`
	OfficialTemplateID    *uuid.UUID    `json:"official_template_id,omitempty"`
	VoteText              string        `json:"vote_text"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

// GuardSingleVote enforces one vote per member per case appearance. A
// member who already appears in the vote set must go through the explicit
// edit operation instead of recording again.
func GuardSingleVote(existing []Vote, memberID uuid.UUID) error {
	for _, v := range existing {
		if v.MemberID == memberID {
			return ErrDuplicateVote
		}
	}
	return nil
}

// RecordCommand carries a new vote's structured choices. The vote text is
// always materialized by the composer at recording time.
type RecordCommand struct {
	MemberID              uuid.UUID     `json:"member_id"`
	KnowledgeType         KnowledgeType `json:"knowledge_type"`
	PreliminaryOutcome    *Outcome      `json:"preliminary_outcome,omitempty"`
	PreliminaryTemplateID *uuid.UUID    `json:"preliminary_template_id,omitempty"`
	MeritTemplateID       *uuid.UUID    `json:"merit_template_id,omitempty"`
	OfficialTemplateID    *uuid.UUID    `json:"official_template_id,omitempty"`
}

// UpdateCommand edits an existing vote while its session is open. When
// VoteText is set it is stored verbatim; otherwise the text is recomposed
// from the (possibly changed) structured choices.
type UpdateCommand struct {
	KnowledgeType         KnowledgeType `json:"knowledge_type"`
	PreliminaryOutcome    *Outcome      `json:"preliminary_outcome,omitempty"`
	PreliminaryTemplateID *uuid.UUID    `json:"preliminary_template_id,omitempty"`
	MeritTemplateID       *uuid.UUID    `json:"merit_template_id,omitempty"`
	OfficialTemplateID    *uuid.UUID    `json:"official_template_id,omitempty"`
	VoteText              *string       `json:"vote_text,omitempty"`
}
