// Package distribution implements rapporteur and reviewer assignment for
// Plenário. A distribution binds one rapporteur and zero or more reviewers to
// a case appearance, subject to the authority-conflict rule: a person who
// acted in the case's administrative phase cannot judge their own act.
package distribution

import (
	"time"

	"github.com/google/uuid"
)

// Distribution is the rapporteur/reviewer assignment for one case appearance.
type Distribution struct {
	SessionCaseID uuid.UUID   `json:"session_case_id"`
	RapporteurID  uuid.UUID   `json:"rapporteur_id"`
	ReviewerIDs   []uuid.UUID `json:"reviewer_ids"`
	AssignedAt    time.Time   `json:"assigned_at"`
}

// AssignCommand carries the assignment request for a case appearance.
// ReviewerIDs may be empty; ordering is preserved.
type AssignCommand struct {
	RapporteurID uuid.UUID   `json:"rapporteur_id"`
	ReviewerIDs  []uuid.UUID `json:"reviewer_ids"`
}

// Assignee pairs a member id with its directory name for eligibility checks.
type Assignee struct {
	ID   uuid.UUID
	Name string
}
