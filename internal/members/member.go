// Package members implements the committee directory for Plenário.
// It provides read-only access to committee members and to the registered
// authorities linked to each case. Member and authority maintenance is
// performed by an external administrative system; the judgment core only
// consumes the directory for attendance and eligibility checks.
package members

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a committee member eligible to attend judgment sessions.
type Member struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Authority represents a person registered as an acting authority on a case
// during its administrative phase. MemberID links the authority to a committee
// member when the directory can resolve one; older records carry only a name,
// which eligibility checks fall back to matching case-insensitively.
type Authority struct {
	ID       uuid.UUID  `json:"id"`
	CaseID   uuid.UUID  `json:"case_id"`
	Name     string     `json:"name"`
	MemberID *uuid.UUID `json:"member_id,omitempty"`
	Active   bool       `json:"active"`
}
