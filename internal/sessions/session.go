// Package sessions implements the judgment session scheduler for Plenário.
// A session is a scheduled sitting of the committee with an ordered agenda of
// case appearances, an attendance list, and its own status machine. Sessions
// hold weak references to cases: the registry owns case identity, the
// scheduler owns each appearance.
package sessions

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"plenario/internal/cases"
)

// OrdinalType distinguishes regular sittings from extra ones.
type OrdinalType string

// Ordinal types.
const (
	OrdinalOrdinary      OrdinalType = "ORDINARY"
	OrdinalExtraordinary OrdinalType = "EXTRAORDINARY"
)

// Valid reports whether t is a known ordinal type.
func (t OrdinalType) Valid() bool {
	return t == OrdinalOrdinary || t == OrdinalExtraordinary
}

// Session represents a scheduled sitting of the committee.
type Session struct {
	ID          uuid.UUID   `json:"id"`
	Sequence    int         `json:"sequence"`
	Year        int         `json:"year"`
	Ordinal     int         `json:"ordinal"`
	OrdinalType OrdinalType `json:"ordinal_type"`
	Date        time.Time   `json:"date"`
	StartTime   *time.Time  `json:"start_time,omitempty"`
	EndTime     *time.Time  `json:"end_time,omitempty"`
	PresidentID *uuid.UUID  `json:"president_id,omitempty"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Number returns the human-readable session number.
func (s *Session) Number() string {
	return fmt.Sprintf("%d/%d", s.Sequence, s.Year)
}

// SessionCase is one appearance of a case on a session's agenda. A continued
// case shows up again in a later session as a distinct appearance.
type SessionCase struct {
	ID          uuid.UUID    `json:"id"`
	SessionID   uuid.UUID    `json:"session_id"`
	CaseID      uuid.UUID    `json:"case_id"`
	AgendaOrder int          `json:"agenda_order"`
	Status      cases.Status `json:"status"`
	Result      *string      `json:"result,omitempty"`
	Minutes     *string      `json:"minutes,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Attendance records a member present at a session.
type Attendance struct {
	SessionID uuid.UUID `json:"session_id"`
	MemberID  uuid.UUID `json:"member_id"`
}

// Progress reports the derived completion state of a session's agenda.
// It is computed on demand and never persisted.
type Progress struct {
	Total      int     `json:"total"`
	Resolved   int     `json:"resolved"`
	Percentage float64 `json:"percentage"`
}

// CreateCommand carries the data needed to schedule a new session.
// The sequence number is allocated by the repository, scoped to the year of Date.
type CreateCommand struct {
	Ordinal     int         `json:"ordinal"`
	OrdinalType OrdinalType `json:"ordinal_type"`
	Date        time.Time   `json:"date"`
	PresidentID *uuid.UUID  `json:"president_id,omitempty"`
}

// AgendaCommand places a case on a session's agenda.
type AgendaCommand struct {
	CaseID uuid.UUID `json:"case_id"`
}

// CaseStatusCommand carries a requested status change for one appearance.
type CaseStatusCommand struct {
	Status  cases.Status `json:"status"`
	Cause   string       `json:"cause,omitempty"`
	Result  *string      `json:"result,omitempty"`
	Minutes *string      `json:"minutes,omitempty"`
}
