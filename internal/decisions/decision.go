package decisions

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Decision is the formal collective ruling record (acórdão) for a judged
// case. At most one decision exists per case. Its number is a year-scoped
// sequence assigned at emission and never reused.
type Decision struct {
	ID              uuid.UUID `json:"id"`
	CaseID          uuid.UUID `json:"case_id"`
	Sequence        int       `json:"sequence"`
	Year            int       `json:"year"`
	EmentaTitle     string    `json:"ementa_title"`
	EmentaBody      string    `json:"ementa_body"`
	VoteFileKey     *string   `json:"vote_file_key,omitempty"`
	DecisionFileKey *string   `json:"decision_file_key,omitempty"`
	EmittedAt       time.Time `json:"emitted_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Number formats the human-readable decision number.
func (d Decision) Number() string {
	return fmt.Sprintf("%d/%d", d.Sequence, d.Year)
}

// Publication is a gazette release entry for a decision. Order 1 is the
// first publication; higher orders are republications. Entries are
// append-only and never edited or deleted.
type Publication struct {
	ID               uuid.UUID `json:"id"`
	DecisionID       uuid.UUID `json:"decision_id"`
	PublicationOrder int       `json:"publication_order"`
	Number           string    `json:"number"`
	PublishedAt      time.Time `json:"published_at"`
}

// NextPublicationOrder returns the order for the next publication entry.
// Orders start at 1 and grow from the highest existing order so an appended
// republication never reuses or displaces an earlier entry.
func NextPublicationOrder(existing []Publication) int {
	highest := 0
	for _, p := range existing {
		if p.PublicationOrder > highest {
			highest = p.PublicationOrder
		}
	}
	return highest + 1
}

// EmitCommand carries the data for drafting a decision on a judged case.
// Emission does not publish; the first Publication entry is appended by a
// separate explicit publish call.
type EmitCommand struct {
	CaseID      uuid.UUID `json:"case_id"`
	EmentaTitle string    `json:"ementa_title"`
	EmentaBody  string    `json:"ementa_body"`
}

// PublishCommand appends a publication entry. A zero PublishedAt defaults
// to the current time.
type PublishCommand struct {
	Number      string    `json:"number"`
	PublishedAt time.Time `json:"published_at"`
}

// FileKind selects which decision attachment an upload targets.
type FileKind string

const (
	FileVote     FileKind = "vote"
	FileDecision FileKind = "decision"
)

// Valid reports whether the kind names a known attachment slot.
func (k FileKind) Valid() bool {
	return k == FileVote || k == FileDecision
}

// AttachCommand stores an uploaded PDF against a decision. PageCount is
// extracted from the file before storage.
type AttachCommand struct {
	Kind        FileKind
	Data        []byte
	Filename    string
	ContentType string
}
