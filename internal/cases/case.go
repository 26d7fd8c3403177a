// Package cases implements the case registry for Plenário.
// A case is a municipal tax appeal under committee review; it anchors every
// other aggregate in the judgment core. The registry owns case identity,
// classification, and the adjudication status machine.
package cases

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Case represents a tax appeal under committee review.
type Case struct {
	ID             uuid.UUID `json:"id"`
	Sequence       int       `json:"sequence"`
	Year           int       `json:"year"`
	Classification string    `json:"classification"`
	Status         Status    `json:"status"`
	Archived       bool      `json:"archived"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Number returns the human-readable case number.
func (c *Case) Number() string {
	return fmt.Sprintf("%d/%d", c.Sequence, c.Year)
}

// CreateCommand carries the data needed to register a new case at intake.
// The sequence number is allocated by the repository, scoped to Year.
type CreateCommand struct {
	Year           int    `json:"year"`
	Classification string `json:"classification"`
}

// StatusCommand carries a requested status change. Cause is required for
// administrative overrides; VoteCount and Resolved describe the vote set of
// the current session appearance and gate the transition to StatusJudged.
type StatusCommand struct {
	Status    Status `json:"status"`
	Cause     string `json:"cause,omitempty"`
	VoteCount int    `json:"-"`
	Resolved  bool   `json:"-"`
}
