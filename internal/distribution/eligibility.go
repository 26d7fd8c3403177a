package distribution

import (
	"fmt"
	"strings"

	"plenario/internal/members"
)

// CheckEligibility rejects any assignee who appears among the case's
// registered authorities. Matching is by member id when the authority record
// carries one; records without a member link fall back to case-insensitive
// name matching, kept for compatibility with directory data that predates
// the id link.
func CheckEligibility(assignees []Assignee, authorities []members.Authority) error {
	for _, assignee := range assignees {
		for _, authority := range authorities {
			if !authority.Active {
				continue
			}

			if authority.MemberID != nil {
				if *authority.MemberID == assignee.ID {
					return fmt.Errorf(
						"%w: %s is a registered authority on this case",
						ErrAuthorityConflict, assignee.Name,
					)
				}
				continue
			}

			if strings.EqualFold(strings.TrimSpace(authority.Name), strings.TrimSpace(assignee.Name)) {
				return fmt.Errorf(
					"%w: %s is a registered authority on this case",
					ErrAuthorityConflict, assignee.Name,
				)
			}
		}
	}
	return nil
}
