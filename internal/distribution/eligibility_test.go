package distribution_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"plenario/internal/distribution"
	"plenario/internal/members"
)

func TestCheckEligibility(t *testing.T) {
	bob := distribution.Assignee{ID: uuid.New(), Name: "Bob Ferreira"}
	carol := distribution.Assignee{ID: uuid.New(), Name: "Carol Mendes"}
	alice := distribution.Assignee{ID: uuid.New(), Name: "Alice Souza"}

	tests := []struct {
		name        string
		assignees   []distribution.Assignee
		authorities []members.Authority
		wantErr     bool
	}{
		{
			name:      "no authorities",
			assignees: []distribution.Assignee{bob, carol},
		},
		{
			name:      "id link match",
			assignees: []distribution.Assignee{bob},
			authorities: []members.Authority{
				{Name: "B. Ferreira", MemberID: &bob.ID, Active: true},
			},
			wantErr: true,
		},
		{
			name:      "id link takes precedence over mismatched name",
			assignees: []distribution.Assignee{bob},
			authorities: []members.Authority{
				{Name: "Bob Ferreira", MemberID: &carol.ID, Active: true},
			},
		},
		{
			name:      "name fallback without id link",
			assignees: []distribution.Assignee{carol},
			authorities: []members.Authority{
				{Name: "carol mendes", Active: true},
			},
			wantErr: true,
		},
		{
			name:      "name fallback trims whitespace",
			assignees: []distribution.Assignee{carol},
			authorities: []members.Authority{
				{Name: "  Carol Mendes  ", Active: true},
			},
			wantErr: true,
		},
		{
			name:      "inactive authority ignored",
			assignees: []distribution.Assignee{bob},
			authorities: []members.Authority{
				{Name: "Bob Ferreira", MemberID: &bob.ID, Active: false},
			},
		},
		{
			name:      "conflict found in reviewer slot",
			assignees: []distribution.Assignee{alice, carol},
			authorities: []members.Authority{
				{Name: "Unrelated Person", Active: true},
				{Name: "Carol Mendes", Active: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := distribution.CheckEligibility(tt.assignees, tt.authorities)
			if tt.wantErr {
				if !errors.Is(err, distribution.ErrAuthorityConflict) {
					t.Errorf("CheckEligibility() error = %v, want ErrAuthorityConflict", err)
				}
				return
			}
			if err != nil {
				t.Errorf("CheckEligibility() error = %v, want nil", err)
			}
		})
	}
}
