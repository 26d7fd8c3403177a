package cases_test

import (
	"errors"
	"testing"

	"plenario/internal/cases"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		current cases.Status
		cmd     cases.StatusCommand
		wantErr error
	}{
		{
			name:    "suspend with cause",
			current: cases.StatusInAgenda,
			cmd:     cases.StatusCommand{Status: cases.StatusSuspended, Cause: "awaiting documents"},
		},
		{
			name:    "suspend without cause",
			current: cases.StatusInAgenda,
			cmd:     cases.StatusCommand{Status: cases.StatusSuspended},
			wantErr: cases.ErrCauseRequired,
		},
		{
			name:    "inquiry with cause",
			current: cases.StatusInAgenda,
			cmd:     cases.StatusCommand{Status: cases.StatusUnderInquiry, Cause: "expert report requested"},
		},
		{
			name:    "view request with cause",
			current: cases.StatusInAgenda,
			cmd:     cases.StatusCommand{Status: cases.StatusViewRequested, Cause: "member requested the record"},
		},
		{
			name:    "judge with resolved vote set",
			current: cases.StatusInAgenda,
			cmd:     cases.StatusCommand{Status: cases.StatusJudged, VoteCount: 3, Resolved: true},
		},
		{
			name:    "judge with zero votes",
			current: cases.StatusInAgenda,
			cmd:     cases.StatusCommand{Status: cases.StatusJudged, Resolved: true},
			wantErr: cases.ErrNoVotes,
		},
		{
			name:    "judge with unresolved vote set",
			current: cases.StatusInAgenda,
			cmd:     cases.StatusCommand{Status: cases.StatusJudged, VoteCount: 1},
			wantErr: cases.ErrInvalidTransition,
		},
		{
			name:    "suspended returns to agenda",
			current: cases.StatusSuspended,
			cmd:     cases.StatusCommand{Status: cases.StatusInAgenda, Cause: "documents received"},
		},
		{
			name:    "suspended cannot jump to judged",
			current: cases.StatusSuspended,
			cmd:     cases.StatusCommand{Status: cases.StatusJudged, VoteCount: 3, Resolved: true},
			wantErr: cases.ErrInvalidTransition,
		},
		{
			name:    "inquiry cannot move to view requested",
			current: cases.StatusUnderInquiry,
			cmd:     cases.StatusCommand{Status: cases.StatusViewRequested, Cause: "x"},
			wantErr: cases.ErrInvalidTransition,
		},
		{
			name:    "judged is terminal",
			current: cases.StatusJudged,
			cmd:     cases.StatusCommand{Status: cases.StatusInAgenda, Cause: "reopen"},
			wantErr: cases.ErrInvalidTransition,
		},
		{
			name:    "same status rejected",
			current: cases.StatusInAgenda,
			cmd:     cases.StatusCommand{Status: cases.StatusInAgenda, Cause: "noop"},
			wantErr: cases.ErrInvalidTransition,
		},
		{
			name:    "unknown status rejected",
			current: cases.StatusInAgenda,
			cmd:     cases.StatusCommand{Status: "ARCHIVED", Cause: "x"},
			wantErr: cases.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cases.Transition(tt.current, tt.cmd)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Transition() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Transition() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
