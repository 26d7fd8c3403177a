package sessions_test

import (
	"errors"
	"math"
	"testing"

	"plenario/internal/cases"
	"plenario/internal/sessions"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		current sessions.Status
		target  sessions.Status
		wantErr bool
	}{
		{name: "publish agenda", current: sessions.StatusAwaitingPublication, target: sessions.StatusAgendaPublished},
		{name: "start session", current: sessions.StatusAgendaPublished, target: sessions.StatusInProgress},
		{name: "conclude session", current: sessions.StatusInProgress, target: sessions.StatusConcluded},
		{name: "cancel before publication", current: sessions.StatusAwaitingPublication, target: sessions.StatusCancelled},
		{name: "cancel in progress", current: sessions.StatusInProgress, target: sessions.StatusCancelled},
		{name: "skip publication", current: sessions.StatusAwaitingPublication, target: sessions.StatusInProgress, wantErr: true},
		{name: "skip to concluded", current: sessions.StatusAgendaPublished, target: sessions.StatusConcluded, wantErr: true},
		{name: "reverse direction", current: sessions.StatusInProgress, target: sessions.StatusAgendaPublished, wantErr: true},
		{name: "concluded is terminal", current: sessions.StatusConcluded, target: sessions.StatusCancelled, wantErr: true},
		{name: "cancelled is terminal", current: sessions.StatusCancelled, target: sessions.StatusAgendaPublished, wantErr: true},
		{name: "unknown target", current: sessions.StatusInProgress, target: "PAUSED", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sessions.Transition(tt.current, tt.target)
			if tt.wantErr {
				if !errors.Is(err, sessions.ErrInvalidTransition) {
					t.Errorf("Transition() error = %v, want ErrInvalidTransition", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Transition() error = %v, want nil", err)
			}
		})
	}
}

func TestGuardAgendaEntry(t *testing.T) {
	tests := []struct {
		name         string
		caseStatus   cases.Status
		judgedInOpen bool
		wantErr      bool
	}{
		{name: "open case enters agenda", caseStatus: cases.StatusInAgenda},
		{name: "suspended case returns to agenda", caseStatus: cases.StatusSuspended},
		{name: "judged in concluded session re-enters as continuance", caseStatus: cases.StatusJudged},
		{name: "judged in open session is rejected", caseStatus: cases.StatusJudged, judgedInOpen: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sessions.GuardAgendaEntry(tt.caseStatus, tt.judgedInOpen)
			if tt.wantErr {
				if !errors.Is(err, sessions.ErrInvalidTransition) {
					t.Errorf("GuardAgendaEntry() error = %v, want ErrInvalidTransition", err)
				}
				return
			}
			if err != nil {
				t.Errorf("GuardAgendaEntry() error = %v, want nil", err)
			}
		})
	}
}

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []cases.Status
		wantResolved int
		wantPercent  float64
	}{
		{
			name: "empty agenda",
		},
		{
			name:     "nothing resolved",
			statuses: []cases.Status{cases.StatusInAgenda, cases.StatusInAgenda},
		},
		{
			name: "suspension counts as resolved",
			statuses: []cases.Status{
				cases.StatusJudged, cases.StatusSuspended,
				cases.StatusInAgenda, cases.StatusInAgenda,
			},
			wantResolved: 2,
			wantPercent:  50,
		},
		{
			name: "fully judged",
			statuses: []cases.Status{
				cases.StatusJudged, cases.StatusJudged, cases.StatusJudged,
			},
			wantResolved: 3,
			wantPercent:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sessions.ComputeProgress(tt.statuses)
			if p.Total != len(tt.statuses) {
				t.Errorf("Total = %d, want %d", p.Total, len(tt.statuses))
			}
			if p.Resolved != tt.wantResolved {
				t.Errorf("Resolved = %d, want %d", p.Resolved, tt.wantResolved)
			}
			if math.Abs(p.Percentage-tt.wantPercent) > 1e-9 {
				t.Errorf("Percentage = %f, want %f", p.Percentage, tt.wantPercent)
			}
		})
	}
}
