package sessions

import (
	"fmt"

	"plenario/internal/cases"
)

// Status is the lifecycle status of a session.
type Status string

// Session statuses.
const (
	StatusAwaitingPublication Status = "AWAITING_PUBLICATION"
	StatusAgendaPublished     Status = "AGENDA_PUBLISHED"
	StatusInProgress          Status = "IN_PROGRESS"
	StatusConcluded           Status = "CONCLUDED"
	StatusCancelled           Status = "CANCELLED"
)

// Valid reports whether s is a known session status.
func (s Status) Valid() bool {
	switch s {
	case StatusAwaitingPublication, StatusAgendaPublished, StatusInProgress,
		StatusConcluded, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions. A concluded
// session freezes its distributions and votes.
func (s Status) Terminal() bool {
	return s == StatusConcluded || s == StatusCancelled
}

// next holds the forward edge of the session lifecycle.
var next = map[Status]Status{
	StatusAwaitingPublication: StatusAgendaPublished,
	StatusAgendaPublished:     StatusInProgress,
	StatusInProgress:          StatusConcluded,
}

// Transition validates a session status change. Sessions advance along the
// publication chain one step at a time; cancellation is reachable from any
// non-terminal state.
func Transition(current, target Status) error {
	if !target.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}

	if current.Terminal() {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, current)
	}

	if target == StatusCancelled {
		return nil
	}

	if next[current] != target {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}

	return nil
}

// GuardAgendaEntry validates placing a case on a session agenda. A judged
// case re-enters the agenda only as a continuance, after the session that
// judged it has closed; while that session is still open the judgment
// stands and the registry entry must not be reopened.
func GuardAgendaEntry(caseStatus cases.Status, judgedInOpenSession bool) error {
	if caseStatus.Terminal() && judgedInOpenSession {
		return fmt.Errorf("%w: case judged in an open session", ErrInvalidTransition)
	}
	return nil
}

// ComputeProgress derives the agenda completion of a session from the status
// of its appearances. Every appearance that has left the open agenda counts
// as resolved.
func ComputeProgress(statuses []cases.Status) Progress {
	p := Progress{Total: len(statuses)}
	if p.Total == 0 {
		return p
	}

	for _, s := range statuses {
		if s != cases.StatusInAgenda {
			p.Resolved++
		}
	}

	p.Percentage = float64(p.Resolved) / float64(p.Total) * 100
	return p
}
