package cases

import "fmt"

// Status is the adjudication status of a case appearance. The same state set
// applies to the case registry entry and to each of its session appearances:
// a judged appearance is terminal, but a continued case re-enters the agenda
// as a fresh appearance in a later session.
type Status string

// Adjudication statuses.
const (
	StatusInAgenda      Status = "IN_AGENDA"
	StatusSuspended     Status = "SUSPENDED"
	StatusUnderInquiry  Status = "UNDER_INQUIRY"
	StatusViewRequested Status = "VIEW_REQUESTED"
	StatusJudged        Status = "JUDGED"
)

// Valid reports whether s is a known adjudication status.
func (s Status) Valid() bool {
	switch s {
	case StatusInAgenda, StatusSuspended, StatusUnderInquiry, StatusViewRequested, StatusJudged:
		return true
	}
	return false
}

// Terminal reports whether s ends a session appearance.
func (s Status) Terminal() bool {
	return s == StatusJudged
}

// Transition validates a status change for a case appearance. It is the only
// guard applied to the status field; repositories persist whatever it admits.
//
// Judgment requires a resolved vote set. Every other change away from
// IN_AGENDA is an administrative override and must carry a recorded cause.
func Transition(current Status, cmd StatusCommand) error {
	if !cmd.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, cmd.Status)
	}

	if current.Terminal() {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, current)
	}

	if cmd.Status == current {
		return fmt.Errorf("%w: already %s", ErrInvalidTransition, current)
	}

	if current != StatusInAgenda {
		// Suspended, under-inquiry and view-requested appearances return to
		// the agenda before moving anywhere else.
		if cmd.Status != StatusInAgenda {
			return fmt.Errorf(
				"%w: %s -> %s",
				ErrInvalidTransition, current, cmd.Status,
			)
		}
	}

	if cmd.Status == StatusJudged {
		if cmd.VoteCount == 0 {
			return ErrNoVotes
		}
		if !cmd.Resolved {
			return fmt.Errorf("%w: vote set not resolved", ErrInvalidTransition)
		}
		return nil
	}

	if cmd.Cause == "" {
		return ErrCauseRequired
	}

	return nil
}
