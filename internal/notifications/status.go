package notifications

import (
	"fmt"
	"time"
)

// AttemptStatus is the delivery lifecycle status of a notification attempt.
type AttemptStatus string

// Attempt statuses.
const (
	StatusPending   AttemptStatus = "PENDING"
	StatusDelivered AttemptStatus = "DELIVERED"
	StatusConfirmed AttemptStatus = "CONFIRMED"
	StatusFailed    AttemptStatus = "FAILED"
	StatusExpired   AttemptStatus = "EXPIRED"
)

// Valid reports whether s is a known attempt status.
func (s AttemptStatus) Valid() bool {
	switch s {
	case StatusPending, StatusDelivered, StatusConfirmed, StatusFailed, StatusExpired:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s AttemptStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusFailed || s == StatusExpired
}

// Transition validates an attempt status change. Delivery outcomes are
// only reachable from PENDING; confirmation requires a prior delivery.
// Expiry is reachable from either open state but only once the attempt's
// deadline has passed.
func Transition(current, target AttemptStatus, deadline *time.Time, now time.Time) error {
	if !target.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}

	if current.Terminal() {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, current)
	}

	switch target {
	case StatusDelivered, StatusFailed:
		if current != StatusPending {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
		}
	case StatusConfirmed:
		if current != StatusDelivered {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
		}
	case StatusExpired:
		if deadline == nil || now.Before(*deadline) {
			return ErrDeadlineNotReached
		}
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}

	return nil
}
