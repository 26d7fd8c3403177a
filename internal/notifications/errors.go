package notifications

import (
	"errors"
	"net/http"
)

// Domain errors for notification tracking.
var (
	ErrListNotFound       = errors.New("notification list not found")
	ErrItemNotFound       = errors.New("notification item not found")
	ErrAttemptNotFound    = errors.New("notification attempt not found")
	ErrDuplicateItem      = errors.New("case already enrolled in this list")
	ErrInvalidTransition  = errors.New("invalid attempt status transition")
	ErrDeadlineNotReached = errors.New("attempt deadline has not passed")
	ErrInvalid            = errors.New("invalid notification request")
)

// MapHTTPStatus maps notification domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrListNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrAttemptNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicateItem) || errors.Is(err, ErrInvalidTransition) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrDeadlineNotReached) || errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
