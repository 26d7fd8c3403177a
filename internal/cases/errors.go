package cases

import (
	"errors"
	"net/http"
)

// Domain errors for case operations.
var (
	ErrNotFound          = errors.New("case not found")
	ErrDuplicate         = errors.New("case already exists")
	ErrInvalidTransition = errors.New("invalid case status transition")
	ErrCauseRequired     = errors.New("administrative status change requires a recorded cause")
	ErrNoVotes           = errors.New("case cannot be judged with no votes recorded")
	ErrInvalid           = errors.New("invalid case request")
)

// MapHTTPStatus maps case domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrNoVotes) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrCauseRequired) || errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
