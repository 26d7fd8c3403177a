package sessions

import (
	"errors"
	"net/http"
)

// Domain errors for session operations.
var (
	ErrNotFound          = errors.New("session not found")
	ErrCaseNotFound      = errors.New("session case not found")
	ErrDuplicate         = errors.New("case already on this session's agenda")
	ErrInvalidTransition = errors.New("invalid session status transition")
	ErrSessionClosed     = errors.New("session is concluded and frozen")
	ErrInvalid           = errors.New("invalid session request")
)

// MapHTTPStatus maps session domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCaseNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrSessionClosed) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
