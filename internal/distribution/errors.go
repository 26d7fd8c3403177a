package distribution

import (
	"errors"
	"net/http"

	"plenario/internal/sessions"
)

// Domain errors for distribution operations.
var (
	ErrNotFound           = errors.New("distribution not found")
	ErrAuthorityConflict  = errors.New("assignee is a registered authority on the case")
	ErrDistributionLocked = errors.New("distribution is locked: votes already recorded")
	ErrNotAttending       = errors.New("assignee is not attending the session")
	ErrInvalid            = errors.New("invalid distribution request")
)

// MapHTTPStatus maps distribution domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, sessions.ErrCaseNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrAuthorityConflict) ||
		errors.Is(err, ErrDistributionLocked) ||
		errors.Is(err, sessions.ErrSessionClosed) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNotAttending) || errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
