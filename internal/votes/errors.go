package votes

import (
	"errors"
	"net/http"

	"plenario/internal/sessions"
)

// Domain errors for vote operations.
var (
	ErrNotFound            = errors.New("vote not found")
	ErrTemplateNotFound    = errors.New("decision template not found")
	ErrNotDistributed      = errors.New("member is not distributed on this case")
	ErrDuplicateVote       = errors.New("member has already voted on this case")
	ErrIncompleteRationale = errors.New("vote rationale incomplete: select a preliminary or ex-officio template")
	ErrInvalid             = errors.New("invalid vote request")
)

// MapHTTPStatus maps vote domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, sessions.ErrCaseNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicateVote) || errors.Is(err, sessions.ErrSessionClosed) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNotDistributed) ||
		errors.Is(err, ErrIncompleteRationale) ||
		errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
