package decisions

import (
	"errors"
	"net/http"
)

// Domain errors for decision operations.
var (
	ErrNotFound       = errors.New("decision not found")
	ErrCaseNotFound   = errors.New("case not found")
	ErrAlreadyEmitted = errors.New("decision already emitted for this case")
	ErrCaseNotJudged  = errors.New("case has not reached a judged state")
	ErrInvalid        = errors.New("invalid decision request")
	ErrInvalidFile    = errors.New("invalid or unreadable file")
	ErrNotPDF         = errors.New("attachment must be a PDF document")
	ErrFileTooLarge   = errors.New("file exceeds maximum upload size")
)

// MapHTTPStatus maps decision domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCaseNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrAlreadyEmitted) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrCaseNotJudged) ||
		errors.Is(err, ErrInvalid) ||
		errors.Is(err, ErrInvalidFile) ||
		errors.Is(err, ErrNotPDF) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
