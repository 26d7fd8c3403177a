package members

import (
	"errors"
	"net/http"
)

// Domain errors for directory lookups.
var (
	ErrNotFound = errors.New("member not found")
	ErrInvalid  = errors.New("invalid member request")
)

// MapHTTPStatus maps directory errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
