package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for the domain layer.
var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks a missing or incorrect API key.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound marks an unknown endpoint or resource.
	ErrNotFound = errors.New("not found")
	// ErrUpstream marks a failure talking to an external gateway.
	ErrUpstream = errors.New("upstream gateway failed")
)

// MissingFields builds a validation error listing every absent required field.
func MissingFields(fields ...string) error {
	return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(fields, ", "))
}

// Validationf builds a validation error from a format string.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// RespondError maps domain errors onto the response envelope. Unclassified
// errors surface their message verbatim; this API serves an internal admin
// dashboard, not the public internet.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		Fail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrNotFound):
		Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUpstream):
		Fail(w, http.StatusInternalServerError, err.Error())
	default:
		Fail(w, http.StatusInternalServerError, err.Error())
	}
}
