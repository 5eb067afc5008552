// Package apperr defines the error kinds the storage layer reports.
// Callers distinguish kinds with errors.Is so that "already exists" is never
// confused with "storage unavailable".
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation indicates malformed input, detected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a uniqueness or concurrency violation: the row
	// (or a uniquely-constrained field of it) already exists.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates a storage connection or timeout failure.
	// Retryable by the caller; no data was corrupted.
	ErrUnavailable = errors.New("storage unavailable")
)

// Validationf returns an error wrapping ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Conflictf returns an error wrapping ErrConflict.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// NotFoundf returns an error wrapping ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Unavailablef returns an error wrapping ErrUnavailable.
func Unavailablef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, fmt.Sprintf(format, args...))
}

// HTTPStatus maps an error to the HTTP status code handlers should respond
// with. Unrecognized errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
