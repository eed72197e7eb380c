package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a referenced project, task, or employee does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a concurrent mutation was detected on the same
// project chain. Callers may retry; the failed operation persisted nothing.
var ErrConflict = errors.New("concurrent modification detected")

// ValidationError reports a rejected field value. Scheduling code validates
// the full proposed state before any write, so a ValidationError always means
// nothing was persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
