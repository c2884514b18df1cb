package model

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel kind behind every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a malformed input field. Callers match it with
// errors.Is(err, ErrValidation) or errors.As for the field name.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap exposes ErrValidation to errors.Is.
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
