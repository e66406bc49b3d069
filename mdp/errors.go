package mdp

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every ValidationError through errors.Is
var ErrValidation = errors.New("mdp: validation failed")

// ValidationError reports which invariant of a model (or of an input
// to one of its operations) was violated
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mdp: invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
