package entities

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrValidation = errors.New("validation error")
)

// ValidationError reports the first malformed field of an input segment list
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

// Error implements error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path(), e.Reason)
}

// Path returns the offending field as segments[i].field
func (e *ValidationError) Path() string {
	return fmt.Sprintf("segments[%d].%s", e.Index, e.Field)
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
