package domain

import (
	"errors"
	"fmt"
)

// InvalidParameterError is returned when a position, model or config
// input is malformed. Field names the offending input so the caller can
// surface it verbatim.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

func NewInvalidParameterError(field string, format string, args ...interface{}) error {
	return InvalidParameterError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

// ResourceLimitError is returned when a request would exceed a configured
// ceiling. Ceiling is included so the caller can retry with less scope.
type ResourceLimitError struct {
	Field     string
	Requested int
	Ceiling   int
}

func (e ResourceLimitError) Error() string {
	return fmt.Sprintf("%s of %d exceeds ceiling of %d", e.Field, e.Requested, e.Ceiling)
}

// ErrNotFound is wrapped by lookups of stored runs and models
var ErrNotFound = errors.New("not found")
