package lathe

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnknownOperation = errors.New("operation not recognised")
)

// ParameterError describes a job parameter that the planner refuses to work with.
type ParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%v: %s = %g: %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}
