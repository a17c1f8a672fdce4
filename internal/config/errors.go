package config

import (
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeJobInvalid   = "JOB_INVALID"
	ErrCodeJobParse     = "JOB_PARSE"
	ErrCodeFileNotFound = "FILE_NOT_FOUND"
	ErrCodeFileWrite    = "FILE_WRITE"
	ErrCodeFormat       = "FORMAT_UNSUPPORTED"
	ErrCodeInput        = "INPUT_INVALID"
)

// UserError is a boundary error that a front end can show without aborting.
type UserError struct {
	Code       string
	Message    string
	Context    string // file path or parameter name
	Suggestion string
	Underlying error
}

func (e *UserError) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, " (at %s)", e.Context)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, ": %v", e.Underlying)
	}

	return b.String()
}

func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is matches another *UserError with the same code.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

func invalid(field, format string, args ...any) *UserError {
	return &UserError{
		Code:    ErrCodeJobInvalid,
		Message: fmt.Sprintf(format, args...),
		Context: field,
	}
}
