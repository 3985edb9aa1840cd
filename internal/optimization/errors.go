package optimization

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks precondition violations at a call boundary: a
// malformed bracket, a non-positive accuracy, or a negative iteration budget.
// Use errors.Is to detect it through wrapping.
var ErrInvalidInput = errors.New("invalid input")

// Error is an optimization error carrying the operation and component it
// came from.
type Error struct {
	// Message describes the error that occurred.
	Message string
	// Op is the operation that caused the error.
	Op string
	// Component is the component where the error occurred.
	Component string
	// Err is the underlying error that triggered this one, if any.
	Err error
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var prefix string
	switch {
	case e.Component != "" && e.Op != "":
		prefix = fmt.Sprintf("%s: %s", e.Component, e.Op)
	case e.Component != "":
		prefix = e.Component
	case e.Op != "":
		prefix = e.Op
	}

	msg := e.Message
	if e.Err != nil && !errors.Is(e.Err, ErrInvalidInput) {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if prefix != "" {
		return fmt.Sprintf("%s: %s", prefix, msg)
	}
	return msg
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewErrorf creates a new optimization error with a formatted message.
func NewErrorf(format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
	}
}

// NewInvalidInput creates a precondition-violation error for the named
// operation. The result unwraps to ErrInvalidInput.
func NewInvalidInput(op, format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Op:      op,
		Err:     ErrInvalidInput,
	}
}

// IsInvalidInput reports whether err is a precondition violation.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// WrapError wraps an existing error with additional context.
// If err is nil, WrapError returns nil.
func WrapError(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}
