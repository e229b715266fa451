// Package proto defines the wire types exchanged with the embedded
// identity frontend and the typed errors surfaced by the bridge.
package proto

import (
	"errors"
	"fmt"
)

// Error is a typed bridge error. Errors are matched by name, so
// errors.Is(err, proto.ErrMissingToken) works on wrapped copies carrying a
// cause.
type Error struct {
	Name    string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"msg"`

	cause error
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s %d: %s: %v", e.Name, e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s %d: %s", e.Name, e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if rpcErr, ok := target.(*Error); ok {
		return rpcErr.Name == e.Name
	}
	return errors.Is(e.cause, target)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause returns a copy of the error carrying cause for unwrapping.
func (e *Error) WithCause(cause error) *Error {
	err := *e
	err.cause = cause
	return &err
}

// WithCausef returns a copy of the error with a formatted cause. The format
// string supports %w.
func (e *Error) WithCausef(format string, args ...interface{}) *Error {
	err := *e
	err.cause = fmt.Errorf(format, args...)
	return &err
}

var (
	ErrMissingValidationID = &Error{Name: "MissingValidationID", Code: 1000, Message: "validation id is required"}
	ErrMissingToken        = &Error{Name: "MissingToken", Code: 1001, Message: "token is required"}
	ErrInternal            = &Error{Name: "InternalError", Code: 1999, Message: "internal error"}
)
