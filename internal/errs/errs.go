// Package errs defines the error taxonomy shared by the floor-plan engine.
//
// Every error that crosses a package boundary carries a machine-readable
// Code so that callers (the CLI, the MCP server, the pipeline) can decide how
// to report it without string matching:
//
//   - INVALID_ARGUMENT: bad configuration or input rejected before any work
//   - OUT_OF_BOUNDS: caller contract violation, e.g. a rectangle outside the
//     obstacle mask; never clamped silently
//   - UNAVAILABLE: an optional collaborator (OCR) is not compiled in
//   - INTERNAL: anything else
//
// Degenerate geometry and empty input are not errors and never reach this
// package.
//
// # Usage
//
//	err := errs.New(errs.CodeInvalidArgument, "unknown cluster mode %q", mode)
//	if errs.Is(err, errs.CodeInvalidArgument) {
//	    // report to the user
//	}
package errs

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeOutOfBounds     Code = "OUT_OF_BOUNDS"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeInternal        Code = "INTERNAL"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a coded error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an existing error.
// Returns nil if err is nil.
func Wrap(code Code, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// CodeOf returns the code of the first *Error in err's chain, or
// CodeInternal if there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}
