// Package errors provides coded error types for gdlkit's outer layers.
//
// The document model in pkg/gdl reports caller bugs by panicking and sink
// failures with plain wrapped errors. Everything above it (description
// decoding, rendering, storage, the CLI and the HTTP API) speaks in coded
// errors so that the HTTP layer can choose a status and the CLI can print a
// short message.
//
// # Error Codes
//
//   - INVALID_*: the caller sent something unusable
//   - NOT_FOUND: a stored document or cached artifact does not exist
//   - CYCLE: a graph was attached below itself
//   - RENDER_FAILED, STORAGE, INTERNAL: the failure is on our side
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown edge kind %q", kind)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // reject the request
//	}
//
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "save document %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeCycle         Code = "CYCLE"

	ErrCodeRenderFailed Code = "RENDER_FAILED"
	ErrCodeStorage      Code = "STORAGE"
	ErrCodeInternal     Code = "INTERNAL"
)

// CallerFault reports whether the code blames whoever supplied the input
// rather than gdlkit or its backends.
func (c Code) CallerFault() bool {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeNotFound, ErrCodeCycle:
		return true
	}
	return false
}

// Error pairs a Code with a short message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error that records cause. A nil cause behaves like New.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// outermost finds the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error, or "" if err carries none.
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for other errors.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}
