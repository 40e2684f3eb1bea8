// Package domainerrors provides coded errors raised by domain models and
// services. Stores return sentinel errors (pkg/platform/sentinel); services
// translate them into coded errors the presentation layer can map onto its
// own contract.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error. Codes are closed: consumers switch on them
// exhaustively rather than matching message text.
type Code string

const (
	// CodeValidation marks malformed input rejected before any state change.
	CodeValidation Code = "validation"
	// CodeInvalidInput marks a well-formed value outside its allowed set.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks a lookup miss (token, step).
	CodeNotFound Code = "not_found"
	// CodeStateConflict marks an illegal transition. Meta carries the
	// violating step types under MetaBlockingSteps where applicable.
	CodeStateConflict Code = "state_conflict"
	// CodeExpired marks access through an expired token.
	CodeExpired Code = "expired"
	// CodeUnavailable marks a dependency that failed to produce a result.
	CodeUnavailable Code = "unavailable"
	// CodeInvariantViolation marks a broken aggregate invariant.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal marks unexpected failures with no better classification.
	CodeInternal Code = "internal"
)

// MetaBlockingSteps is the Meta key under which state-conflict errors list
// the step types blocking the requested transition.
const MetaBlockingSteps = "blocking_steps"

// Error is a coded domain error with optional structured metadata.
type Error struct {
	Code    Code
	Message string
	Meta    map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New returns a coded error with the given message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf returns a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a coded error that preserves the underlying cause for
// errors.Is/As chains.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// WithMeta attaches a metadata entry and returns the error for chaining.
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 1)
	}
	e.Meta[key] = value
	return e
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MetaValue returns the metadata entry stored under key, if any.
func MetaValue(err error, key string) (any, bool) {
	var de *Error
	if errors.As(err, &de) {
		v, ok := de.Meta[key]
		return v, ok
	}
	return nil, false
}
