// Package domainerrors defines the coded errors that cross service
// boundaries. Resolvers and transport translate codes into caller-visible
// payloads; anything without a code is treated as internal and sanitized.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies the category of a domain error.
type Code string

const (
	// CodeInvalidCredential covers malformed, expired, or unverifiable
	// bearer tokens. The context builder degrades these to anonymous
	// access instead of failing the request.
	CodeInvalidCredential Code = "invalid_credential"

	// CodeUnauthorized means the caller's role does not satisfy the
	// field's requirement. The message never names the required role.
	CodeUnauthorized Code = "unauthorized"

	// CodeValidation carries one or more input violations.
	CodeValidation Code = "validation_error"

	// CodeIllegalTransition means a donation status change is not in the
	// transition table, or lost a compare-and-set race.
	CodeIllegalTransition Code = "illegal_transition"

	CodeNotFound   Code = "not_found"
	CodeConflict   Code = "conflict"
	CodeBadRequest Code = "bad_request"
	CodeInternal   Code = "internal"
)

// Violation describes a single failed input constraint.
type Violation struct {
	Field  string
	Reason string
}

// Error is the concrete domain error type. Services construct these at the
// point of failure; callers branch on Code rather than message text.
type Error struct {
	Code       Code
	Message    string
	Violations []Violation
	cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error while preserving
// it for errors.Is/As chains and operator logs.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// NewValidation builds a validation error carrying every violated
// constraint, so callers get a complete diagnosis in one round trip.
func NewValidation(violations []Violation) *Error {
	return &Error{
		Code:       CodeValidation,
		Message:    "invalid input",
		Violations: violations,
	}
}

// HasCode reports whether err is (or wraps) a domain error with the code.
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

// ViolationsOf returns the violations attached to err, if any.
func ViolationsOf(err error) []Violation {
	var de *Error
	if errors.As(err, &de) {
		return de.Violations
	}
	return nil
}
