// Package apperr defines the error taxonomy shared by services and handlers.
// Callers should use errors.As / KindOf to map errors to HTTP responses.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal   Kind = iota // 500
	KindValidation             // 400
	KindConflict               // 400, message names the offending field+value
	KindNotFound               // 404
	KindAuth                   // 401
	KindExpired                // 400
)

// Error carries a kind, a user-facing message, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validationf builds a validation error (missing/malformed input).
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a uniqueness-violation error.
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not-found error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Authf builds an authentication error.
func Authf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

// Expiredf builds an expiry error.
func Expiredf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindExpired, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure from a store or downstream service.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Err: err}
}

// KindOf returns the kind of err, defaulting to KindInternal for plain errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
