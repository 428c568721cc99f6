// Package errs defines the structured errors returned by the chat store.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies an expected failure. Every error crossing the store's
// public API carries exactly one of these codes.
type Code string

const (
	// BadVal indicates a parameter value failed validation.
	BadVal Code = "E_BAD_VAL"
	// Missing indicates a required field was absent.
	Missing Code = "E_MISSING"
	// DB indicates an unclassified storage failure.
	DB Code = "E_DB"
	// Exists indicates a uniqueness violation on create or update.
	Exists Code = "E_EXISTS"
	// NotFound indicates a lookup by id or unique field matched nothing.
	NotFound Code = "E_NOT_FOUND"
)

// Error is a coded error with a human-readable message. It may wrap an
// underlying cause (typically a driver error for DB failures).
type Error struct {
	Code  Code
	Msg   string
	cause error
}

// New builds an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error whose cause is err; the cause remains reachable
// via errors.Unwrap for callers that need the driver-level detail.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.cause }

// CodeOf extracts the code from any error produced by the store.
// Errors without an embedded code are treated as storage failures.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var list List
	if errors.As(err, &list) && len(list) > 0 {
		return list[0].Code
	}
	return DB
}

// HasCode reports whether err carries the given code. For a List the
// check succeeds if any member matches.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	var list List
	if errors.As(err, &list) {
		for _, le := range list {
			if le.Code == code {
				return true
			}
		}
	}
	return false
}

// List aggregates several simultaneous failures, e.g. multiple invalid
// fields reported by validation in a single pass.
type List []*Error

func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}
