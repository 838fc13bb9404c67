package errors

import (
	"errors"
	"fmt"
)

// ── Error kinds ──
//
// Every business error carries one of these kinds. Callers branch on the
// kind with errors.Is; handlers map kinds to HTTP status codes.

var (
	ErrConflict         = errors.New("conflict")
	ErrInsufficientData = errors.New("insufficient data")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
)

// Error is a business error with a user-facing message and a kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind so errors.Is(err, ErrConflict) matches.
func (e *Error) Unwrap() error { return e.kind }

// Kind returns the kind sentinel of the error.
func (e *Error) Kind() error { return e.kind }

// Conflict creates a ConflictError.
func Conflict(msg string) *Error { return &Error{kind: ErrConflict, msg: msg} }

// InsufficientData creates an InsufficientDataError.
func InsufficientData(msg string) *Error { return &Error{kind: ErrInsufficientData, msg: msg} }

// NotFound creates a NotFoundError.
func NotFound(msg string) *Error { return &Error{kind: ErrNotFound, msg: msg} }

// Validation creates a ValidationError.
func Validation(msg string) *Error { return &Error{kind: ErrValidation, msg: msg} }

// Validationf creates a ValidationError with a formatted message.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// KindOf returns the kind sentinel carried by err, or nil for errors that
// are not business errors.
func KindOf(err error) error {
	for _, kind := range []error{ErrConflict, ErrInsufficientData, ErrNotFound, ErrValidation} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// ErrOptimisticLock means the row version changed since it was read.
var ErrOptimisticLock = Conflict("record was modified by another operation, refresh and retry")

// ErrDuplicate is returned by repositories when a write would break a
// uniqueness rule.
var ErrDuplicate = Conflict("record already exists")
