package services

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-readable category of a service failure
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindCapacityExceeded ErrorKind = "capacity_exceeded"
	KindNotAvailable     ErrorKind = "not_available"
	KindWeekFinalized    ErrorKind = "week_finalized"
	KindNotFound         ErrorKind = "not_found"
	KindAuthorization    ErrorKind = "authorization"
	KindInternal         ErrorKind = "internal"
)

// Error is a per-request failure the caller can fix by changing its input
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches any Error of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of the message
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation       = &Error{Kind: KindValidation}
	ErrCapacityExceeded = &Error{Kind: KindCapacityExceeded}
	ErrNotAvailable     = &Error{Kind: KindNotAvailable}
	ErrWeekFinalized    = &Error{Kind: KindWeekFinalized}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrAuthorization    = &Error{Kind: KindAuthorization}
)

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

func notFoundError(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

func authorizationError(format string, args ...interface{}) *Error {
	return newError(KindAuthorization, format, args...)
}

// KindOf returns the kind of a service error, or KindInternal for anything else
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
