package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failure surfaced to callers.
type Kind int

const (
	KindUnauthenticated Kind = iota + 1
	KindForbidden
	KindNotFound
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

// Error is a classified failure with a human-readable message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Is matches any *Error of the same Kind, so errors.Is(err, ErrForbidden)
// holds regardless of the message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Msg: "unauthenticated"}
	ErrForbidden       = &Error{Kind: KindForbidden, Msg: "forbidden"}
	ErrNotFound        = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrConflict        = &Error{Kind: KindConflict, Msg: "conflict"}
	ErrValidation      = &Error{Kind: KindValidation, Msg: "validation failed"}
)

func newError(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or 0 for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
