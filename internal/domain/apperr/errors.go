// Package apperr defines the closed set of error kinds the application
// layer can return. Handlers map kinds to HTTP status codes; the
// service never does transport translation itself.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidEmail
	KindAlreadyExists
	KindInvalidArgument
)

// Error carries a kind and a caller-facing message. The message is the
// full error text; kinds are for dispatch, not display.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Kind() Kind { return e.kind }

func newf(k Kind, format string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return newf(KindNotFound, format, args...)
}

func InvalidEmail(format string, args ...any) *Error {
	return newf(KindInvalidEmail, format, args...)
}

func AlreadyExists(format string, args ...any) *Error {
	return newf(KindAlreadyExists, format, args...)
}

func InvalidArgument(format string, args ...any) *Error {
	return newf(KindInvalidArgument, format, args...)
}

// KindOf returns the kind of err, or KindUnknown when err does not wrap
// an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }
