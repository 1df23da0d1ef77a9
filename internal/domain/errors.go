package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure for the HTTP boundary.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindBadRequest
	KindUnauthenticated
	KindInvalidCredential
	KindForbidden
	KindNotFound
	KindConflict
	KindMethodNotAllowed
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal"
	}
}

// Error is the typed failure every service returns. Message is safe to show
// to the caller; Err is the underlying cause and is only logged.
type Error struct {
	Kind    ErrorKind
	Message string
	Errors  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func BadRequest(msg string, details ...string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg, Errors: details}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func InvalidCredential(msg string) *Error {
	return &Error{Kind: KindInvalidCredential, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func MethodNotAllowed(msg string) *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: msg}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the kind of err. Untyped errors are internal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
