// Package apperror defines the error taxonomy shared by services and the
// HTTP response layer. Every failure a client can see is an *Error with a
// Kind; the Kind alone decides the HTTP status.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidFormat
	KindForeignKeyInvalid
	KindConflict
	KindNotFound
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidFormat:
		return "invalid_format"
	case KindForeignKeyInvalid:
		return "foreign_key_invalid"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindInvalidFormat, KindForeignKeyInvalid:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a short Title (the envelope "error" field) and a longer
// Message (the envelope "message" field) for the client, plus an optional
// underlying cause.
type Error struct {
	Kind    Kind
	Title   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Title + ": " + e.Err.Error()
	}
	if e.Message != "" {
		return e.Title + ": " + e.Message
	}
	return e.Title
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, title, message string) *Error {
	return &Error{Kind: kind, Title: title, Message: message}
}

func Validation(title, message string) *Error {
	return New(KindValidation, title, message)
}

func InvalidFormat(title, message string) *Error {
	return New(KindInvalidFormat, title, message)
}

func ForeignKeyInvalid(title, message string) *Error {
	return New(KindForeignKeyInvalid, title, message)
}

func Conflict(title, message string) *Error {
	return New(KindConflict, title, message)
}

func NotFound(title, message string) *Error {
	return New(KindNotFound, title, message)
}

func Unauthorized(title, message string) *Error {
	return New(KindUnauthorized, title, message)
}

// Internal wraps err; the client sees title and the raw error message.
func Internal(title string, err error) *Error {
	e := &Error{Kind: KindInternal, Title: title, Err: err}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
