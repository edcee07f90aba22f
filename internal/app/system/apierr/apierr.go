// Package apierr defines the domain error kinds surfaced by the API.
//
// Stores and services wrap one of the sentinel kinds with a human-readable
// message; the HTTP boundary (features/errors) maps the kind to a status
// code with errors.Is. Anything that does not match a kind is an internal
// error and its message never reaches the client.
package apierr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
)

// Error pairs a kind with the message shown to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap lets errors.Is match the kind.
func (e *Error) Unwrap() error { return e.Kind }

func newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation reports a missing or malformed field.
func Validation(format string, args ...any) error { return newf(ErrValidation, format, args...) }

// NotFound reports a missing record.
func NotFound(format string, args ...any) error { return newf(ErrNotFound, format, args...) }

// AlreadyExists reports a uniqueness conflict.
func AlreadyExists(format string, args ...any) error { return newf(ErrAlreadyExists, format, args...) }

// Unauthorized reports a missing or invalid session.
func Unauthorized(format string, args ...any) error { return newf(ErrUnauthorized, format, args...) }

// Message returns the client-facing message for err. Kinds without an
// explicit message fall back to the kind's own text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	for _, k := range []error{ErrValidation, ErrUnauthorized, ErrInvalidCredentials, ErrNotFound, ErrAlreadyExists} {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return "internal server error"
}

// IsDomain reports whether err carries one of the domain kinds.
func IsDomain(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyExists)
}
