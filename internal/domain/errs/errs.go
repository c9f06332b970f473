// Package errs holds the error kinds every domain error wraps. Transport
// adapters map them to status codes with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Validation returns an ErrValidation carrying a client-facing message.
func Validation(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

// Forbidden returns an ErrForbidden carrying a client-facing message.
func Forbidden(msg string) error {
	return &kindError{kind: ErrForbidden, msg: msg}
}

// Wrap tags msg with kind; the result's Error() is msg alone.
func Wrap(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// IsClientError reports whether err belongs to one of the client-facing kinds.
func IsClientError(err error) bool {
	for _, k := range []error{ErrValidation, ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrConflict} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) error {
	return Validation(fmt.Sprintf(format, args...))
}
