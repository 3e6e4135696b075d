// internal/services/errors.go
package services

import (
	"errors"

	"github.com/shopfront/ecommerce-backend/internal/i18n"
)

// Error kinds. Handlers map each kind to an HTTP status.
var (
	ErrBadRequest        = errors.New("bad request")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAlreadyExists     = errors.New("already exists")
	ErrUnauthorized      = errors.New("unauthorized")
)

// Error is a domain failure carrying a translation key for the client-facing
// message. errors.Is matches it against its kind.
type Error struct {
	Kind    error
	Key     string
	Args    []interface{}
	Details interface{}
}

// Error renders the message in English.
func (e *Error) Error() string {
	return e.Localize("en")
}

// Localize renders the message in lang, falling back to the default locale.
func (e *Error) Localize(lang string) string {
	return i18n.T(lang, e.Key, e.Args...)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, key string, args ...interface{}) *Error {
	return &Error{Kind: kind, Key: key, Args: args}
}

func badRequest(key string, args ...interface{}) *Error {
	return newError(ErrBadRequest, key, args...)
}

func notFound(key string, args ...interface{}) *Error {
	return newError(ErrNotFound, key, args...)
}

func forbidden(key string, args ...interface{}) *Error {
	return newError(ErrForbidden, key, args...)
}
