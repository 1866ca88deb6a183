package domain

import (
	"errors"
	"net/http"
)

// Error kinds. Every error returned by the service layer wraps exactly one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

// Error carries a client-facing message together with its kind and an optional cause.
type Error struct {
	Kind    error
	Message string
	Details []string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(msg string, details ...string) *Error {
	e := newError(ErrValidation, msg)
	e.Details = details
	return e
}

func Unauthorized(msg string) *Error { return newError(ErrUnauthorized, msg) }
func Forbidden(msg string) *Error { return newError(ErrForbidden, msg) }
func NotFound(msg string) *Error { return newError(ErrNotFound, msg) }
func Conflict(msg string) *Error { return newError(ErrConflict, msg) }

// InvalidToken reports a token that failed signature, type or expiry checks.
func InvalidToken(cause error) *Error {
	return &Error{Kind: ErrInvalidToken, Message: "invalid or expired token", Cause: cause}
}

// Internal wraps an unexpected failure. The cause is logged, never shown to clients.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: ErrInternal, Message: msg, Cause: cause}
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to send to a client.
func PublicMessage(err error) string {
	var de *Error
	if errors.As(err, &de) && !errors.Is(err, ErrInternal) {
		return de.Message
	}
	if StatusCode(err) == http.StatusInternalServerError {
		return "something went wrong"
	}
	return err.Error()
}

// ErrorDetails returns per-field details attached to a validation error.
func ErrorDetails(err error) []string {
	var de *Error
	if errors.As(err, &de) && de.Details != nil {
		return de.Details
	}
	return []string{}
}
