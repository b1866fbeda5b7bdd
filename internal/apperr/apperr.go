package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error. Every error that crosses a service
// boundary carries exactly one kind; the HTTP status is derived from it.
type Kind int

const (
	// KindValidation marks malformed input rejected before the handler ran.
	KindValidation Kind = iota
	// KindUnauthorized marks a missing or unverifiable identity.
	KindUnauthorized
	// KindForbidden marks an authenticated identity lacking permission.
	KindForbidden
	// KindNotFound marks a missing entity.
	KindNotFound
	// KindConflict marks a uniqueness violation (duplicate email/phone).
	KindConflict
	// KindRateLimited marks a caller exceeding the login attempt budget.
	KindRateLimited
	// KindInternal marks any unclassified failure; its message is suppressed
	// at the HTTP boundary.
	KindInternal
)

var kindStatus = map[Kind]int{
	KindValidation:   http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindNotFound:     http.StatusNotFound,
	KindConflict:     http.StatusConflict,
	KindRateLimited:  http.StatusTooManyRequests,
	KindInternal:     http.StatusInternalServerError,
}

// FieldError describes a single validation violation.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error is the application error type. Services return *Error for every
// expected failure; anything else is treated as internal.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Status: kindStatus[kind], Message: message}
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// Forbidden builds a 403 error.
func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

// NotFound builds a 404 error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// NotFoundf builds a 404 error with a formatted message, typically carrying
// the entity id.
func NotFoundf(format string, args ...interface{}) *Error {
	return New(KindNotFound, fmt.Sprintf(format, args...))
}

// Conflict builds a 409 error.
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// RateLimited builds a 429 error.
func RateLimited(message string) *Error {
	return New(KindRateLimited, message)
}

// Validation builds a 400 error aggregating all field violations.
func Validation(fields []FieldError) *Error {
	e := New(KindValidation, "Validation failed")
	e.Fields = fields
	return e
}

// Internal wraps an unclassified failure. The original error is retained for
// server-side logging; the client never sees it.
func Internal(cause error) *Error {
	e := New(KindInternal, "Internal Server Error")
	e.cause = cause
	return e
}

// FromError returns err as *Error, wrapping unclassified errors as internal.
func FromError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
