package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain failure carrying a stable code and the HTTP status it maps to.
// Two errors with the same code are the same kind; see Is.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error with the same code, so a clone with a custom message still
// satisfies errors.Is against its sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if e == nil || !errors.As(target, &t) || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches a code, status and message to an underlying error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// WrapAs wraps err as the given kind with a caller-facing message.
func WrapAs(kind *Error, err error, message string) *Error {
	if message == "" {
		message = kind.Message
	}
	return Wrap(err, kind.Code, kind.Status, message)
}

var (
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden    = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	// Scheduling outcomes.
	ErrConflict                = New("CONFLICT", http.StatusConflict, "conflict")
	ErrSlotNotBookable         = New("SLOT_NOT_BOOKABLE", http.StatusUnprocessableEntity, "slot is not bookable")
	ErrInvalidStatusTransition = New("INVALID_STATUS_TRANSITION", http.StatusConflict, "invalid status transition")

	// ErrCacheMiss never reaches clients; the analysis is recomputed instead.
	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError returns the *Error in err's chain, or wraps err as ErrInternal.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return WrapAs(ErrInternal, err, "")
}

// Clone copies a sentinel, optionally replacing its message.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
