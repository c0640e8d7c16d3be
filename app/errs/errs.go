// Package errs defines the error taxonomy shared by services and
// controllers. Services return kind-tagged errors; the HTTP boundary
// maps each kind to a status code via response.FromError.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error for boundary mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindPermission
	KindNotFound
	KindInsufficientStock
)

// Error is a kind-tagged error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ── Constructors ─────────────────────────────────────────────────────────────

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }
func Permission(msg string) error { return &Error{Kind: KindPermission, Message: msg} }

func Authentication(msg string) error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func InsufficientStock(msg string) error {
	return &Error{Kind: KindInsufficientStock, Message: msg}
}

func NotFoundf(format string, args ...any) error {
	return NotFound(fmt.Sprintf(format, args...))
}

func InsufficientStockf(format string, args ...any) error {
	return InsufficientStock(fmt.Sprintf(format, args...))
}

// Internal wraps an unexpected failure. Its message is suppressed from
// responses outside dev mode.
func Internal(err error) error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// ── Inspection ───────────────────────────────────────────────────────────────

// KindOf returns the kind carried by err, or KindInternal for untagged
// errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message carried by err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }
