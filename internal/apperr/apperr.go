// Package apperr defines the application error taxonomy shared by the
// store and the RPC handlers. Every error surfaced to a caller carries a
// stable machine-readable kind plus a human-readable message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the caller.
type Kind string

const (
	// KindValidation marks malformed or out-of-range input. Recoverable
	// by the caller correcting the input.
	KindValidation Kind = "validation"

	// KindUnauthorized marks a role or ownership check failure. Not
	// retryable without a different session.
	KindUnauthorized Kind = "unauthorized"

	// KindNotFound marks a missing target record or a dangling foreign
	// reference in the input.
	KindNotFound Kind = "not_found"

	// KindConstraintViolation marks a unique constraint failure on a
	// slug, username, or email.
	KindConstraintViolation Kind = "constraint_violation"

	// KindInvalidCredentials marks a failed login. Intentionally does not
	// reveal whether the email or the password was wrong.
	KindInvalidCredentials Kind = "invalid_credentials"

	// KindInternal marks an unexpected server-side failure.
	KindInternal Kind = "internal"
)

// Error is a classified application error. Field names the offending
// input field where one applies.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Validation returns a validation error for the given field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Unauthorized returns a permission-denied error.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NotFound returns a missing-record error. Field names the reference that
// failed to resolve ("author", "category") or is empty for the target
// record itself.
func NotFound(field, message string) *Error {
	return &Error{Kind: KindNotFound, Field: field, Message: message}
}

// Conflict returns a unique constraint violation naming the offending field.
func Conflict(field, message string) *Error {
	return &Error{Kind: KindConstraintViolation, Field: field, Message: message}
}

// InvalidCredentials returns the single generic login failure error.
func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "invalid email or password"}
}

// KindOf extracts the Kind from err, unwrapping as needed. Unclassified
// errors report KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// As unwraps err to an *Error, or nil if it is not one.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
