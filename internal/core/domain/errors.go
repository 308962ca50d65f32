package domain

import "errors"

// ErrorKind classifies a domain error so adapters can map it to their
// transport (HTTP status, exit code, ...).
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindForbidden
	KindUnauthorized
	KindInternal
)

// Error is the error type returned by domain entities and orchestrators.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports a business rule violation.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewNotFoundError reports a missing aggregate.
func NewNotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// NewForbiddenError reports an authorization failure.
func NewForbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NewUnauthorizedError reports a missing or invalid identity.
func NewUnauthorizedError(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// NewInternalError wraps an infrastructure fault.
func NewInternalError(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindInternal for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsValidation reports whether err is a business rule violation.
func IsValidation(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == KindValidation
}

// IsNotFound reports whether err is a missing-aggregate error.
func IsNotFound(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == KindNotFound
}

// IsForbidden reports whether err is an authorization failure.
func IsForbidden(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == KindForbidden
}

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == KindUnauthorized
}
