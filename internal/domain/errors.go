package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an application error for transport mapping.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "not_found"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindConflict       ErrorKind = "conflict"
	KindInternal       ErrorKind = "internal"
)

// AppError is the typed error raised by the domain and application layers.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *AppError) Unwrap() error { return e.Err }

// NewNotFoundError reports that an entity with the given key does not exist.
func NewNotFoundError(entity, key string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", entity, key),
	}
}

// NewInvalidRequestError reports a request that violates a business rule.
func NewInvalidRequestError(message string) *AppError {
	return &AppError{Kind: KindInvalidRequest, Message: message}
}

// NewConflictError reports a uniqueness or concurrent-modification conflict.
func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewInternalError wraps an unexpected failure such as a photo encoding error.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: cause}
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not-found AppError.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsInvalidRequest reports whether err is an invalid-request AppError.
func IsInvalidRequest(err error) bool { return KindOf(err) == KindInvalidRequest }
