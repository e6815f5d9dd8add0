// ABOUTME: Error types and classification helpers for the newslens library
// ABOUTME: Wraps client configuration failures and exposes pipeline error checks

package newslens

import (
	"errors"
	"fmt"

	coreerrors "newslens-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfiguration indicates an invalid option or backend failure
	ErrorTypeConfiguration ErrorType = "configuration"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"
)

// Error represents a structured error raised while building a client
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// IsConfigurationError checks if an error came from a bad option
func IsConfigurationError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrorTypeConfiguration
}

// IsValidationError checks if a request was rejected before any fetch
func IsValidationError(err error) bool {
	return coreerrors.IsValidation(err)
}

// IsBlockedError checks if a publisher refused automated access
func IsBlockedError(err error) bool {
	return coreerrors.IsBlocked(err)
}

// IsTimeoutError checks if a fetch ran out of time
func IsTimeoutError(err error) bool {
	return coreerrors.IsTimeout(err)
}

// IsInsufficientContent checks for the soft extraction failure
func IsInsufficientContent(err error) bool {
	return coreerrors.IsExtractionInsufficient(err)
}
