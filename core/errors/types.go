// ABOUTME: Custom error types for the resolution and extraction pipeline
// ABOUTME: Provides structured errors for retry decisions and API status mapping

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents malformed or missing input
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// FetchKind classifies why a fetch failed
type FetchKind int

const (
	// KindNetwork covers DNS and connection failures
	KindNetwork FetchKind = iota
	// KindTimeout is a per-fetch deadline expiry
	KindTimeout
	// KindBlocked means the target site refused automated access
	KindBlocked
	// KindHTTP is a non-success HTTP status that is not a block
	KindHTTP
	// KindInvalidURL means the URL could not be used at all
	KindInvalidURL
)

// String returns the kind name used in logs and messages
func (k FetchKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindBlocked:
		return "blocked"
	case KindHTTP:
		return "http"
	case KindInvalidURL:
		return "invalid_url"
	default:
		return "unknown"
	}
}

// FetchError is the failure outcome of a fetch. It carries the number of
// attempts made and the last underlying error.
type FetchError struct {
	Kind       FetchKind
	URL        string
	StatusCode int
	Attempts   int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %s failed (%s", e.URL, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(", status %d", e.StatusCode)
	}
	msg += fmt.Sprintf(", %d attempt(s))", e.Attempts)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the cause chain
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retriable reports whether another attempt may succeed.
// Malformed URLs, 404 and other client errors are final.
func (e *FetchError) Retriable() bool {
	switch e.Kind {
	case KindTimeout, KindNetwork, KindBlocked:
		return true
	case KindHTTP:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// ResolutionFailureError means an aggregator link was never de-indirected
type ResolutionFailureError struct {
	URL string
}

// Error implements the error interface
func (e *ResolutionFailureError) Error() string {
	return fmt.Sprintf("could not resolve aggregator link to a publisher URL: %s", e.URL)
}

// ExtractionInsufficientError is a soft failure: the page was fetched but
// yielded too little content, which usually means a paywall or a block page.
type ExtractionInsufficientError struct {
	URL    string
	Reason string
}

// Error implements the error interface
func (e *ExtractionInsufficientError) Error() string {
	return fmt.Sprintf("insufficient content extracted from %s: %s", e.URL, e.Reason)
}

// IsNotFound checks if an error is a NotFoundError or an HTTP 404 fetch
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return true
	}
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Kind == KindHTTP && fetchErr.StatusCode == http.StatusNotFound
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsFetchKind checks if an error is a FetchError of the given kind
func IsFetchKind(err error, kind FetchKind) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Kind == kind
}

// IsTimeout checks if an error is a fetch timeout
func IsTimeout(err error) bool {
	return IsFetchKind(err, KindTimeout)
}

// IsBlocked checks if an error is a blocked fetch
func IsBlocked(err error) bool {
	return IsFetchKind(err, KindBlocked)
}

// IsNetwork checks if an error is a network failure
func IsNetwork(err error) bool {
	return IsFetchKind(err, KindNetwork)
}

// IsResolutionFailure checks if an error is a ResolutionFailureError
func IsResolutionFailure(err error) bool {
	var resErr *ResolutionFailureError
	return errors.As(err, &resErr)
}

// IsExtractionInsufficient checks if an error is an ExtractionInsufficientError
func IsExtractionInsufficient(err error) bool {
	var extErr *ExtractionInsufficientError
	return errors.As(err, &extErr)
}

// StatusCode maps an error to the HTTP status the API should answer with.
// Resolution and extraction shortfalls are reported in the body, not the status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err), IsFetchKind(err, KindInvalidURL):
		return http.StatusBadRequest
	case IsBlocked(err):
		return http.StatusForbidden
	case IsNotFound(err):
		return http.StatusNotFound
	case IsTimeout(err):
		return http.StatusRequestTimeout
	case IsNetwork(err):
		return http.StatusBadRequest
	case IsResolutionFailure(err), IsExtractionInsufficient(err):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
