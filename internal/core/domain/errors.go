// Package domain defines the core domain models for console-gate.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured
// error code. The numeric code suffix encodes the HTTP class the
// dispatcher maps it to (4010-class → 401, 4030-class → 403,
// 5000-class → 500).
type DomainError struct {
	Code    string // Error code (e.g., "CG-AUTH-4010")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Authentication errors (AUTH). All map to 401 except the anti-forgery
// failure, which maps to 403.
var (
	// ErrNotAuthorized indicates a missing or invalid session, or
	// rejected credentials.
	ErrNotAuthorized = NewDomainError("CG-AUTH-4010", "not authorized")

	// ErrAuthHeaderMissing indicates the login request carried no
	// Authorization header.
	ErrAuthHeaderMissing = NewDomainError("CG-AUTH-4011", "auth header not found")

	// ErrAuthHeaderFormat indicates the Authorization header is not a
	// well-formed Basic credential.
	ErrAuthHeaderFormat = NewDomainError("CG-AUTH-4012", "auth header in wrong format")

	// ErrForgeryToken indicates the anti-forgery token check failed.
	ErrForgeryToken = NewDomainError("CG-AUTH-4030", "cross-site request forgery check failed")
)

// Session errors (SESS).
var (
	// ErrSessionNotFound indicates the session id has no live store
	// entry. Callers treat this as "unauthenticated", not as a failure.
	ErrSessionNotFound = NewDomainError("CG-SESS-4040", "session not found")

	// ErrSessionInfo indicates the session bundle could not be built.
	ErrSessionInfo = NewDomainError("CG-SESS-5002", "can't retrieve session info")
)

// System errors (SYS).
var (
	// ErrInternal indicates an unclassified processor failure.
	ErrInternal = NewDomainError("CG-SYS-5000", "unknown error occurred")

	// ErrUnknownAction indicates the request named an unsupported action.
	ErrUnknownAction = NewDomainError("CG-SYS-5001", "unknown action")
)
