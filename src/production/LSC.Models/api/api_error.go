package api_models

import (
	"fmt"
	"net/http"
)

// ErrorCode is a string type for consistent error codes.
type ErrorCode string

const (
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeConflict         ErrorCode = "conflict"
	ErrorCodeFetchFailed      ErrorCode = "fetch_failed"
	ErrorCodeRateLimited      ErrorCode = "rate_limited"
	ErrorCodeInternal         ErrorCode = "internal_server_error"
)

// APIError is the error type surfaced to HTTP callers. The wrapped cause is kept for
// logging and is never serialized.
type APIError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    any       `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	cause      error
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// NewAPIError is a constructor for APIError.
func NewAPIError(code ErrorCode, message string, details any, statusCode int) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		Details:    details,
		StatusCode: statusCode,
	}
}

// ValidationFailure reports malformed input fields
func ValidationFailure(message string) *APIError {
	return NewAPIError(ErrorCodeValidationFailed, message, nil, http.StatusBadRequest)
}

// NotFound reports an unknown device id or hardware id
func NotFound(message string) *APIError {
	return NewAPIError(ErrorCodeNotFound, message, nil, http.StatusNotFound)
}

// Unauthorized reports credentials with no matching account
func Unauthorized(message string) *APIError {
	return NewAPIError(ErrorCodeUnauthorized, message, nil, http.StatusUnauthorized)
}

// ConflictFailure reports a duplicate registration
func ConflictFailure(message string) *APIError {
	return NewAPIError(ErrorCodeConflict, message, nil, http.StatusConflict)
}

// FetchFailure reports a store failure. message is what the caller sees, cause stays internal.
func FetchFailure(message string, cause error) *APIError {
	e := NewAPIError(ErrorCodeFetchFailed, message, nil, http.StatusInternalServerError)
	e.cause = cause
	return e
}

// RateLimited reports a client exceeding its request budget
func RateLimited(message string) *APIError {
	return NewAPIError(ErrorCodeRateLimited, message, nil, http.StatusTooManyRequests)
}
