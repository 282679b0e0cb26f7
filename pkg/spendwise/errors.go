package spendwise

import (
	"errors"
	"fmt"

	internalTypes "github.com/spendwise/spendwise-go/internal/types"
)

// Sentinel errors. The transport-facing values are shared with the
// internal packages so errors.Is works across layers.
var (
	// ErrNotAuthenticated is returned when authentication is required
	ErrNotAuthenticated = internalTypes.ErrNotAuthenticated

	// ErrLoginFailed is returned when sign-in fails
	ErrLoginFailed = internalTypes.ErrLoginFailed

	// ErrSessionExpired is returned when the cached session has expired
	ErrSessionExpired = internalTypes.ErrSessionExpired

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = internalTypes.ErrRateLimited

	// ErrTimeout is returned on timeout
	ErrTimeout = internalTypes.ErrTimeout

	// ErrNotFound is returned when resource not found
	ErrNotFound = internalTypes.ErrNotFound

	// ErrServerError is returned for server errors
	ErrServerError = internalTypes.ErrServerError

	// ErrInvalidAmount is returned when an amount is not a finite
	// non-negative number
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidMonth is returned for a malformed month key
	ErrInvalidMonth = errors.New("invalid month key")
)

// Error represents an API error
type Error struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"statusCode"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Err        error                  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	if e.Err != nil {
		return errors.Is(e.Err, target)
	}

	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Code == t.Code
}

// ValidationError represents a client-local validation failure.
// It blocks submission before any request is sent.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewError creates a new API error
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an error with additional context
func WrapError(err error, code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAuthError checks if error is authentication related
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrLoginFailed) ||
		errors.Is(err, ErrSessionExpired)
}

// IsValidationError checks if error is a client-local validation failure
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsRetryable checks if error is retryable
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServerError) {
		return true
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}

	return false
}
