package types

import (
	"errors"
	"time"
)

const (
	// DefaultBaseURL is the default SpendWise API base URL
	DefaultBaseURL = "http://localhost:8080/api"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "spendwise-go/1.0.0"
)

// Common errors
var (
	// ErrNotAuthenticated is returned when authentication is required
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrLoginFailed is returned when sign-in fails
	ErrLoginFailed = errors.New("sign in failed")

	// ErrSessionExpired is returned when the cached session has expired
	ErrSessionExpired = errors.New("session expired")

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout is returned on timeout
	ErrTimeout = errors.New("request timeout")

	// ErrNotFound is returned when resource not found
	ErrNotFound = errors.New("resource not found")

	// ErrServerError is returned for server errors
	ErrServerError = errors.New("server error")
)
