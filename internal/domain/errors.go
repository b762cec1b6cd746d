package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNetwork indicates the catalog API could not be reached or answered with a failure status
	ErrNetwork = errors.New("catalog API is unreachable")

	// ErrDecode indicates a response body did not match the expected shape
	ErrDecode = errors.New("unexpected response shape")

	// ErrAuthFailed indicates the API token was rejected
	ErrAuthFailed = errors.New("API token is invalid")

	// ErrNotConfigured indicates the API URL or token is missing
	ErrNotConfigured = errors.New("catalog API is not configured")

	// ErrNotLoggedIn indicates a user action was attempted by the anonymous user
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrInvalidUser indicates an empty or blank user name
	ErrInvalidUser = errors.New("user name must not be empty")

	// ErrNotImplemented indicates an action the client only stubs out
	ErrNotImplemented = errors.New("not implemented")
)

// NetworkError is returned on transport failures, timeouts and failure statuses.
type NetworkError struct {
	Op         string // endpoint path
	StatusCode int    // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both ErrNetwork and the underlying cause to errors.Is.
func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}

// DecodeError is returned when a response body cannot be decoded.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}
