// Package apierrors provides shared error types for the Rendevo client.
package apierrors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingBaseURL is returned when no base URL is provided.
	ErrMissingBaseURL = errors.New("base URL is required")

	// ErrUnauthorized is returned when the credentials are missing, invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks permission for the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when the resource already exists, e.g. a duplicate email on register.
	ErrConflict = errors.New("resource conflict")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrTimeout matches every *TimeoutError.
	ErrTimeout = errors.New("request timeout")

	// ErrNetwork matches every *NetworkError.
	ErrNetwork = errors.New("network error")

	// ErrRetriesExhausted is returned when the retry loop ends without a captured error.
	ErrRetriesExhausted = errors.New("request failed after retries")

	// ErrNoToken is returned when a token is required but none is held.
	ErrNoToken = errors.New("no token available")
)

// Kind classifies an error returned by the client.
type Kind int

const (
	// KindUnknown is any error outside the closed set below, e.g. context cancellation.
	KindUnknown Kind = iota
	// KindAPI is a structured rejection from the server.
	KindAPI
	// KindNetwork is a connectivity failure with no HTTP response.
	KindNetwork
	// KindTimeout is a per-attempt deadline that fired before the server answered.
	KindTimeout
	// KindFormat is a response that was not JSON or could not be decoded.
	KindFormat
)

func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

// RendevoError is implemented by every error in the closed set.
type RendevoError interface {
	error
	Kind() Kind
	RendevoError() // marker method
}

// KindOf returns the Kind of err, unwrapping as needed.
func KindOf(err error) Kind {
	var re RendevoError
	if errors.As(err, &re) {
		return re.Kind()
	}
	return KindUnknown
}

// ErrorPayload is the normalized error body returned by the API.
type ErrorPayload struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Message    string `json:"message"`
}

// APIError represents an HTTP error from the Rendevo API.
type APIError struct {
	StatusCode int
	Payload    ErrorPayload
}

// NewAPIError builds an APIError for the given transport status.
func NewAPIError(statusCode int, payload ErrorPayload) *APIError {
	return &APIError{StatusCode: statusCode, Payload: payload}
}

func (e *APIError) Error() string {
	if e.Payload.Message != "" {
		return e.Payload.Message
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Kind implements RendevoError.
func (e *APIError) Kind() Kind { return KindAPI }

// RendevoError implements the RendevoError interface.
func (e *APIError) RendevoError() {}

// Retryable reports whether the failure is server-side.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401:
		return target == ErrUnauthorized
	case 403:
		return target == ErrForbidden
	case 404:
		return target == ErrNotFound
	case 409:
		return target == ErrConflict
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	BaseURL string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("Network error: unable to reach %s", e.BaseURL)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// Kind implements RendevoError.
func (e *NetworkError) Kind() Kind { return KindNetwork }

// RendevoError implements the RendevoError interface.
func (e *NetworkError) RendevoError() {}

// TimeoutError represents an attempt that exceeded its deadline.
type TimeoutError struct {
	Endpoint string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Request timeout: %s exceeded %dms", e.Endpoint, e.Timeout.Milliseconds())
}

// Is implements errors.Is for sentinel error matching.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// Kind implements RendevoError.
func (e *TimeoutError) Kind() Kind { return KindTimeout }

// RendevoError implements the RendevoError interface.
func (e *TimeoutError) RendevoError() {}

// ResponseFormatError indicates the response could not be interpreted.
type ResponseFormatError struct {
	Endpoint    string
	ContentType string
	Err         error
}

func (e *ResponseFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid response from %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("expected JSON response from %s, got content type %q", e.Endpoint, e.ContentType)
}

// Unwrap returns the underlying error.
func (e *ResponseFormatError) Unwrap() error {
	return e.Err
}

// Kind implements RendevoError.
func (e *ResponseFormatError) Kind() Kind { return KindFormat }

// RendevoError implements the RendevoError interface.
func (e *ResponseFormatError) RendevoError() {}
