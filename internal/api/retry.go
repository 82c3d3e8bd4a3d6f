package api

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rendevo/client-go/internal/apierrors"
)

// RetryMode selects whether failed requests are retried.
type RetryMode int

const (
	// RetriesDefault retries transient failures with exponential backoff.
	RetriesDefault RetryMode = iota
	// RetriesDisabled runs every request exactly once. Test harnesses use it
	// to keep runs deterministic and fast.
	RetriesDisabled
)

func (m RetryMode) String() string {
	if m == RetriesDisabled {
		return "disabled"
	}
	return "default"
}

// RetryConfig configures retry behavior for failed requests.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first one.
	MaxAttempts int
	// BaseDelay is the delay after the first failed attempt.
	BaseDelay time.Duration
	// Multiplier is the factor by which the delay grows after each attempt.
	Multiplier float64
	// RetryableOn determines if an error should trigger a retry.
	RetryableOn func(err error) bool
}

// DefaultRetryConfig returns the default retry configuration: three
// attempts, waiting 1s and then 2s between them.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Multiplier:  2.0,
		RetryableOn: IsRetryable,
	}
}

// DisabledRetryConfig returns a configuration that makes a single attempt.
func DisabledRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 1,
		RetryableOn: func(error) bool { return false },
	}
}

// RetryConfigFor returns the configuration matching mode.
func RetryConfigFor(mode RetryMode) *RetryConfig {
	if mode == RetriesDisabled {
		return DisabledRetryConfig()
	}
	return DefaultRetryConfig()
}

// IsRetryable reports whether err is a server-side API failure (5xx) or a
// network failure. Client errors, timeouts and malformed responses are
// never retried.
func IsRetryable(err error) bool {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	var netErr *apierrors.NetworkError
	return errors.As(err, &netErr)
}

// ShouldRetry reports whether another attempt should follow the failed
// attempt (0-indexed).
func (r *RetryConfig) ShouldRetry(attempt int, err error) bool {
	if attempt+1 >= r.MaxAttempts {
		return false
	}
	if r.RetryableOn == nil {
		return IsRetryable(err)
	}
	return r.RetryableOn(err)
}

// Delay returns the wait after the failed attempt (0-indexed):
// BaseDelay * Multiplier^attempt.
func (r *RetryConfig) Delay(attempt int) time.Duration {
	return time.Duration(float64(r.BaseDelay) * math.Pow(r.Multiplier, float64(attempt)))
}

// Wait waits for the appropriate delay before retrying.
func (r *RetryConfig) Wait(ctx context.Context, attempt int) error {
	delay := r.Delay(attempt)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
