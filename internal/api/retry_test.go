package api

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rendevo/client-go/internal/apierrors"
)

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.BaseDelay)
	assert.Equal(t, 2.0, cfg.Multiplier)
	assert.NotNil(t, cfg.RetryableOn)
}

func TestRetryConfigFor(t *testing.T) {
	assert.Equal(t, 3, RetryConfigFor(RetriesDefault).MaxAttempts)
	assert.Equal(t, 1, RetryConfigFor(RetriesDisabled).MaxAttempts)
	assert.Equal(t, "default", RetriesDefault.String())
	assert.Equal(t, "disabled", RetriesDisabled.String())
}

func TestRetryConfig_Delay(t *testing.T) {
	cfg := DefaultRetryConfig()

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, time.Second},     // 1 * 2^0
		{1, 2 * time.Second}, // 1 * 2^1
		{2, 4 * time.Second}, // 1 * 2^2
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, cfg.Delay(tt.attempt), "Delay(%d)", tt.attempt)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"400", &apierrors.APIError{StatusCode: 400}, false},
		{"401", &apierrors.APIError{StatusCode: 401}, false},
		{"404", &apierrors.APIError{StatusCode: 404}, false},
		{"429", &apierrors.APIError{StatusCode: 429}, false},
		{"500", &apierrors.APIError{StatusCode: 500}, true},
		{"503", &apierrors.APIError{StatusCode: 503}, true},
		{"network", &apierrors.NetworkError{Err: errors.New("connection refused")}, true},
		{"timeout", &apierrors.TimeoutError{Endpoint: "/x"}, false},
		{"format", &apierrors.ResponseFormatError{Endpoint: "/x"}, false},
		{"plain", errors.New("validation failed"), false},
		{"canceled", context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRetryable(tt.err))
		})
	}
}

func TestRetryConfig_ShouldRetry(t *testing.T) {
	cfg := DefaultRetryConfig()
	serverErr := &apierrors.APIError{StatusCode: 503}

	assert.True(t, cfg.ShouldRetry(0, serverErr))
	assert.True(t, cfg.ShouldRetry(1, serverErr))
	assert.False(t, cfg.ShouldRetry(2, serverErr), "third attempt is the last")
	assert.False(t, cfg.ShouldRetry(0, &apierrors.APIError{StatusCode: 400}))

	assert.False(t, DisabledRetryConfig().ShouldRetry(0, serverErr))

	custom := &RetryConfig{MaxAttempts: 3}
	assert.True(t, custom.ShouldRetry(0, serverErr), "nil RetryableOn falls back to IsRetryable")
}

func TestRetryConfig_Wait_ContextCancellation(t *testing.T) {
	cfg := &RetryConfig{BaseDelay: 10 * time.Second, Multiplier: 2}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := cfg.Wait(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRetryConfig_Wait(t *testing.T) {
	cfg := &RetryConfig{BaseDelay: 10 * time.Millisecond, Multiplier: 2}

	start := time.Now()
	require.NoError(t, cfg.Wait(context.Background(), 1))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

// fastRetry mirrors the default policy with millisecond delays.
func fastRetry() *RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.BaseDelay = time.Millisecond
	return cfg
}

func TestClient_Do_RetriesServerErrors(t *testing.T) {
	var attempts int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"statusCode": 503, "message": "down"})
	}, WithRetryConfig(fastRetry()))

	err := client.Get(context.Background(), "/users", nil)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 503, apiErr.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_Do_RetryThenSuccess(t *testing.T) {
	var attempts int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			writeJSON(w, http.StatusBadGateway, map[string]any{"statusCode": 502, "message": "bad gateway"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}, WithRetryConfig(fastRetry()))

	var result struct{ OK bool }
	require.NoError(t, client.Get(context.Background(), "/users", &result))
	assert.True(t, result.OK)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_Do_ClientErrorsNotRetried(t *testing.T) {
	for _, status := range []int{400, 401, 403, 404, 409, 422, 429, 499} {
		var attempts int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			writeJSON(w, status, map[string]any{"statusCode": status, "message": "nope"})
		}, WithRetryConfig(fastRetry()))

		err := client.Get(context.Background(), "/users", nil)

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, status, apiErr.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts), "status %d", status)
	}
}

func TestClient_Do_DisabledRetries(t *testing.T) {
	var attempts int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"statusCode": 500, "message": "boom"})
	})

	err := client.Get(context.Background(), "/users", nil)
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestClient_Do_FormatErrorNotRetried(t *testing.T) {
	var attempts int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
	}, WithRetryConfig(fastRetry()))

	err := client.Get(context.Background(), "/users", nil)

	var formatErr *apierrors.ResponseFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestClient_Do_TimeoutNotRetried(t *testing.T) {
	var attempts int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, WithRetryConfig(fastRetry()), WithTimeout(5*time.Millisecond))

	err := client.Get(context.Background(), "/slow", nil)

	var timeoutErr *apierrors.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestClient_Do_NetworkErrorRetried(t *testing.T) {
	var attempts int32
	client, err := New("http://127.0.0.1:1", WithRetryConfig(fastRetry()), WithHTTPClient(countingClient{
		attempts: &attempts,
		err:      errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
	}))
	require.NoError(t, err)

	err = client.Get(context.Background(), "/users", nil)

	var netErr *apierrors.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_Do_NoAttempts(t *testing.T) {
	client, err := New("https://api.example.com", WithRetryConfig(&RetryConfig{MaxAttempts: 0}))
	require.NoError(t, err)

	_, err = client.Do(context.Background(), http.MethodGet, "/users", nil)
	assert.ErrorIs(t, err, apierrors.ErrRetriesExhausted)
}

func TestClient_Do_CancelDuringBackoff(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"statusCode": 503, "message": "down"})
	}, WithRetryConfig(DefaultRetryConfig()))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := client.Get(ctx, "/users", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

type countingClient struct {
	attempts *int32
	err      error
}

func (c countingClient) Do(req *http.Request) (*http.Response, error) {
	atomic.AddInt32(c.attempts, 1)
	return nil, c.err
}
