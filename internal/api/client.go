package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rendevo/client-go/internal/apierrors"
	"github.com/rendevo/client-go/internal/transport"
)

const (
	// DefaultTimeout is the per-attempt timeout when none is configured.
	DefaultTimeout = 10 * time.Second
	// DefaultRequestIDHeader carries a generated id for each logical request.
	DefaultRequestIDHeader = "X-Request-ID"
)

// Config holds the API client configuration.
type Config struct {
	// BaseURL is required. One trailing slash is stripped.
	BaseURL string
	// Timeout bounds each attempt. Zero means DefaultTimeout.
	Timeout time.Duration
	// Headers are sent with every request, over Content-Type: application/json.
	Headers map[string]string
	// HTTPClient sends requests. Nil means transport.NewHTTPClient().
	HTTPClient transport.HTTPClient
	// Retries selects the retry policy when Retry is nil.
	Retries RetryMode
	// Retry overrides the policy selected by Retries.
	Retry *RetryConfig
	// Auth is the token holder. Nil means a fresh AuthState.
	Auth *AuthState
	// Logger receives request and retry events. Nil means no logging.
	Logger *zerolog.Logger
	// RequestIDHeader names the request id header. Empty means
	// DefaultRequestIDHeader; "-" disables it.
	RequestIDHeader string
}

// Client is the HTTP API client. It owns the configuration and a reference
// to the shared AuthState, and runs every request through the retry policy.
type Client struct {
	baseURL         string
	httpClient      transport.HTTPClient
	retry           *RetryConfig
	auth            *AuthState
	logger          zerolog.Logger
	requestIDHeader string
	now             func() time.Time

	mu      sync.RWMutex
	timeout time.Duration
	headers map[string]string
}

// Option configures the API client.
type Option func(*Config)

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithHeaders adds default headers.
func WithHeaders(headers map[string]string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(map[string]string, len(headers))
		}
		maps.Copy(c.Headers, headers)
	}
}

// WithHTTPClient sets the transport.
func WithHTTPClient(client transport.HTTPClient) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithRetryMode selects the retry policy.
func WithRetryMode(mode RetryMode) Option {
	return func(c *Config) {
		c.Retries = mode
	}
}

// WithRetryConfig sets a custom retry policy.
func WithRetryConfig(cfg *RetryConfig) Option {
	return func(c *Config) {
		c.Retry = cfg
	}
}

// WithAuthState shares an existing token holder.
func WithAuthState(state *AuthState) Option {
	return func(c *Config) {
		c.Auth = state
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = &logger
	}
}

// New creates a new API client using functional options.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := Config{BaseURL: baseURL}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewClient(cfg)
}

// NewClient creates a new API client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, apierrors.ErrMissingBaseURL
	}

	c := &Client{
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:      cfg.HTTPClient,
		retry:           cfg.Retry,
		auth:            cfg.Auth,
		logger:          zerolog.Nop(),
		requestIDHeader: cfg.RequestIDHeader,
		now:             time.Now,
		timeout:         cfg.Timeout,
		headers:         map[string]string{"Content-Type": "application/json"},
	}
	for k, v := range cfg.Headers {
		c.headers[http.CanonicalHeaderKey(k)] = v
	}

	if c.httpClient == nil {
		c.httpClient = transport.NewHTTPClient()
	}
	if c.retry == nil {
		c.retry = RetryConfigFor(cfg.Retries)
	}
	if c.auth == nil {
		c.auth = NewAuthState()
	}
	if cfg.Logger != nil {
		c.logger = *cfg.Logger
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	switch c.requestIDHeader {
	case "":
		c.requestIDHeader = DefaultRequestIDHeader
	case "-":
		c.requestIDHeader = ""
	}

	return c, nil
}

// BaseURL returns the base URL without trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the configured per-attempt timeout.
func (c *Client) Timeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeout
}

// SetTimeout changes the per-attempt timeout. Non-positive values restore DefaultTimeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = timeout
}

// Headers returns a copy of the default headers.
func (c *Client) Headers() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.headers)
}

// SetHeader sets a default header.
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[http.CanonicalHeaderKey(key)] = value
}

// Auth returns the shared token holder.
func (c *Client) Auth() *AuthState {
	return c.auth
}

// SetToken stores the bearer token.
func (c *Client) SetToken(token string) { c.auth.SetToken(token) }

// Token returns the bearer token.
func (c *Client) Token() string { return c.auth.Token() }

// ClearToken forgets the bearer token.
func (c *Client) ClearToken() { c.auth.ClearToken() }

// SetRefreshToken stores the refresh token.
func (c *Client) SetRefreshToken(token string) { c.auth.SetRefreshToken(token) }

// RefreshToken returns the refresh token.
func (c *Client) RefreshToken() string { return c.auth.RefreshToken() }

// ClearRefreshToken forgets the refresh token.
func (c *Client) ClearRefreshToken() { c.auth.ClearRefreshToken() }

// RequestOption configures a single call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	headers map[string]string
	timeout time.Duration
}

// WithHeader sets a header on this call only, overriding defaults.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.headers[http.CanonicalHeaderKey(key)] = value
	}
}

// WithRequestTimeout overrides the per-attempt timeout for this call.
func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(o *requestOptions) {
		o.timeout = timeout
	}
}

// Get sends a GET request and decodes the response data into result.
func (c *Client) Get(ctx context.Context, path string, result any, opts ...RequestOption) error {
	return c.call(ctx, http.MethodGet, path, nil, result, opts)
}

// Post sends a POST request and decodes the response data into result.
func (c *Client) Post(ctx context.Context, path string, body, result any, opts ...RequestOption) error {
	return c.call(ctx, http.MethodPost, path, body, result, opts)
}

// Patch sends a PATCH request and decodes the response data into result.
func (c *Client) Patch(ctx context.Context, path string, body, result any, opts ...RequestOption) error {
	return c.call(ctx, http.MethodPatch, path, body, result, opts)
}

// Put sends a PUT request and decodes the response data into result.
func (c *Client) Put(ctx context.Context, path string, body, result any, opts ...RequestOption) error {
	return c.call(ctx, http.MethodPut, path, body, result, opts)
}

// Delete sends a DELETE request and decodes the response data into result.
func (c *Client) Delete(ctx context.Context, path string, body, result any, opts ...RequestOption) error {
	return c.call(ctx, http.MethodDelete, path, body, result, opts)
}

func (c *Client) call(ctx context.Context, method, path string, body, result any, opts []RequestOption) error {
	env, err := c.Do(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	if err := env.Decode(result); err != nil {
		return &apierrors.ResponseFormatError{
			Endpoint:    path,
			ContentType: "application/json",
			Err:         fmt.Errorf("decode response data: %w", err),
		}
	}
	return nil
}

// Do sends a request through the retry policy and returns the normalized
// envelope. A nil body sends no body at all.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Envelope, error) {
	ro := &requestOptions{headers: make(map[string]string)}
	for _, opt := range opts {
		opt(ro)
	}
	if c.requestIDHeader != "" {
		if _, ok := ro.headers[http.CanonicalHeaderKey(c.requestIDHeader)]; !ok {
			ro.headers[http.CanonicalHeaderKey(c.requestIDHeader)] = uuid.NewString()
		}
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		env, err := c.attempt(ctx, method, path, payload, ro)
		if err == nil {
			return env, nil
		}
		lastErr = err

		if !c.retry.ShouldRetry(attempt, err) {
			break
		}

		c.logger.Warn().
			Err(err).
			Str("method", method).
			Str("path", path).
			Int("attempt", attempt+1).
			Dur("delay", c.retry.Delay(attempt)).
			Msg("retrying request")

		if err := c.retry.Wait(ctx, attempt); err != nil {
			return nil, err
		}
	}

	if lastErr == nil {
		return nil, apierrors.ErrRetriesExhausted
	}
	return nil, lastErr
}

// attempt performs a single HTTP round trip. Headers, including the bearer
// token, are captured before the request is sent.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, ro *requestOptions) (*Envelope, error) {
	headers := c.buildHeaders(ro.headers)

	timeout := c.Timeout()
	if ro.timeout > 0 {
		timeout = ro.timeout
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Dur("timeout", timeout).
		Msg("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.translateError(ctx, attemptCtx, path, timeout, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.translateError(ctx, attemptCtx, path, timeout, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("received response")

	return normalize(response{
		method:      method,
		path:        path,
		statusCode:  resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        data,
	}, c.now())
}

func (c *Client) buildHeaders(overrides map[string]string) map[string]string {
	headers := c.Headers()
	maps.Copy(headers, overrides)
	if token := c.auth.Token(); token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}

// translateError classifies a transport failure. Cancellation by the
// caller is returned as the context error; the attempt's own deadline
// becomes a TimeoutError; everything else is a NetworkError.
func (c *Client) translateError(ctx, attemptCtx context.Context, path string, timeout time.Duration, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return &apierrors.TimeoutError{Endpoint: path, Timeout: timeout}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &apierrors.TimeoutError{Endpoint: path, Timeout: timeout}
	}
	return &apierrors.NetworkError{BaseURL: c.baseURL, Err: err}
}
