package rendevo

import (
	"maps"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rendevo/client-go/internal/api"
)

// RetryMode selects whether failed requests are retried.
type RetryMode = api.RetryMode

const (
	// RetriesDefault makes up to 3 attempts for server errors (5xx) and
	// network failures, waiting 1s and then 2s between them.
	RetriesDefault = api.RetriesDefault
	// RetriesDisabled makes exactly one attempt. Use it in tests.
	RetriesDisabled = api.RetriesDisabled
)

const defaultTimeout = api.DefaultTimeout

// HTTPClient sends HTTP requests. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// clientConfig holds configuration for the client.
type clientConfig struct {
	timeout         time.Duration
	headers         map[string]string
	httpClient      HTTPClient
	retries         RetryMode
	logger          *zerolog.Logger
	requestIDHeader string
}

// Option configures the client.
type Option func(*clientConfig)

// WithTimeout sets the per-attempt timeout.
// Default: 10 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithHeaders adds headers sent with every request. They are merged over
// Content-Type: application/json; later values win.
func WithHeaders(headers map[string]string) Option {
	return func(c *clientConfig) {
		if c.headers == nil {
			c.headers = make(map[string]string, len(headers))
		}
		maps.Copy(c.headers, headers)
	}
}

// WithHeader adds a single default header.
func WithHeader(key, value string) Option {
	return WithHeaders(map[string]string{key: value})
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithRetries selects the retry policy.
// Default: RetriesDefault
func WithRetries(mode RetryMode) Option {
	return func(c *clientConfig) {
		c.retries = mode
	}
}

// WithLogger sets the logger for request and retry events.
// Default: no logging
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = &logger
	}
}

// WithRequestIDHeader sets the header carrying the generated request id.
// Pass "-" to stop sending one.
// Default: X-Request-ID
func WithRequestIDHeader(name string) Option {
	return func(c *clientConfig) {
		c.requestIDHeader = name
	}
}

// CallOption configures a single call.
type CallOption = api.RequestOption

// WithCallHeader sets a header on one call only.
func WithCallHeader(key, value string) CallOption {
	return api.WithHeader(key, value)
}

// WithCallTimeout overrides the per-attempt timeout for one call.
func WithCallTimeout(timeout time.Duration) CallOption {
	return api.WithRequestTimeout(timeout)
}
