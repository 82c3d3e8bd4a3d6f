package rendevo

import (
	"time"

	"github.com/rendevo/client-go/internal/api"
)

// Client is the Rendevo API client. It owns a single token holder that is
// shared by reference with its Auth and Users services: a token set by
// Auth.Login is immediately used by Users calls, and every Token accessor
// returns the same value.
type Client struct {
	apiClient *api.Client
	tokens    *api.AuthState

	// Auth wraps the /auth endpoints and keeps the shared tokens current.
	Auth *AuthService
	// Users wraps the /users endpoints.
	Users *UserService
}

// New creates a new Rendevo client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		timeout: defaultTimeout,
		retries: RetriesDefault,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	tokens := api.NewAuthState()
	apiCfg := api.Config{
		BaseURL:         baseURL,
		Timeout:         cfg.timeout,
		Headers:         cfg.headers,
		Retries:         cfg.retries,
		Auth:            tokens,
		Logger:          cfg.logger,
		RequestIDHeader: cfg.requestIDHeader,
	}
	if cfg.httpClient != nil {
		apiCfg.HTTPClient = cfg.httpClient
	}

	apiClient, err := api.NewClient(apiCfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient: apiClient,
		tokens:    tokens,
		Auth:      &AuthService{api: apiClient, tokens: tokens},
		Users:     &UserService{api: apiClient, tokens: tokens},
	}, nil
}

// BaseURL returns the API base URL without trailing slash.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// Timeout returns the per-attempt timeout.
func (c *Client) Timeout() time.Duration {
	return c.apiClient.Timeout()
}

// SetTimeout changes the per-attempt timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.apiClient.SetTimeout(timeout)
}

// SetHeader sets a header sent with every request.
func (c *Client) SetHeader(key, value string) {
	c.apiClient.SetHeader(key, value)
}

// SetToken stores the bearer token.
func (c *Client) SetToken(token string) { c.tokens.SetToken(token) }

// Token returns the bearer token, or "" when none is held.
func (c *Client) Token() string { return c.tokens.Token() }

// ClearToken forgets the bearer token.
func (c *Client) ClearToken() { c.tokens.ClearToken() }

// SetRefreshToken stores the refresh token.
func (c *Client) SetRefreshToken(token string) { c.tokens.SetRefreshToken(token) }

// RefreshToken returns the refresh token, or "" when none is held.
func (c *Client) RefreshToken() string { return c.tokens.RefreshToken() }

// ClearRefreshToken forgets the refresh token.
func (c *Client) ClearRefreshToken() { c.tokens.ClearRefreshToken() }
