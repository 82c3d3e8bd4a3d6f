package rendevo

import (
	"context"

	"golang.org/x/oauth2"
)

// tokenSource serves the client's current tokens to oauth2 consumers.
type tokenSource struct {
	ctx  context.Context
	auth *AuthService
}

// TokenSource returns an oauth2.TokenSource backed by the client's shared
// tokens, so an http.Client built with oauth2.NewClient sends the same
// bearer token as this client. When only a refresh token is held, Token
// calls /auth/refresh with ctx and stores the new pair. The API does not
// report expiry, so returned tokens carry none.
func (c *Client) TokenSource(ctx context.Context) oauth2.TokenSource {
	return tokenSource{ctx: ctx, auth: c.Auth}
}

func (s tokenSource) Token() (*oauth2.Token, error) {
	if access := s.auth.Token(); access != "" {
		return &oauth2.Token{
			AccessToken:  access,
			TokenType:    "Bearer",
			RefreshToken: s.auth.RefreshToken(),
		}, nil
	}

	if s.auth.RefreshToken() == "" {
		return nil, ErrNoToken
	}
	resp, err := s.auth.Refresh(s.ctx, "")
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken:  resp.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: resp.RefreshToken,
	}, nil
}
