package rendevo

import (
	"context"

	"github.com/rendevo/client-go/internal/api"
)

// AuthService wraps the /auth endpoints. Successful sign-in calls store
// the returned tokens in the client's shared token holder.
type AuthService struct {
	api    *api.Client
	tokens *api.AuthState
}

// Login authenticates with email and password and stores the access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	resp, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	s.tokens.SetToken(resp.AccessToken)
	return resp, nil
}

// Register creates an account and stores both returned tokens.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	s.storeTokens(resp)
	return resp, nil
}

// Refresh exchanges a refresh token for a new token pair and stores both.
// An empty refreshToken uses the stored one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		refreshToken = s.tokens.RefreshToken()
	}
	if refreshToken == "" {
		return nil, ErrNoToken
	}
	resp, err := s.api.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	s.storeTokens(resp)
	return resp, nil
}

func (s *AuthService) storeTokens(resp *AuthResponse) {
	s.tokens.SetToken(resp.AccessToken)
	s.tokens.SetRefreshToken(resp.RefreshToken)
}

// ForgotPassword requests a password reset email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	return s.api.ForgotPassword(ctx, email)
}

// ResetPassword sets a new password using a reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (*MessageResponse, error) {
	return s.api.ResetPassword(ctx, api.ResetPasswordRequest{Token: token, NewPassword: newPassword})
}

// VerifyEmail confirms an email address with a verification token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*MessageResponse, error) {
	return s.api.VerifyEmail(ctx, token)
}

// ResendVerification sends a new verification email.
func (s *AuthService) ResendVerification(ctx context.Context, email string) (*MessageResponse, error) {
	return s.api.ResendVerification(ctx, email)
}

// Logout revokes refreshToken (the stored one when empty) and, only once
// the server has accepted it, clears both stored tokens. On failure the
// tokens are kept so the call can be retried.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) (*MessageResponse, error) {
	if refreshToken == "" {
		refreshToken = s.tokens.RefreshToken()
	}
	if refreshToken == "" {
		return nil, ErrNoToken
	}
	resp, err := s.api.Logout(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	s.tokens.Clear()
	return resp, nil
}

// Token returns the shared bearer token.
func (s *AuthService) Token() string { return s.tokens.Token() }

// SetToken stores the shared bearer token.
func (s *AuthService) SetToken(token string) { s.tokens.SetToken(token) }

// ClearToken forgets the shared bearer token.
func (s *AuthService) ClearToken() { s.tokens.ClearToken() }

// RefreshToken returns the shared refresh token.
func (s *AuthService) RefreshToken() string { return s.tokens.RefreshToken() }

// SetRefreshToken stores the shared refresh token.
func (s *AuthService) SetRefreshToken(token string) { s.tokens.SetRefreshToken(token) }

// ClearRefreshToken forgets the shared refresh token.
func (s *AuthService) ClearRefreshToken() { s.tokens.ClearRefreshToken() }
