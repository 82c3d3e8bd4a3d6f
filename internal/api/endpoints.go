package api

import (
	"context"
	"fmt"
	"net/url"
)

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var result AuthResponse
	if err := c.Post(ctx, "/auth/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var result AuthResponse
	if err := c.Post(ctx, "/auth/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	var result AuthResponse
	if err := c.Post(ctx, "/auth/refresh", RefreshRequest{RefreshToken: refreshToken}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ForgotPassword starts a password reset.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	return c.message(ctx, "/auth/forgot-password", EmailRequest{Email: email})
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	return c.message(ctx, "/auth/reset-password", req)
}

// VerifyEmail confirms an email address.
func (c *Client) VerifyEmail(ctx context.Context, token string) (*MessageResponse, error) {
	return c.message(ctx, "/auth/verify-email", TokenRequest{Token: token})
}

// ResendVerification sends a new verification email.
func (c *Client) ResendVerification(ctx context.Context, email string) (*MessageResponse, error) {
	return c.message(ctx, "/auth/resend-verification", EmailRequest{Email: email})
}

// Logout revokes a refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) (*MessageResponse, error) {
	return c.message(ctx, "/auth/logout", RefreshRequest{RefreshToken: refreshToken})
}

func (c *Client) message(ctx context.Context, path string, body any) (*MessageResponse, error) {
	var result MessageResponse
	if err := c.Post(ctx, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListUsers returns every user.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var result []User
	if err := c.Get(ctx, "/users", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetUser retrieves a user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var result User
	if err := c.Get(ctx, userPath(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMe retrieves the authenticated user.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var result User
	if err := c.Get(ctx, "/users/me", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateUser applies a partial update.
func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	var result User
	if err := c.Patch(ctx, userPath(id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.Delete(ctx, userPath(id), nil, nil)
}

func userPath(id string) string {
	return fmt.Sprintf("/users/%s", url.PathEscape(id))
}
