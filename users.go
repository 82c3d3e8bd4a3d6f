package rendevo

import (
	"context"

	"github.com/rendevo/client-go/internal/api"
)

// UserService wraps the /users endpoints. All calls use the client's
// shared bearer token.
type UserService struct {
	api    *api.Client
	tokens *api.AuthState
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]User, error) {
	return s.api.ListUsers(ctx)
}

// Get retrieves a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*User, error) {
	return s.api.GetUser(ctx, id)
}

// Me retrieves the authenticated user.
func (s *UserService) Me(ctx context.Context) (*User, error) {
	return s.api.GetMe(ctx)
}

// Update applies a partial update to a user.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	return s.api.UpdateUser(ctx, id, req)
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteUser(ctx, id)
}

// Token returns the shared bearer token.
func (s *UserService) Token() string { return s.tokens.Token() }

// SetToken stores the shared bearer token.
func (s *UserService) SetToken(token string) { s.tokens.SetToken(token) }

// ClearToken forgets the shared bearer token.
func (s *UserService) ClearToken() { s.tokens.ClearToken() }

// RefreshToken returns the shared refresh token.
func (s *UserService) RefreshToken() string { return s.tokens.RefreshToken() }
