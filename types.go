package rendevo

import "github.com/rendevo/client-go/internal/api"

// Role is a user's authorization role.
type Role = api.Role

// Roles.
const (
	RoleUser  = api.RoleUser
	RoleAdmin = api.RoleAdmin
)

// User represents a Rendevo account.
type User = api.User

// AuthResponse is returned by Login, Register and Refresh.
type AuthResponse = api.AuthResponse

// MessageResponse is returned by the password, verification and logout endpoints.
type MessageResponse = api.MessageResponse

// LoginRequest holds login credentials.
type LoginRequest = api.LoginRequest

// RegisterRequest holds the fields for a new account.
type RegisterRequest = api.RegisterRequest

// ResetPasswordRequest holds a reset token and the new password.
type ResetPasswordRequest = api.ResetPasswordRequest

// UpdateUserRequest is a partial user update. Nil fields are left unchanged.
type UpdateUserRequest = api.UpdateUserRequest
