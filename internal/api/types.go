package api

import "time"

// Role is a user's authorization role.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents a Rendevo account.
type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	IsActive        bool       `json:"isActive"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt"`
	Role            Role       `json:"role"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// AuthResponse is returned by login, register and refresh.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// MessageResponse is returned by the password and verification endpoints.
// Token is only populated by servers that expose reset tokens (development).
type MessageResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// LoginRequest represents the POST /auth/login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the POST /auth/register request.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RefreshRequest represents the POST /auth/refresh and /auth/logout requests.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// EmailRequest represents the POST /auth/forgot-password and
// /auth/resend-verification requests.
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents the POST /auth/reset-password request.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// TokenRequest represents the POST /auth/verify-email request.
type TokenRequest struct {
	Token string `json:"token"`
}

// UpdateUserRequest represents the PATCH /users/{id} request. Nil fields
// are left unchanged.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
	Role      *Role   `json:"role,omitempty"`
}
