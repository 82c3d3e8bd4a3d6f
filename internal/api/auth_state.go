package api

import "sync"

// AuthState holds the bearer and refresh tokens. A single AuthState is
// shared by reference between the facade and every endpoint wrapper, so a
// mutation through any of them is seen by all. Tokens are never validated
// or persisted.
type AuthState struct {
	mu           sync.RWMutex
	token        string
	refreshToken string
}

// NewAuthState returns an empty AuthState.
func NewAuthState() *AuthState {
	return &AuthState{}
}

// SetToken stores the bearer token.
func (s *AuthState) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the bearer token, or "" when none is held.
func (s *AuthState) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ClearToken forgets the bearer token.
func (s *AuthState) ClearToken() {
	s.SetToken("")
}

// SetRefreshToken stores the refresh token.
func (s *AuthState) SetRefreshToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshToken = token
}

// RefreshToken returns the refresh token, or "" when none is held.
func (s *AuthState) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// ClearRefreshToken forgets the refresh token.
func (s *AuthState) ClearRefreshToken() {
	s.SetRefreshToken("")
}

// Clear forgets both tokens.
func (s *AuthState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.refreshToken = ""
}
