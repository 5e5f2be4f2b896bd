package model

import "time"

// User represents a user account
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Hash      *string    `json:"-"` // Never expose password hash
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
	LoginOn   *time.Time `json:"login_on,omitempty"`
}

// TokenClaims represents extracted JWT claims
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}

// Credential constraints
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxNameLength     = 100
)

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents a password login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh attempt
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenPair is the response for register, login, and refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // Seconds until access token expiry
}

// AuthResponse bundles the user with their tokens
type AuthResponse struct {
	User   *User     `json:"user"`
	Tokens TokenPair `json:"tokens"`
}
