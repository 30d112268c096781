package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token asserting username.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, username string) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns ErrExpiredToken once the expiry has passed and ErrInvalidToken for
	// any other failure (bad signature, wrong algorithm, malformed input).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the claims carried by an access token.
type Claims struct {
	// Username is the user the token was issued for.
	Username string `json:"username"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
