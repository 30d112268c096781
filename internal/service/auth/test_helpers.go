package auth

import (
	"time"

	"github.com/phrazzld/tasks-api/internal/config"
)

// DefaultJWTConfig returns an authentication configuration suitable for tests.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	}
}

// NewTestJWTService creates a JWT service with an explicit secret, lifetime and
// clock. The secret length is not checked.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	return newHMACJWTService([]byte(secret), lifetime, timeFunc)
}
