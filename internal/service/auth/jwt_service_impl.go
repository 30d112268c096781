package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// MinSecretLength is the shortest signing secret NewJWTService accepts.
const MinSecretLength = 32

// DefaultTokenLifetime applies when the configuration leaves the lifetime unset.
const DefaultTokenLifetime = 60 * time.Minute

// hmacJWTService is an implementation of JWTService using HMAC-SHA256 signing.
type hmacJWTService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA256 signing.
// Expiry is checked exactly: no clock skew leeway is granted.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}

	lifetime := time.Duration(cfg.TokenLifetimeMinutes) * time.Minute
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}

	return newHMACJWTService([]byte(cfg.JWTSecret), lifetime, time.Now), nil
}

func newHMACJWTService(key []byte, lifetime time.Duration, timeFunc func() time.Time) *hmacJWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey:    key,
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
	}
}

// GenerateToken creates a signed JWT access token for username.
func (s *hmacJWTService) GenerateToken(ctx context.Context, username string) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := jwtCustomClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign JWT access token",
			slog.String("error", err.Error()),
			slog.String("signing_method", jwt.SigningMethodHS256.Name))
		return "", fmt.Errorf("failed to sign access token with HMAC-SHA256: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT access token and returns the claims if valid.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.timeFunc),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("access token validation failed: token expired")
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("access token validation failed: malformed token")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("access token validation failed: invalid signature")
		default:
			log.Debug("access token validation failed",
				slog.String("error_type", fmt.Sprintf("%T", err)))
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.Username == "" {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	log.Debug("access token validated",
		slog.String("token_id", claims.ID),
		slog.Time("expiry", claims.ExpiresAt.Time))

	return &Claims{
		Username:  claims.Username,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
