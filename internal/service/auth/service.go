package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// AuthService registers users, signs them in and resolves bearer tokens
// back to users.
type AuthService interface {
	// SignUp registers username with a hash of password.
	// Returns ErrDuplicateUsername if the name is taken.
	SignUp(ctx context.Context, username, password string) error

	// SignIn verifies the credentials and returns a signed access token.
	// An unknown username and a wrong password both yield ErrInvalidCredentials.
	SignIn(ctx context.Context, username, password string) (string, error)

	// ResolveCaller validates token and loads the user it was issued for.
	// A valid token naming a user that no longer exists is ErrInvalidToken.
	ResolveCaller(ctx context.Context, token string) (*domain.User, error)
}

type authService struct {
	users  store.UserStore
	hasher PasswordHasher
	tokens JWTService
	logger *slog.Logger

	// dummyHash is compared against when the username is unknown so that
	// both sign-in failures spend the same hashing work.
	dummyHash string
}

var _ AuthService = (*authService)(nil)

// NewAuthService creates an AuthService. If logger is nil, a default logger will be used.
func NewAuthService(
	users store.UserStore,
	hasher PasswordHasher,
	tokens JWTService,
	logger *slog.Logger,
) (AuthService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummyHash, err := hasher.Hash("timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hasher: %w", err)
	}

	return &authService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger.With(slog.String("component", "auth_service")),
		dummyHash: dummyHash,
	}, nil
}

// SignUp implements AuthService.
func (s *authService) SignUp(ctx context.Context, username, password string) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("username", username))

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return domain.NewValidationError("password", "must be at most 72 bytes", err)
		}
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	user, err := domain.NewUser(username, hashed)
	if err != nil {
		return err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Debug("signup rejected: username taken")
			return fmt.Errorf("%w: %w", ErrDuplicateUsername, err)
		}
		log.Error("failed to persist user",
			slog.String("operation", "sign_up"),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	log.Info("user signed up", slog.String("user_id", user.ID.String()))
	return nil
}

// SignIn implements AuthService.
func (s *authService) SignIn(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("username", username))

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to load user",
				slog.String("operation", "sign_in"),
				slog.String("error", err.Error()))
			return "", fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		_ = s.hasher.Compare(s.dummyHash, password)
		log.Debug("sign in failed")
		return "", ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("sign in failed")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.Username)
	if err != nil {
		log.Error("failed to issue token", slog.String("error", err.Error()))
		return "", err
	}

	log.Debug("user signed in", slog.String("user_id", user.ID.String()))
	return token, nil
}

// ResolveCaller implements AuthService.
func (s *authService) ResolveCaller(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to resolve caller",
			slog.String("username", claims.Username),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return user, nil
}
