package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// AuthMiddleware authenticates requests carrying a bearer access token.
type AuthMiddleware struct {
	authService auth.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(authService auth.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate resolves the bearer token in the Authorization header to a
// user and stores it in the request context. Requests without a usable
// token are answered with 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		caller, err := m.authService.ResolveCaller(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err)
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err,
					shared.WithElevatedLogLevel())
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"Authentication error", err)
			}
			return
		}

		ctx := shared.WithCaller(r.Context(), caller)
		log := logger.FromContext(ctx).With(slog.String("user_id", caller.ID.String()))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
