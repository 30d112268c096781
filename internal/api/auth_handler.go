package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService auth.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService auth.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authService: authService,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// SignUp handles POST /auth/signup. A new account yields 201 with an empty body.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.authService.SignUp(r.Context(), req.Username, req.Password); err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("user signed up", slog.String("username", req.Username))
	shared.RespondNoContent(w, http.StatusCreated)
}

// SignIn handles POST /auth/signin and returns {"accessToken": "..."}.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.authService.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to sign in")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SignInResponse{AccessToken: token})
}
