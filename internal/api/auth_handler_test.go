package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSignUp(t *testing.T) {
	tests := []struct {
		name        string
		body        interface{}
		serviceErr  error
		callService bool
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "success",
			body:        CredentialsRequest{Username: "alice", Password: "password1"},
			callService: true,
			wantStatus:  http.StatusCreated,
		},
		{
			name:        "duplicate username",
			body:        CredentialsRequest{Username: "alice", Password: "password1"},
			serviceErr:  fmt.Errorf("%w: %w", auth.ErrDuplicateUsername, store.ErrUsernameExists),
			callService: true,
			wantStatus:  http.StatusConflict,
			wantMessage: "Username already exists",
		},
		{
			name:        "persistence failure",
			body:        CredentialsRequest{Username: "alice", Password: "password1"},
			serviceErr:  fmt.Errorf("%w: disk full", auth.ErrPersistence),
			callService: true,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to create user",
		},
		{
			name:        "username too short",
			body:        CredentialsRequest{Username: "al", Password: "password1"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid username: must be at least 4 characters",
		},
		{
			name:        "username too long",
			body:        CredentialsRequest{Username: strings.Repeat("a", 21), Password: "password1"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid username: must be at most 20 characters",
		},
		{
			name:        "password too short",
			body:        CredentialsRequest{Username: "alice", Password: "short"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid password: must be at least 8 characters",
		},
		{
			name:        "missing password",
			body:        map[string]string{"username": "alice"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid password: required field",
		},
		{
			name:        "malformed json",
			body:        `{"username":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
		{
			name:        "empty body",
			body:        "",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Request body is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mocks.MockAuthService)
			if tc.callService {
				svc.On("SignUp", mock.Anything, "alice", "password1").Return(tc.serviceErr).Once()
			}

			w := doRequest(t, newAuthRouter(svc), http.MethodPost, "/auth/signup", tc.body)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantMessage == "" {
				assert.Empty(t, w.Body.String())
			} else {
				assert.Equal(t, tc.wantMessage, decodeError(t, w).Error)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestSignUpPasswordTooLongForHasher(t *testing.T) {
	svc := new(mocks.MockAuthService)
	svc.On("SignUp", mock.Anything, "alice", mock.Anything).
		Return(domain.NewValidationError("password", "is too long", auth.ErrPasswordTooLong)).Once()

	w := doRequest(t, newAuthRouter(svc), http.MethodPost, "/auth/signup",
		CredentialsRequest{Username: "alice", Password: "password1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid password: is too long", decodeError(t, w).Error)
}

func TestSignIn(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		serviceErr  error
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "success",
			token:      "header.payload.signature",
			wantStatus: http.StatusOK,
		},
		{
			name:        "invalid credentials",
			serviceErr:  auth.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid username or password",
		},
		{
			name:        "persistence failure",
			serviceErr:  fmt.Errorf("%w: connection reset", auth.ErrPersistence),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to sign in",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mocks.MockAuthService)
			svc.On("SignIn", mock.Anything, "alice", "password1").Return(tc.token, tc.serviceErr).Once()

			w := doRequest(t, newAuthRouter(svc), http.MethodPost, "/auth/signin",
				CredentialsRequest{Username: "alice", Password: "password1"})

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.serviceErr == nil {
				var resp map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, map[string]string{"accessToken": tc.token}, resp)
			} else {
				assert.Equal(t, tc.wantMessage, decodeError(t, w).Error)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestSignInValidatesBeforeCallingService(t *testing.T) {
	svc := new(mocks.MockAuthService)

	w := doRequest(t, newAuthRouter(svc), http.MethodPost, "/auth/signin",
		CredentialsRequest{Username: "alice", Password: strings.Repeat("p", 33)})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid password: must be at most 32 characters", decodeError(t, w).Error)
	svc.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
}
