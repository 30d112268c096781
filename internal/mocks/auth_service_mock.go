package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a testify mock of auth.AuthService.
type MockAuthService struct {
	mock.Mock
}

var _ auth.AuthService = (*MockAuthService)(nil)

// SignUp records the call and returns the configured error.
func (m *MockAuthService) SignUp(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

// SignIn records the call and returns the configured token and error.
func (m *MockAuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

// ResolveCaller records the call and returns the configured user and error.
func (m *MockAuthService) ResolveCaller(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}
