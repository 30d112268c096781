package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUserStore is a mock of store.UserStore interface for use with testify/mock
type TestifyMockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*TestifyMockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *TestifyMockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByUsername is a mock implementation of store.UserStore.GetByUsername
func (m *TestifyMockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}
