package mocks

import (
	"errors"
	"sync"

	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// ErrPasswordMismatch is returned by MockPasswordHasher.Compare when ShouldSucceed is false.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordHasher implements auth.PasswordHasher for testing.
// Hash returns "hashed:"+password unless HashFn or HashErr say otherwise.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	HashErr error

	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	mu               sync.Mutex
	CompareCallCount int
	HashCallCount    int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.mu.Lock()
	m.HashCallCount++
	m.mu.Unlock()

	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Compare implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.CompareCallCount++
	m.mu.Unlock()

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return ErrPasswordMismatch
}

// Compares reports how many times Compare was called.
func (m *MockPasswordHasher) Compares() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CompareCallCount
}
