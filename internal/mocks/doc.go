// Package mocks provides centralized mock implementations for testing.
//
// Two styles are available. Function-field mocks (MockJWTService,
// MockPasswordHasher, MockAuthService, MockTaskService) return fixed values
// unless a custom Fn is set. Testify mocks (TestifyMockUserStore,
// TestifyMockTaskStore) are driven with On(...).Return(...) and checked with
// AssertExpectations.
//
//	tokens := &mocks.MockJWTService{
//	    GenerateTokenFn: func(ctx context.Context, username string) (string, error) {
//	        return "mocked-token", nil
//	    },
//	}
package mocks
