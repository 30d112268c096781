package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	withTrace := SetTraceID(ctx)
	traceID := GetTraceID(withTrace)
	assert.Len(t, traceID, 32)

	// parent context is untouched
	assert.Empty(t, GetTraceID(ctx))
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestGenerateTraceID(t *testing.T) {
	const iterations = 1000
	seen := make(map[string]bool, iterations)

	for i := 0; i < iterations; i++ {
		id := generateTraceID()
		require.Len(t, id, 32)
		_, err := hex.DecodeString(id)
		require.NoError(t, err)
		assert.False(t, seen[id], "trace IDs must be unique")
		seen[id] = true
	}
}

func TestFallbackTraceID(t *testing.T) {
	id := fallbackTraceID()
	assert.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, fallbackTraceID())
}

func TestCallerContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		user := &domain.User{ID: uuid.New(), Username: "alice"}
		ctx := WithCaller(context.Background(), user)

		got, ok := CallerFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, user, got)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok := CallerFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("nil user", func(t *testing.T) {
		_, ok := CallerFromContext(WithCaller(context.Background(), nil))
		assert.False(t, ok)
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), CallerContextKey, "alice")
		_, ok := CallerFromContext(ctx)
		assert.False(t, ok)
	})
}
