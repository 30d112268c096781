package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// ContextKey is the type of request-scoped values stored by the API layer.
type ContextKey string

const (
	// CallerContextKey holds the *domain.User resolved from the bearer token.
	CallerContextKey ContextKey = "caller"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID (32 hex characters).
	TraceIDLength = 16
)

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context, or "" if none is set.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithCaller stores the authenticated user in the context.
func WithCaller(ctx context.Context, caller *domain.User) context.Context {
	return context.WithValue(ctx, CallerContextKey, caller)
}

// CallerFromContext returns the authenticated user placed in the context by
// the auth middleware.
func CallerFromContext(ctx context.Context) (*domain.User, bool) {
	caller, ok := ctx.Value(CallerContextKey).(*domain.User)
	if !ok || caller == nil {
		return nil, false
	}
	return caller, true
}

// generateTraceID returns 32 hex characters from crypto/rand. If the random
// source fails it falls back to a random UUID with the dashes removed.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if n, err := rand.Read(b); err != nil || n != TraceIDLength {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

func fallbackTraceID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
