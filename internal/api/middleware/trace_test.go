package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	NewTraceMiddleware(base)(next).ServeHTTP(w, req)

	require.Len(t, traceID, 32)
	assert.Equal(t, traceID, w.Header().Get(TraceHeader))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, string(line), `"trace_id":"`+traceID+`"`)
	}
	assert.Contains(t, string(lines[0]), "request started")
	assert.Contains(t, string(lines[1]), "inside handler")
}

func TestTraceMiddlewareAssignsDistinctIDs(t *testing.T) {
	ids := make(map[string]bool)
	handler := NewTraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids[shared.GetTraceID(r.Context())] = true
	}))

	for i := 0; i < 10; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	assert.Len(t, ids, 10)
}
