package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/gtask-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixTimestamp(t *testing.T) {
	t.Helper()
	original := timestamp
	timestamp = func() string { return "2025-01-01T00:00:00Z" }
	t.Cleanup(func() { timestamp = original })
}

func TestRespondWithSuccess(t *testing.T) {
	fixTimestamp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/tasks?page=2", nil)
	w := httptest.NewRecorder()

	RespondWithSuccess(w, req, http.StatusOK, "", map[string]int{"count": 3})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, DefaultSuccessMessage, body["message"])
	assert.Equal(t, "2025-01-01T00:00:00Z", body["timestamp"])
	assert.Equal(t, "/api/tasks?page=2", body["path"])
	assert.Equal(t, "GET", body["method"])
	assert.Equal(t, map[string]interface{}{"count": float64(3)}, body["data"])
}

func TestRespondWithError(t *testing.T) {
	fixTimestamp(t)
	ctx := context.WithValue(context.Background(), TraceIDKey, "test-trace-id")
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusUnauthorized, "Invalid credentials")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid credentials", resp.Message)
	assert.Equal(t, []string{"Invalid credentials"}, resp.Errors)
	assert.Equal(t, "/api/auth/signin", resp.Path)
	assert.Equal(t, "test-trace-id", resp.TraceID)
}

func TestRespondWithErrorDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusBadRequest, "Validation failed",
		WithDetails("title is required", "priority must be at most 3"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"title is required", "priority must be at most 3"}, resp.Errors)
	assert.Empty(t, resp.TraceID)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		err       error
		opts      []ResponseOption
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, err: errors.New("db down"), wantLevel: "ERROR"},
		{name: "client error", status: http.StatusBadRequest, err: errors.New("bad input"), wantLevel: "DEBUG"},
		{
			name:      "elevated client error",
			status:    http.StatusUnauthorized,
			err:       errors.New("bad token"),
			opts:      []ResponseOption{WithElevatedLogLevel()},
			wantLevel: "WARN",
		},
		{name: "rate limited", status: http.StatusTooManyRequests, err: errors.New("slow down"), wantLevel: "WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			ctx := logger.WithLogger(context.WithValue(context.Background(), TraceIDKey, "trace-1"), log)
			req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			RespondWithErrorAndLog(w, req, tc.status, "Something failed", tc.err, tc.opts...)

			assert.Equal(t, tc.status, w.Code)
			assert.NotContains(t, w.Body.String(), tc.err.Error())

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(logBuf.Bytes(), &entry))
			assert.Equal(t, tc.wantLevel, entry["level"])
			assert.Equal(t, "trace-1", entry["trace_id"])
			assert.Equal(t, tc.err.Error(), entry["error"])
			assert.Equal(t, "*errors.errorString", entry["error_type"])
		})
	}
}

func TestRespondWithErrorAndLogRedacts(t *testing.T) {
	var logBuf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	req := httptest.NewRequest(http.MethodGet, "/test", nil).
		WithContext(logger.WithLogger(context.Background(), log))

	RespondWithErrorAndLog(httptest.NewRecorder(), req, http.StatusInternalServerError,
		"Internal server error", errors.New("login for ada@example.com failed"))

	assert.NotContains(t, logBuf.String(), "ada@example.com")
	assert.Contains(t, logBuf.String(), "[REDACTED_EMAIL]")
}
