package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"neuradigest/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_DefaultLevel(t *testing.T) {
	logger := NewLogger()

	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewLogger_LevelFromEnv(t *testing.T) {
	tests := []struct {
		name        string
		envValue    string
		debugOn     bool
		infoOn      bool
		warnOn      bool
	}{
		{name: "debug", envValue: "debug", debugOn: true, infoOn: true, warnOn: true},
		{name: "info", envValue: "info", infoOn: true, warnOn: true},
		{name: "warn", envValue: "warn", warnOn: true},
		{name: "error", envValue: "error"},
		{name: "unknown defaults to info", envValue: "verbose", infoOn: true, warnOn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.envValue)
			logger := NewLogger()
			ctx := context.Background()

			assert.Equal(t, tt.debugOn, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.infoOn, logger.Enabled(ctx, slog.LevelInfo))
			assert.Equal(t, tt.warnOn, logger.Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestNewLogger_FormatFromEnv(t *testing.T) {
	// どの形式でもロガー生成は成功する
	t.Setenv("LOG_FORMAT", "text")
	assert.NotNil(t, NewLogger())

	t.Setenv("LOG_FORMAT", "")
	assert.NotNil(t, NewLogger())
}

func TestWithRequestID_AnnotatesLogs(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := requestid.WithRequestID(context.Background(), "req-abc-123")
	logger := WithRequestID(ctx, base)

	logger.Info("digest refreshed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-abc-123", entry["request_id"])
	assert.Equal(t, "digest refreshed", entry["msg"])
}

func TestWithRequestID_NoIDLeavesLoggerUnchanged(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	logger := WithRequestID(context.Background(), base)
	assert.Same(t, base, logger)

	logger.Info("no request scope")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasID := entry["request_id"]
	assert.False(t, hasID)
}

func TestLogger_JSONStructure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logger.Info("subscriber registered",
		slog.String("email", "jane@example.com"),
		slog.Bool("resubscribed", false))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "subscriber registered", entry["msg"])
	assert.Equal(t, "jane@example.com", entry["email"])
	assert.Equal(t, false, entry["resubscribed"])
	assert.Contains(t, entry, "time")
}
