// Package logging configures slog for the API and worker binaries and
// carries the request ID into log lines.
package logging

import (
	"context"
	"log/slog"
	"os"

	"neuradigest/internal/handler/http/requestid"
)

// NewLogger builds the process logger. LOG_LEVEL selects debug, info, warn
// or error (default info); LOG_FORMAT=text switches from JSON to the text
// handler for local runs. Source locations are attached when the level is
// warn or lower.
func NewLogger() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	}

	var handler slog.Handler
	if os.Getenv("LOG_FORMAT") == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID returns logger annotated with the request ID from ctx, or
// logger unchanged when the context has none.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
