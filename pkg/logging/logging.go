// Package logging builds the slog.Logger shared by all repofit apps.
//
// LOG_FORMAT selects the handler:
//
//	LOG_FORMAT=json    structured JSON for log aggregators (default)
//	LOG_FORMAT=text    key=value pairs for local development
//
// LOG_LEVEL sets the minimum level (debug, info, warn, error; default info).
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a logger configured from environment variables.
func New() *slog.Logger {
	opts := &slog.HandlerOptions{Level: levelFromEnv(os.Getenv("LOG_LEVEL"))}

	var handler slog.Handler
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "text", "console":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func levelFromEnv(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
