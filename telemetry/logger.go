// Package telemetry provides the ambient logging and metrics-sidecar
// machinery shared by both CLI entry points: a JSON-to-stdout slog
// logger and an optional per-level CSV export of the MPP sweep.
package telemetry

import (
	"log/slog"
	"os"
)

// NewLogger builds the JSON-handler-to-stdout logger used throughout
// this codebase, filtered to level (one of debug, info, warn, error;
// anything else defaults to info).
func NewLogger(level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	switch level {
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
