package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger from the env name:
// prod gets JSON at INFO, everything else text at DEBUG.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var handler slog.Handler
	if env == "prod" {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", "room-relay")
}
