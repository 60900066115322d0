package logging

import (
	"log/slog"
	"os"
)

// Init builds the process logger from the configured level and format
// and installs it as the slog default. LOG_LEVEL in the environment
// overrides the configured level.
func Init(level, format string) *slog.Logger {
	if l, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = l
	}

	lvl := slog.LevelInfo
	switch level {
	case "dev", "development", "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error", "production", "prod":
		lvl = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
