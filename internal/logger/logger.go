// File: internal/logger/logger.go
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Creates the process logger. The level can be raised or lowered later through level,
// which is how the --debug flag takes effect after flags are parsed
func NewLogger(level *slog.LevelVar) *slog.Logger {
	return newLogger(os.Stderr, level)
}

func newLogger(w io.Writer, level *slog.LevelVar) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(w, opts)

	logger := slog.New(handler)

	slog.SetDefault(logger)
	return logger
}

// Returns a logger that drops everything, for tests and library callers that do not log
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
