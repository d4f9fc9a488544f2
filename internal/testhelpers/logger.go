package testhelpers

import (
	"io"
	"log/slog"
)

// NewLogger creates a debug level logger with the given log sink such as io.Discard.
func NewLogger(logSink io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
	}))
}
