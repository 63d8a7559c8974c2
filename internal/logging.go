package internal

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger tagged with a component name.
// Diagnostics go to w (stderr in the CLI) so stdout stays reserved for results.
func NewLogger(w io.Writer, component string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("component", component)
}

// SetDefaultLogger installs logger as the process-wide default used by the store backends
func SetDefaultLogger(logger *slog.Logger) {
	slog.SetDefault(logger)
}
