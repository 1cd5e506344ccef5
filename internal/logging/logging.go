// Package logging provides structured logging setup for staylist.
package logging

import (
	"log/slog"
	"os"
)

// Setup initializes the default slog logger. Verbose mode uses
// human-readable text at debug level; otherwise warnings and errors
// print as text to stderr so they never mix with command output.
func Setup(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
