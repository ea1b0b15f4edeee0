package cmd

import (
	"io"
	"log/slog"
)

// buildLogger creates the logger. Logs are written on stderr so the documents
// printed on stdout can be piped.
func buildLogger(out io.Writer, level string, format string) *slog.Logger {
	var programLevel = new(slog.LevelVar)
	switch level {
	case "debug":
		programLevel.Set(slog.LevelDebug)
	case "info":
		programLevel.Set(slog.LevelInfo)
	case "warn":
		programLevel.Set(slog.LevelWarn)
	case "error":
		programLevel.Set(slog.LevelError)
	default:
		programLevel.Set(slog.LevelInfo)
	}

	options := &slog.HandlerOptions{Level: programLevel}
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(out, options))
	default:
		return slog.New(slog.NewTextHandler(out, options))
	}
}
