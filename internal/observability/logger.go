package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

// text to stderr so it stays out of the chat transcript on stdout.
var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) *slog.Logger {
	level.Set(slog.LevelWarn)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func Logger() *slog.Logger {
	return logger
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return logger.With(kv...)
}

// SetLevel accepts debug, info, warn or error; anything else keeps warn.
func SetLevel(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "info":
		level.Set(slog.LevelInfo)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelWarn)
	}
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	lvl := level.Level()
	logger = newLogger(w)
	level.Set(lvl)
}
