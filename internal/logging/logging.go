// Package logging configures log/slog for the command line tool.
//
// The command line tool sends logs to its error writer, stderr unless a
// test swaps it, so that stdout stays reserved for results. The level
// comes from an explicit setting or the LOG_LEVEL environment variable and
// defaults to info. Debug logging adds source locations.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel is the environment variable read when no level is given.
const EnvLevel = "LOG_LEVEL"

// Format selects the handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseLevel maps "debug", "info", "warn"/"warning" and "error"
// (case-insensitive) to a slog level. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewStructuredLogger returns a logger writing to w with the module name and
// version attached to every record. An empty level falls back to LOG_LEVEL.
func NewStructuredLogger(w io.Writer, format Format, module, version, level string) *slog.Logger {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	lvl := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	}

	var h slog.Handler
	if format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h).With("module", module, "version", version)
}

// SetDefaultStructuredLoggerWithLevel installs a logger writing to w as the
// slog default and returns it. A nil w means stderr.
func SetDefaultStructuredLoggerWithLevel(w io.Writer, format Format, module, version, level string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := NewStructuredLogger(w, format, module, version, level)
	slog.SetDefault(l)
	return l
}
