// Package logging builds the slog loggers used by the CLI and the engine.
//
// Lines look like:
//
//	2026-01-02T15:04:05Z [debug] run finished | run_id=..., differences=3
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelSilent is above every standard level.
const LevelSilent = slog.Level(100)

// New creates a logger writing the compact line format to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard creates a logger that drops all output.
func Discard() *slog.Logger {
	return slog.New(NewHandler(io.Discard, &slog.HandlerOptions{Level: LevelSilent}))
}

// ParseLevel converts debug, info, warn or error (case-insensitive) to a level.
// "silent" and "off" disable logging.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "silent", "off":
		return LevelSilent, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// LevelFromVerbosity converts CLI verbosity flags to a level.
//   - quiet: nothing is logged
//   - 0: warn
//   - 1: info
//   - 2 and more: debug
func LevelFromVerbosity(verbosity int, quiet bool) slog.Level {
	if quiet {
		return LevelSilent
	}

	switch verbosity {
	case 0:
		return slog.LevelWarn
	case 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
