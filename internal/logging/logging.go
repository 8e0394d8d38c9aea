// Package logging builds the zerolog logger shared by fyfire's subsystems.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name to a zerolog level.
// Unknown names fall back to info and report ok=false.
func ParseLevel(name string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel, true
	case "info", "":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

// New returns a console logger writing to w at the named level.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, ok := ParseLevel(level)
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	log := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	if !ok {
		log.Warn().Str("configured", level).Msg("unknown log level, using info")
	}
	return log
}

// Stderr returns the CLI logger. quiet raises the level to errors only.
func Stderr(level string, quiet bool) zerolog.Logger {
	if quiet {
		level = "error"
	}
	return New(os.Stderr, level)
}

// Component tags a logger with the subsystem it belongs to.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
