// Package sysutil holds process-level helpers shared by the shell and tests.
package sysutil

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/slenderdeveloperman/QuoteBook/internal/config"
)

// SetLogLevel configures the global zerolog level based on a string value.
// Supported values (case-insensitive): debug, info, warn, error, fatal, panic.
func SetLogLevel(lvl string) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info", "":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// NewLogger applies cfg.LogLevel globally and returns the root logger writing
// to w (stderr when nil). LOG_PRETTY switches from JSON to console output.
func NewLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	SetLogLevel(cfg.LogLevel)
	if w == nil {
		w = os.Stderr
	}
	if cfg.LogPretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}
	return zerolog.New(w).With().Timestamp().Str("app", "quotebook").Logger()
}
