package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog logger writing to w. format "console" selects
// the human-readable writer; anything else writes JSON lines. An unparsable
// level falls back to info.
func NewLogger(level, format string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "carbonwise").
		Logger()
}

// NewLoggerFromConfig builds the logger described by cfg.
func NewLoggerFromConfig(cfg LoggingConfig, w io.Writer) zerolog.Logger {
	return NewLogger(cfg.Level, cfg.Format, w)
}
