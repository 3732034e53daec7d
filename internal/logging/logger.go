package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a zerolog logger writing to w (stdout when nil).
// Unknown levels fall back to info; format "console" enables the
// human-readable writer.
func New(level, format, env string, w io.Writer) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && parsed != zerolog.NoLevel {
		lvl = parsed
	}
	if w == nil {
		w = os.Stdout
	}
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("app", "travel-booking").
		Str("env", env).
		Logger()
}
