// Package logger builds the zerolog logger used across stockdesk.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	Level  string    // trace, debug, info, warn, error
	Format string    // console (human-readable) or json
	Out    io.Writer // defaults to os.Stderr
}

// New creates a structured logger. Console format writes readable lines,
// json writes one object per event. An unknown level falls back to info
// and is reported as a warning on the new logger.
func New(cfg Config) zerolog.Logger {
	var w io.Writer = cfg.Out
	if w == nil {
		w = os.Stderr
	}
	if !strings.EqualFold(cfg.Format, "json") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	level, err := ParseLevel(cfg.Level)
	log := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
	if err != nil {
		log.Warn().Str("requested_level", cfg.Level).Msg("invalid log level, defaulting to info")
	}
	return log
}

// ParseLevel maps a level name to a zerolog level. It accepts zerolog's own
// names plus "warning" and "off"; an empty string means info. Anything else
// returns info together with the parse error.
func ParseLevel(s string) (zerolog.Level, error) {
	switch name := strings.ToLower(strings.TrimSpace(s)); name {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	case "off":
		return zerolog.Disabled, nil
	default:
		level, err := zerolog.ParseLevel(name)
		if err != nil {
			return zerolog.InfoLevel, err
		}
		return level, nil
	}
}
