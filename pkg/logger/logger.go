// Package logger builds the zerolog loggers shared by the API server and the
// maintenance commands. Components take a zerolog.Logger as a constructor
// argument; nothing here is global apart from the level names.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	Level   string    // trace, debug, info, warn or error
	Pretty  bool      // console output for local runs, JSON otherwise
	Output  io.Writer // os.Stdout when nil
	Service string    // "service" field on every entry, omitted when empty
}

// New returns a logger writing entries at or above opts.Level. An unknown
// level falls back to info and is reported once on the returned logger.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	lvl, known := ParseLevel(opts.Level)
	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	log := ctx.Logger()

	if !known {
		log.Warn().Str("log_level", opts.Level).Msg("unknown log level, using info")
	}
	return log
}

// Component tags entries with the subsystem that wrote them.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// ParseLevel maps a LOG_LEVEL value to a zerolog level. Empty input is info
// and counts as known.
func ParseLevel(s string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "", "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	default:
		return zerolog.InfoLevel, false
	}
}
