package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var levels = map[string]zerolog.Level{
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

// New builds the application logger. Level accepts debug, info, warn, or
// error; anything else falls back to info. With pretty set, output is a
// human-readable console stream instead of JSON.
func New(level string, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}
	return build(parseLevel(level), w).With().Caller().Logger()
}

// NewWithWriter routes log output to w, for tests that assert on output.
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	return build(parseLevel(level), w)
}

func build(lvl zerolog.Level, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	if lvl, ok := levels[level]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}
