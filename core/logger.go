package core

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the replaceable, leveled sink spec.md §2 item 6 describes as
// an external collaborator. actorkit ships a zerolog-backed default;
// callers may supply their own via SystemOptions.Log.
type Logger struct {
	z zerolog.Logger
}

// NewLogger builds a console-writer logger at the given level.
func NewLogger(level zerolog.Level) Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return Logger{z: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// SilentLogger returns a logger whose sink discards everything, the
// "silent mode" named in spec.md §2 item 6.
func SilentLogger() Logger {
	return Logger{z: zerolog.Nop()}
}

// LevelFor resolves the System.new({test, debug}) precedence from
// spec.md §4.1: test selects errors-only, debug overrides to debug.
func LevelFor(test, debug bool) zerolog.Level {
	switch {
	case debug:
		return zerolog.DebugLevel
	case test:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l Logger) Debugf(format string, args ...any) { l.z.Debug().Msgf(format, args...) }
func (l Logger) Infof(format string, args ...any)  { l.z.Info().Msgf(format, args...) }
func (l Logger) Warnf(format string, args ...any)  { l.z.Warn().Msgf(format, args...) }
func (l Logger) Errorf(format string, args ...any) { l.z.Error().Msgf(format, args...) }

// With returns a child logger with a named category field, giving the
// "leveled categories" spec.md §2 item 6 asks for.
func (l Logger) With(category string) Logger {
	return Logger{z: l.z.With().Str("category", category).Logger()}
}
