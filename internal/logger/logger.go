// Package logger builds the application's zerolog.Logger.
//
// Development (dev): human-readable console output at DEBUG level.
// Staging (staging): JSON output at DEBUG level.
// Production (prod): JSON output at INFO level.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to stdout, configured for env.
func New(env string) zerolog.Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(env string, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	switch env {
	case "prod":
		return zerolog.New(out).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	case "staging":
		return zerolog.New(out).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	default: // "dev" and anything unrecognised
		return zerolog.New(consoleWriter(out)).
			Level(zerolog.DebugLevel).
			With().
			Timestamp().
			Logger()
	}
}

// consoleWriter prints fixed-width levels so dev logs line up.
func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05.000",
		FormatLevel: func(i any) string {
			level, _ := i.(string)
			return fmt.Sprintf(" %5s ", strings.ToUpper(level))
		},
		FormatMessage: func(i any) string {
			return fmt.Sprintf(" : %v", i)
		},
	}
}
