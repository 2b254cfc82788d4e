// Package logging builds the diagnostic zerolog logger.
//
// Remote failures reach the user as fixed messages; the status code,
// payload and request id of each failure are recorded here instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects where diagnostics go.
type Options struct {
	// Debug writes human-readable debug output to Console.
	Debug bool

	// Console receives debug output, typically stderr.
	Console io.Writer

	// File receives JSON lines when set and Debug is false.
	File string

	// Level applies to File output.
	Level string
}

// New returns a logger for opts and a close function for any opened file.
// With neither Debug nor File set the logger is disabled.
func New(opts Options) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	if opts.Debug {
		out := opts.Console
		if out == nil {
			out = os.Stderr
		}
		w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
		return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger(), noop, nil
	}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("open log file: %w", err)
		}
		logger := zerolog.New(f).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
		return logger, f.Close, nil
	}

	return zerolog.Nop(), noop, nil
}

// ParseLevel converts a string log level to zerolog.Level.
// Unknown values fall back to info.
func ParseLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
