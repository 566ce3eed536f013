// Package logutils builds the process logger from the --log-level and
// --log-file flags.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Console is the --log-file value that sends human-readable logs to the
// console writer instead of JSON to a file.
const Console = "-"

// ParseLevel accepts zerolog level names plus "warning".
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// New returns a timestamped logger at level. With file set to Console it
// writes pretty lines to console; otherwise it appends JSON lines to file,
// creating its directory. The returned func closes the file.
func New(level, file string, console io.Writer) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), closer, err
	}

	var w io.Writer
	if file == Console {
		w = zerolog.ConsoleWriter{Out: console, TimeFormat: time.TimeOnly}
	} else {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		closer = func() { _ = f.Close() }
		w = f
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), closer, nil
}
