// internal/logging/logging.go
//
// Global zerolog setup shared by every command.
//
// Output selection:
//   - LOG_FILE set      → JSON lines appended to that file.
//   - stderr is a TTY   → human-readable zerolog.ConsoleWriter.
//   - otherwise         → JSON lines on stderr.
//
// The terminal game owns the screen, so cmd/wordle routes its logs to a file
// (or discards them) instead of stderr while it runs.

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. The returned closer releases the log
// file, if one was opened.
func Setup(level, file string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		return f, nil
	}

	log.Logger = zerolog.New(Writer(os.Stderr)).With().Timestamp().Logger()
	return nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Discard silences the global logger.
func Discard() {
	log.Logger = zerolog.Nop()
}

// Writer wraps f in a ConsoleWriter when it is a terminal.
func Writer(f *os.File) io.Writer {
	if isTerminal(f) {
		return zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}
	return f
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
