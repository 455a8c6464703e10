// Package logging builds the process logger: the slog API backed by a
// charmbracelet/log handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"golang.org/x/term"
)

// ParseLevel accepts debug, info, warn (or warning) and error.
func ParseLevel(level string) (charmlog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return charmlog.InfoLevel, nil
	case "debug":
		return charmlog.DebugLevel, nil
	case "warn", "warning":
		return charmlog.WarnLevel, nil
	case "error":
		return charmlog.ErrorLevel, nil
	default:
		return charmlog.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// New returns a logger writing to w. Terminals get the styled text format;
// anything else (pipes, files, a GUI-subsystem process without a console)
// gets logfmt.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	formatter := charmlog.LogfmtFormatter
	if isTerminal(w) {
		formatter = charmlog.TextFormatter
	}

	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Formatter:       formatter,
	})
	return slog.New(handler), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
