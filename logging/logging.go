package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// Logger is the public logger instance accessible from all packages.
// It discards everything until Initialize is called.
var Logger = log.New(io.Discard)

// Initialize sets up the logger to write to w at the named level.
// A nil writer means stderr; stdout is reserved for reports.
func Initialize(level string, w io.Writer) error {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if w == nil {
		w = os.Stderr
	}

	Logger = log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "gno",
		ReportTimestamp: lvl <= log.DebugLevel,
	})
	return nil
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, err := log.ParseLevel(level)
	return err == nil
}
