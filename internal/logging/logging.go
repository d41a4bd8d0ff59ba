// Package logging wraps the standard logger the way the teacher's worker
// pools gate their progress output on a Verbose flag (see
// internal/tile/generator.go in the retrieval pack this module was built
// from): a leveled logger that defaults to stderr and silences Debug
// output unless verbose is set.
package logging

import (
	"log"
	"os"
)

// Logger is a minimal leveled wrapper around *log.Logger.
type Logger struct {
	base    *log.Logger
	verbose bool
}

// New creates a Logger writing to stderr with the standard flags.
func New(verbose bool) *Logger {
	return &Logger{
		base:    log.New(os.Stderr, "", log.LstdFlags),
		verbose: verbose,
	}
}

// Debugf logs only when verbose output was requested.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.verbose {
		return
	}
	l.base.Printf(format, args...)
}

// Warnf logs a recoverable condition (e.g. a tile read retried, a style
// omitted from the cache).
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.base.Printf("WARN "+format, args...)
}

// Errorf logs an error the caller is also returning, for operators
// (storage retries, encoder faults) where the spec requires "a logged
// fault, not a fatal panic" alongside the nodata substitution.
func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}
	l.base.Printf("ERROR "+format, args...)
}

// Default is a process-wide quiet logger, overridden by callers (e.g.
// cmd/tileserve) that parse a -verbose flag.
var Default = New(false)
