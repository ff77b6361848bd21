// Package corelog provides the small leveled-logger shim used throughout
// the core: each subsystem gets a package-level *Logger that is silent by
// default, so parse/read tracing can be turned on for one document open
// without a structured logging framework.
package corelog

import "log"

// Logger wraps the standard library logger and can be turned off without
// the caller needing to guard every call site.
type Logger struct {
	enabled bool
	*log.Logger
}

// NewLogger returns a disabled logger writing through l once enabled.
func NewLogger(l *log.Logger) *Logger {
	return &Logger{Logger: l}
}

// Enable turns the logger on.
func (l *Logger) Enable() { l.enabled = true }

// Disable turns the logger off (the default).
func (l *Logger) Disable() { l.enabled = false }

// Printf logs, formatted, iff the logger is enabled.
func (l *Logger) Printf(format string, v ...interface{}) {
	if l == nil || !l.enabled {
		return
	}
	l.Logger.Printf(format, v...)
}

// Println logs iff the logger is enabled.
func (l *Logger) Println(v ...interface{}) {
	if l == nil || !l.enabled {
		return
	}
	l.Logger.Println(v...)
}

// Named loggers, one per subsystem, mirroring the "log once per stream"
// policy of §7: callers rate-limit by enabling/disabling around a single
// document open or page render rather than per call site.
var (
	Parse  = NewLogger(log.Default())
	Read   = NewLogger(log.Default())
	Trace  = NewLogger(log.Default())
	Interp = NewLogger(log.Default())
)
