package msglog

import "sync"

var (
	defaultMu     sync.Mutex
	defaultLogger *Logger
)

// Default returns the process-wide Logger, creating it with
// DefaultOptions on first use.
func Default() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger(DefaultOptions())
	}
	return defaultLogger
}

// SetDefault replaces the process-wide Logger. Call before first use;
// the previous default, if any, is not closed.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Print commits one line on the default Logger.
func Print(args ...any) {
	Default().Print(args...)
}
