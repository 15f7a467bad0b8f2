package logging

import (
	"log/slog"
	"sync/atomic"
)

var traceEnabled atomic.Bool

// SetTrace switches per-label trace output on or off.
func SetTrace(on bool) {
	traceEnabled.Store(on)
}

// TraceEnabled reports whether trace output is on.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

// Trace logs at DEBUG, but only when trace output is on. Collision passes
// call it once per suppressed label, so it stays off by default.
func Trace(logger *slog.Logger, msg string, args ...any) {
	if traceEnabled.Load() {
		logger.Debug(msg, args...)
	}
}
