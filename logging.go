// logging.go - Structured Logging Integration
//
// Logging is wired through logiface. A package-wide default logger can be
// installed once during program setup:
//
//	deferred.SetDefaultLogger(logger)
//
// and individual instances may override it via the WithLogger option. An
// unset (nil) logger disables logging; logiface builders are nil-safe, so
// the call sites carry no guards.

package deferred

import (
	"sync"

	"github.com/joeycumines/logiface"
)

var (
	// Package default logger for instances not configured with WithLogger.
	globalLogger struct {
		sync.RWMutex
		logger *logiface.Logger[logiface.Event]
	}
)

// SetDefaultLogger sets the package default logger. Instances created after
// the call use it unless overridden with [WithLogger]; instances created
// before keep the logger they captured. Passing nil disables the default.
//
// Safe for concurrent use, though it is typically called once at startup.
func SetDefaultLogger(logger *logiface.Logger[logiface.Event]) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	globalLogger.logger = logger
}

// defaultLogger safely retrieves the package default logger. May be nil.
func defaultLogger() *logiface.Logger[logiface.Event] {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	return globalLogger.logger
}

// event decorates a log builder with the instance's identifying fields and
// current status. Safe on a nil builder.
func (d *Deferred) event(b *logiface.Builder[logiface.Event]) *logiface.Builder[logiface.Event] {
	if d.name != "" {
		b = b.Str("deferred", d.name)
	}
	return b.Stringer("status", d.status)
}

// logResolved emits a debug event after an external resolution call.
func (d *Deferred) logResolved() {
	d.event(d.logger.Debug()).Log("resolved")
}

// logHandler emits a trace event after each handler invocation during a
// drain, capturing the status the handler's outcome selected.
func (d *Deferred) logHandler() {
	d.event(d.logger.Trace()).Log("handler executed")
}

// logUnhandled emits an error event when a failure is surfaced to the
// caller because no handler pairs were pending.
func (d *Deferred) logUnhandled(err *UnhandledFailureError) {
	d.event(d.logger.Err()).Err(err).Log("unhandled failure")
}
