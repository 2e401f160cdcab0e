package deferred

// Scheduler is the narrow contract this package expects of the host event
// loop: the ability to run a function on the loop goroutine. [Go] uses it
// to marshal a worker goroutine's outcome back to the single goroutine
// that owns the Deferred; callers may equally use it to schedule work
// "on the next loop iteration".
//
// Submit must be safe to call from any goroutine. It returns an error when
// the loop can no longer accept work (e.g., it has shut down); fn is not
// run in that case.
//
// The chain core itself never references a Scheduler. Only the thread
// bridge consumes one, keeping the Deferred machinery loop-agnostic.
type Scheduler interface {
	Submit(fn func()) error
}

// SchedulerFunc adapts a function to the [Scheduler] interface.
type SchedulerFunc func(fn func()) error

// Submit implements [Scheduler].
func (f SchedulerFunc) Submit(fn func()) error {
	return f(fn)
}
