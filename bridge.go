package deferred

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrGoexit is used to fail the Deferred when a bridged goroutine
	// exits via runtime.Goexit().
	ErrGoexit = errors.New("deferred: goroutine exited via runtime.Goexit")
)

// PanicError wraps a panic value recovered from a chain handler or from a
// bridged goroutine.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("deferred: panicked: %v", e.Value)
}

// Go executes fn on a new goroutine and returns an unresolved Deferred
// that settles with fn's outcome on the loop goroutine.
//
// This is the thread bridge: the one sanctioned way to combine blocking
// work with a Deferred. The blocking operation runs off-thread; only the
// opaque outcome crosses back, handed to the loop goroutine through
// s.Submit, so the Deferred itself is never touched from two goroutines.
// s must be non-nil (Go panics otherwise).
//
// It ensures:
//   - Goexit handling: if fn exits via runtime.Goexit(), the Deferred fails
//     with [ErrGoexit] rather than hanging indefinitely.
//   - Context propagation: ctx is passed to fn; a ctx already cancelled
//     before fn starts fails the Deferred with ctx.Err().
//   - Panic capture: a panicking fn fails the Deferred with a [*Failure]
//     carrying [PanicError] (or the panic value itself when it is already
//     a *Failure).
//   - Fallback: direct settlement if Submit reports the loop unavailable,
//     so the outcome is never lost.
//
// Settlement uses the internal path that allows a failed result with no
// pending handlers: the consumer may attach error handlers after the
// outcome lands, and late attachment delivers it.
func Go(ctx context.Context, s Scheduler, fn func(ctx context.Context) (Result, error), opts ...Option) *Deferred {
	if s == nil {
		panic("deferred: nil Scheduler")
	}

	d := New(opts...)

	go func() {
		// Completion flag to distinguish normal return from Goexit
		completed := false

		// Respect context cancellation
		select {
		case <-ctx.Done():
			completed = true
			d.settleVia(s, Failed, toFailure(ctx.Err()))
			return
		default:
		}

		defer func() {
			r := recover()
			if r != nil {
				// Panic detected
				var reason *Failure
				if f, ok := r.(*Failure); ok {
					reason = f
				} else {
					reason = NewFailure(PanicError{Value: r})
				}
				d.settleVia(s, Failed, reason)
			} else if !completed {
				// fn ended but not via normal return -> Goexit
				d.settleVia(s, Failed, toFailure(ErrGoexit))
			}
		}()

		res, err := fn(ctx)

		if err != nil {
			d.settleVia(s, Failed, toFailure(err))
		} else {
			d.settleVia(s, Succeeded, res)
		}
		completed = true
	}()

	return d
}

// settleVia marshals a settlement onto the loop goroutine via the
// scheduler, settling directly if the scheduler refuses the work.
func (d *Deferred) settleVia(s Scheduler, status Status, result Result) {
	if err := s.Submit(func() {
		d.settle(status, result)
	}); err != nil {
		d.settle(status, result) // Fallback: direct settlement
	}
}
