// Package deferred provides a deferred-result abstraction for
// single-threaded, callback-driven event loops: a value that may not yet
// be known, onto which chains of success/error handlers are registered,
// each transforming the result or the error for the next link.
//
// # Architecture
//
// The package is built around the [Deferred] state machine, which holds a
// status (Unresolved, Succeeded, or Failed), at most one pending result,
// and a FIFO queue of callback/errback pairs. Resolution via
// [Deferred.Succeed] or [Deferred.Fail] synchronously drains the queue;
// each pair's outcome feeds the next, with the status toggling between
// succeeded and failed as handlers fail or recover. [Failure] wraps
// arbitrary error payloads so they can travel through the chain, and
// [List] aggregates a fixed set of Deferreds into one that succeeds with
// index-ordered [Outcome] records once all children have settled.
//
// The event loop itself is not part of this package. The one integration
// point is the [Scheduler] interface, consumed only by the thread bridge
// [Go], which runs a blocking function on a worker goroutine and marshals
// its outcome back to the loop goroutine as a Deferred resolution.
//
// # Thread Safety
//
// The chain core is deliberately lock-free and single-threaded: status,
// result, and the pending queue are mutated only on the one goroutine that
// drives the owning event loop, and draining runs to completion before
// control returns to it. Calling Deferred methods from multiple goroutines
// is a data race.
//
// The sanctioned way to cross goroutines is [Go]: the blocking operation
// executes off-thread and only its opaque outcome crosses back, handed to
// the loop goroutine through [Scheduler.Submit]. [SetDefaultLogger] is
// safe for concurrent use.
//
// # Execution Model
//
// Handlers attached to the same Deferred fire in registration order,
// always. A failure takes every pair's error branch, skipping success
// branches, until an error handler returns a success outcome; subsequent
// pairs then take the success branch again. Pairs attached after
// resolution execute immediately against the current result under the
// same rules, and pairs attached from inside a handler join the same
// drain pass in FIFO order.
//
// There is no cancellation and no timeout at this layer: a Deferred that
// is never resolved stays unresolved forever, along with anything its
// handlers capture. Producers own resolution.
//
// # Usage
//
//	d := deferred.New()
//
//	d.AddCallback(func(v deferred.Result) (deferred.Result, error) {
//	    n, ok := v.(int)
//	    if !ok {
//	        return nil, fmt.Errorf("want int, got %T", v)
//	    }
//	    return n * 2, nil
//	})
//	d.AddErrback(func(v deferred.Result) (deferred.Result, error) {
//	    log.Printf("recovered: %v", v.(*deferred.Failure).Value())
//	    return 0, nil
//	})
//
//	if err := d.Succeed(21); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(d.Result()) // 42
//
// # Error Types
//
// The package surfaces resolution misuse and chain failures through:
//   - [Failure]: the in-chain wrapper for arbitrary error payloads
//   - [UnhandledFailureError]: returned by [Deferred.Fail] when no handler
//     pairs are pending, so a forgotten errback surfaces at the point of
//     failure instead of vanishing
//   - [AlreadySettledError]: returned on double resolution
//   - [PanicError]: wraps panics recovered from handlers and from [Go]
//   - [ErrNotImplemented]: returned by the explicitly unsupported helpers
//
// All error types implement the standard [error] interface and, where they
// carry a cause, [errors.Unwrap] compatibility.
package deferred
