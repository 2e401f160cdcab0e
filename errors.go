// Package deferred provides error types for resolution misuse with cause
// chain support.
package deferred

import (
	"errors"
)

var (
	// ErrNotImplemented is returned by helpers that are preserved as
	// explicitly unsupported ([MaybeDeferred], [ChainDeferred]). Calling
	// them always fails fast with this sentinel rather than silently
	// doing nothing.
	ErrNotImplemented = errors.New("deferred: not implemented")
)

// Unwrap returns the panic value when it is an error, so a handler that
// panicked with a sentinel still matches via [errors.Is] and [errors.As]
// through the cause chain. Non-error panic values yield nil.
//
// Example:
//
//	// A handler panicked with io.EOF somewhere in the chain
//	var pe PanicError
//	if errors.As(failure, &pe) {
//	    _ = errors.Is(pe, io.EOF) // true
//	}
func (e PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// AlreadySettledError is returned by [Deferred.Succeed] and [Deferred.Fail]
// when the Deferred has already settled. Status records the status the
// Deferred held at the time of the rejected call.
//
// Resolving twice is a producer bug; surfacing it at the call site keeps it
// from masquerading as a lost or reordered result.
type AlreadySettledError struct {
	Status Status
}

// Error implements the error interface.
func (e *AlreadySettledError) Error() string {
	return "deferred: already settled: " + e.Status.String()
}

// Is implements custom error matching for AlreadySettledError.
// Returns true if target is an AlreadySettledError, regardless of the
// recorded status.
func (e *AlreadySettledError) Is(target error) bool {
	var settledTarget *AlreadySettledError
	return errors.As(target, &settledTarget)
}

// UnhandledFailureError is returned by the single-argument form of
// [Deferred.Fail] when no handler pairs are pending: the failure is
// surfaced synchronously to the caller instead of being stored invisibly,
// and the Deferred remains unresolved.
//
// Failure carries the wrapped payload that would otherwise have been lost.
type UnhandledFailureError struct {
	Failure *Failure
}

// Error implements the error interface.
func (e *UnhandledFailureError) Error() string {
	if e.Failure == nil {
		return "deferred: unhandled failure"
	}
	return "deferred: unhandled failure: " + e.Failure.Error()
}

// Unwrap returns the unhandled [Failure] for use with [errors.Is] and
// [errors.As].
func (e *UnhandledFailureError) Unwrap() error {
	if e.Failure == nil {
		return nil
	}
	return e.Failure
}

// Is implements custom error matching for UnhandledFailureError.
// Returns true if target is an UnhandledFailureError (regardless of
// contents).
func (e *UnhandledFailureError) Is(target error) bool {
	var unhandledTarget *UnhandledFailureError
	return errors.As(target, &unhandledTarget)
}
