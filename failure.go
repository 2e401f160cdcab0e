package deferred

import (
	"fmt"
)

// Failure wraps an arbitrary error payload so it can travel through a chain
// that otherwise carries ordinary results. It is the payload of a failed
// [Deferred] within the chaining contract: error handlers receive the
// Failure and retrieve the original payload via [Failure.Value].
//
// A Failure is immutable after construction. It implements the error
// interface, reporting a label derived from the wrapped value's type and
// text, and unwraps to the wrapped value when that value is itself an
// error, enabling [errors.Is] and [errors.As] matching through the chain.
//
// Example:
//
//	f := deferred.NewFailure(io.EOF)
//
//	f.Value() // io.EOF
//	errors.Is(f, io.EOF) // true
type Failure struct {
	value Result
	label string
}

var _ error = (*Failure)(nil)

// NewFailure wraps value verbatim. It does not inspect value: wrapping a
// value that is already a *Failure produces a Failure of a Failure. The
// resolution and drain paths perform the wrap-unless-already-one check
// before calling this, so double wrapping only happens when requested
// explicitly.
func NewFailure(value Result) *Failure {
	return &Failure{
		value: value,
		label: fmt.Sprintf("%T: %v", value, value),
	}
}

// Value returns the originally wrapped payload.
func (f *Failure) Value() Result {
	return f.value
}

// Error implements the error interface, returning the human-readable label
// derived from the wrapped value's type and text.
func (f *Failure) Error() string {
	return f.label
}

// Unwrap returns the wrapped value if it is an error, enabling use with
// [errors.Is] and [errors.As] through the cause chain.
//
// If the wrapped value is not an error (e.g., a string or other type),
// returns nil.
func (f *Failure) Unwrap() error {
	if err, ok := f.value.(error); ok {
		return err
	}
	return nil
}
