package deferred

// Status represents the lifecycle status of a [Deferred].
// A Deferred starts [Unresolved] and transitions to either [Succeeded] or
// [Failed] when resolved. Once settled it never returns to [Unresolved],
// though the status may toggle between [Succeeded] and [Failed] while a
// drain pass executes the chain (each handler's outcome selects the branch
// taken by the next pair).
type Status int

const (
	// Unresolved indicates the result is not yet known.
	// Handler pairs attached in this status are queued, not executed.
	Unresolved Status = iota

	// Succeeded indicates the Deferred holds a success value.
	Succeeded

	// Failed indicates the Deferred holds a failure, normally a [*Failure]
	// (the multi-argument compatibility path of [Deferred.Fail] stores a
	// raw payload instead).
	Failed
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case Unresolved:
		return "Unresolved"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Settled reports whether the status is [Succeeded] or [Failed].
func (s Status) Settled() bool {
	return s == Succeeded || s == Failed
}
