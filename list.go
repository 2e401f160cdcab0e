package deferred

// Outcome records one child's settlement in a [List]'s results: OK reports
// whether the child succeeded, and Value holds the child's success value or
// the failure's originally wrapped payload.
type Outcome struct {
	Value Result
	OK    bool
}

// List aggregates a fixed, ordered set of child Deferreds into one
// aggregate Deferred that succeeds once every child has settled. The List
// embeds the aggregate, so handlers are attached to the List itself; the
// aggregate's success value is the []Outcome, one slot per child,
// index-aligned with the children.
//
// Behavior:
//   - If children is empty, the aggregate succeeds immediately with an
//     empty results slice
//   - The aggregate always succeeds; its error path never fires. Child
//     failures are captured as data ({OK: false, Value: payload}), not
//     propagated. Callers needing fail-fast semantics must build that from
//     the raw children.
//   - Results are ordered by child index, not settlement order
//   - Each child's own outcome passes through the List's bookkeeping
//     unchanged, so downstream handlers on the child still observe it
//
// Example:
//
//	a, b := deferred.New(), deferred.New()
//	l := deferred.NewList([]*deferred.Deferred{a, b})
//	l.AddCallback(func(v deferred.Result) (deferred.Result, error) {
//	    for _, o := range v.([]deferred.Outcome) {
//	        // o.OK, o.Value
//	    }
//	    return v, nil
//	})
//	_ = b.Fail(errors.New("boom")) // recorded, list still waits for a
//	_ = a.Succeed(1)               // list succeeds with both outcomes
type List struct {
	*Deferred
	children  []*Deferred
	results   []Outcome
	remaining int
}

// NewList creates a List over the given children. The child set is fixed
// at construction; children that are already settled are recorded
// immediately.
func NewList(children []*Deferred, opts ...Option) *List {
	l := &List{
		Deferred:  New(opts...),
		children:  children,
		results:   make([]Outcome, len(children)),
		remaining: len(children),
	}
	if len(children) == 0 {
		l.Deferred.settle(Succeeded, l.results)
		return l
	}
	for i, child := range children {
		idx := i // Capture index
		child.Attach(
			func(v Result) (Result, error) {
				l.results[idx] = Outcome{OK: true, Value: v}
				return v, nil
			},
			func(v Result) (Result, error) {
				l.results[idx] = Outcome{OK: false, Value: payloadOf(v)}
				return nil, forward(v)
			},
		)
		child.AddBoth(l.childSettled)
	}
	return l
}

// Results returns the recorded outcomes. Slots for unsettled children are
// zero until the corresponding child settles; once the aggregate succeeds,
// the same slice is its success value.
func (l *List) Results() []Outcome {
	return l.results
}

// childSettled runs on both branches after the recording pair, decrements
// the outstanding count, and fires the aggregate exactly once when it
// reaches zero. The child's outcome passes through unchanged.
func (l *List) childSettled(v Result) (Result, error) {
	l.remaining--
	if l.remaining == 0 {
		l.Deferred.settle(Succeeded, l.results)
	}
	if f, ok := v.(*Failure); ok {
		return nil, f
	}
	return v, nil
}

// payloadOf extracts the original payload from an error-branch value.
func payloadOf(v Result) Result {
	if f, ok := v.(*Failure); ok {
		return f.Value()
	}
	return v
}

// forward re-raises an error-branch value so the branch stays failed for
// the child's own downstream handlers. Values outside the chaining
// contract (raw multi-argument payloads) are wrapped at this boundary.
func forward(v Result) error {
	if err, ok := v.(error); ok {
		return err
	}
	return NewFailure(v)
}
