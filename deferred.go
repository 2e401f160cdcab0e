package deferred

import (
	"github.com/joeycumines/logiface"
)

// Result represents a value carried through a chain.
// For succeeded Deferreds, this holds the success value.
// For failed Deferreds, this holds a [*Failure] (or, on the multi-argument
// compatibility path of [Deferred.Fail], a raw payload slice).
type Result = any

// Callback is the handler signature shared by both sides of a pair, so a
// single function can serve the success branch, the error branch, or both
// (see [Deferred.AddBoth]).
//
// The return value is a tagged outcome: a nil error means the chain
// continues succeeded with the returned value; a non-nil error means the
// chain continues failed with that error as the payload (wrapped into a
// [*Failure] unless it already is one). Returning a non-nil error discards
// the returned value. Panicking inside a handler is equivalent to returning
// the panic value as an error, with non-Failure panic values carried inside
// [PanicError].
//
// On the success branch the argument is the current success value. On the
// error branch it is the current [*Failure] (or the raw payload outside the
// chaining contract).
type Callback func(value Result) (Result, error)

// Resolvable is the capability surface shared by [Deferred] and [List]: a
// settleable result with an attachable handler chain. Code that only needs
// to register handlers or to resolve an outcome can accept a Resolvable
// instead of a concrete type.
type Resolvable interface {
	// Status returns the current lifecycle status.
	Status() Status
	// Result returns the current payload; valid once settled.
	Result() Result
	// Settled reports whether the status is Succeeded or Failed.
	Settled() bool
	// Attach registers a success/error handler pair.
	Attach(onSuccess, onError Callback)
	// AddCallback registers a success-only handler.
	AddCallback(onSuccess Callback)
	// AddErrback registers an error-only handler.
	AddErrback(onError Callback)
	// AddBoth registers one handler for both branches.
	AddBoth(both Callback)
	// Succeed resolves to Succeeded with the given value.
	Succeed(value Result) error
	// Fail resolves to Failed with the given reason.
	Fail(reason Result, extra ...Result) error
}

// pair holds one chain link. A nil side is the identity pass-through: the
// branch forwards the current result to the next pair unchanged.
type pair struct {
	onSuccess Callback
	onError   Callback
}

// Deferred is the resolvable, chainable result placeholder: a value that
// may not yet be known, onto which chains of success/error handlers are
// registered, each transforming the result or the error for the next link.
//
// The Deferred instance itself is the chain. Registration methods return
// nothing; pipelines are built by repeated calls on the same instance:
//
//	d := deferred.New()
//	d.AddCallback(parse)
//	d.AddErrback(recoverDefault)
//	d.AddCallback(store)
//
// Resolution ([Deferred.Succeed] or [Deferred.Fail]) synchronously drains
// the queued pairs in registration order. Each handler's outcome selects
// the branch the next pair takes: a failure visits every remaining pair's
// error branch (skipping success branches) until an error handler returns
// a success outcome, after which subsequent pairs take the success branch
// again. Pairs attached after resolution execute immediately against the
// current result under the same rules, so a chain built entirely after
// resolution behaves as if built before it.
//
// A Deferred is not safe for concurrent use. All mutation is expected to
// happen on the single goroutine that drives the owning event loop; see
// the package documentation for the threading contract and for the one
// sanctioned way to cross goroutines ([Go]).
type Deferred struct {
	logger  *logiface.Logger[logiface.Event]
	result  Result
	pending []pair
	name    string
	status  Status
	// draining marks an in-progress drain pass so re-entrant attachment
	// from inside a handler appends to the live queue instead of starting
	// a nested drain.
	draining bool
}

var (
	_ Resolvable = (*Deferred)(nil)
	_ Resolvable = (*List)(nil)
)

// ============================================================================
// Construction
// ============================================================================

// New creates an unresolved Deferred.
func New(opts ...Option) *Deferred {
	cfg := resolveOptions(opts)
	return &Deferred{
		logger: cfg.logger,
		name:   cfg.name,
		status: Unresolved,
	}
}

// NewSucceeded creates a Deferred already resolved to the given success
// value. Handlers attached afterwards execute immediately.
func NewSucceeded(value Result, opts ...Option) *Deferred {
	d := New(opts...)
	d.settle(Succeeded, value)
	return d
}

// NewFailed creates a Deferred already resolved to the given failure.
// The reason is wrapped into a [*Failure] unless it already is one.
//
// Unlike [Deferred.Fail], NewFailed does not surface an unhandled-failure
// error: a settled-failed Deferred with no handlers is a legal state, and
// an error handler attached later receives the failure.
func NewFailed(reason Result, opts ...Option) *Deferred {
	d := New(opts...)
	d.settle(Failed, toFailure(reason))
	return d
}

// ============================================================================
// Accessors
// ============================================================================

// Status returns the current lifecycle status.
func (d *Deferred) Status() Status {
	return d.status
}

// Result returns the current payload. It is meaningful once the Deferred
// has settled: the success value when Succeeded, the [*Failure] when
// Failed (a raw payload on the multi-argument compatibility path). Late
// handler attachment can still transform it.
func (d *Deferred) Result() Result {
	return d.result
}

// Settled reports whether the Deferred has resolved to Succeeded or Failed.
func (d *Deferred) Settled() bool {
	return d.status.Settled()
}

// ============================================================================
// Registration
// ============================================================================

// Attach registers an explicit (success handler, error handler) pair. A nil
// side is the identity pass-through for its branch.
//
// While the Deferred is unresolved the pair is queued with no side effect.
// Once settled, the matching handler executes immediately and synchronously
// against the current result, applying the same outcome rules as draining,
// so late attachment is indistinguishable from early attachment. A pair
// attached from inside a handler during a drain joins the same drain pass
// in FIFO order.
func (d *Deferred) Attach(onSuccess, onError Callback) {
	d.pending = append(d.pending, pair{onSuccess, onError})
	if d.status != Unresolved && !d.draining {
		d.drain()
	}
}

// AddCallback registers a success-only handler; failures pass through to
// the next pair unchanged.
func (d *Deferred) AddCallback(onSuccess Callback) {
	d.Attach(onSuccess, nil)
}

// AddErrback registers an error-only handler; success values pass through
// to the next pair unchanged.
func (d *Deferred) AddErrback(onError Callback) {
	d.Attach(nil, onError)
}

// AddBoth registers a single handler invoked on whichever branch is taken.
func (d *Deferred) AddBoth(both Callback) {
	d.Attach(both, both)
}

// ============================================================================
// Resolution
// ============================================================================

// Succeed resolves the Deferred to Succeeded with the given value and
// synchronously drains the pending pairs.
//
// Returns [*AlreadySettledError] if the Deferred has already settled.
func (d *Deferred) Succeed(value Result) error {
	if d.status != Unresolved {
		return &AlreadySettledError{Status: d.status}
	}
	d.settle(Succeeded, value)
	return nil
}

// Fail resolves the Deferred to Failed and synchronously drains the pending
// pairs.
//
// The single-argument form wraps reason into a [*Failure] unless it already
// is one. If no handler pairs are pending, the failure is not stored:
// Fail returns it to the caller as [*UnhandledFailureError] and the
// Deferred stays unresolved, so a forgotten error handler surfaces at the
// point of failure instead of vanishing. Use [NewFailed] to construct a
// failure that waits for late handlers.
//
// Calling Fail with extra values resolves with the raw
// []Result{reason, extra...} payload: no Failure wrapping and no
// unhandled-failure check. This mirrors the host loop's native
// multi-argument resolution and sits outside the chaining contract;
// error handlers receive the raw slice.
//
// Returns [*AlreadySettledError] if the Deferred has already settled.
func (d *Deferred) Fail(reason Result, extra ...Result) error {
	if d.status != Unresolved {
		return &AlreadySettledError{Status: d.status}
	}
	if len(extra) > 0 {
		d.settle(Failed, append([]Result{reason}, extra...))
		return nil
	}
	failure := toFailure(reason)
	if len(d.pending) == 0 {
		err := &UnhandledFailureError{Failure: failure}
		d.logUnhandled(err)
		return err
	}
	d.settle(Failed, failure)
	return nil
}

// ============================================================================
// Drain machinery
// ============================================================================

// settle records a terminal outcome directly and drains. It bypasses the
// unhandled-failure check of Fail, for producers that know consumers may
// attach late: the pre-settled constructors and the thread bridge. No-op
// if already settled.
func (d *Deferred) settle(status Status, result Result) {
	if d.status != Unresolved {
		return
	}
	d.status = status
	d.result = result
	d.logResolved()
	d.drain()
}

// drain executes pending pairs in FIFO order until none remain. For each
// pair the current status selects the branch; the handler's outcome becomes
// the status and result seen by the next pair. Pairs appended while
// draining (late attachment from inside a handler) are picked up by the
// same pass.
func (d *Deferred) drain() {
	d.draining = true
	defer func() { d.draining = false }()
	for len(d.pending) > 0 {
		p := d.pending[0]
		d.pending = d.pending[1:]
		var h Callback
		if d.status == Succeeded {
			h = p.onSuccess
		} else {
			h = p.onError
		}
		if h == nil {
			continue // identity pass-through
		}
		d.runHandler(h)
		d.logHandler()
	}
	d.pending = nil
}

// runHandler applies the pair-execution rule for one handler invocation:
// a nil error outcome moves the chain to Succeeded with the returned value,
// a non-nil error moves it to Failed with the error as payload, wrapped
// into a [*Failure] unless it already is one.
func (d *Deferred) runHandler(h Callback) {
	value, err := d.invoke(h)
	if err != nil {
		d.status = Failed
		d.result = toFailure(err)
	} else {
		d.status = Succeeded
		d.result = value
	}
}

// invoke calls h with the current result, converting a panic into the error
// return. The recover scope covers exactly one handler invocation, never
// the drain loop, so a panicking handler cannot skip later pairs.
func (d *Deferred) invoke(h Callback) (_ Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(*Failure); ok {
				err = f
			} else {
				err = PanicError{Value: r}
			}
		}
	}()
	return h(d.result)
}

// toFailure wraps v into a [*Failure] unless it already is one.
func toFailure(v Result) *Failure {
	if f, ok := v.(*Failure); ok {
		return f
	}
	return NewFailure(v)
}

// ============================================================================
// Unsupported helpers
// ============================================================================

// MaybeDeferred would run fn immediately and coerce its outcome into an
// already-settled Deferred. It is preserved as explicitly unsupported and
// always returns [ErrNotImplemented].
func MaybeDeferred(fn func() (Result, error)) (*Deferred, error) {
	return nil, ErrNotImplemented
}

// ChainDeferred would register inner onto outer so that inner settles with
// outer's outcome. It is preserved as explicitly unsupported and always
// returns [ErrNotImplemented].
func ChainDeferred(outer, inner *Deferred) error {
	return ErrNotImplemented
}
