package deferred

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loopScheduler is a minimal stand-in for an event loop: Submit queues
// work, and the test goroutine plays the loop goroutine by pumping it.
type loopScheduler struct {
	work chan func()
}

func newLoopScheduler() *loopScheduler {
	return &loopScheduler{work: make(chan func(), 8)}
}

func (s *loopScheduler) Submit(fn func()) error {
	s.work <- fn
	return nil
}

// pump runs the next submitted function on the calling goroutine, failing
// the test if none arrives in time.
func (s *loopScheduler) pump(t *testing.T) {
	t.Helper()
	select {
	case fn := <-s.work:
		fn()
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for submitted work")
	}
}

// TestGo_Success verifies the round trip: fn runs off-thread, the outcome
// is marshalled through the scheduler, and handlers run on the pumping
// goroutine.
func TestGo_Success(t *testing.T) {
	s := newLoopScheduler()

	d := Go(context.Background(), s, func(ctx context.Context) (Result, error) {
		return "from the worker", nil
	})

	require.Equal(t, Unresolved, d.Status(), "Go must return before settlement")

	var seen Result
	d.AddCallback(func(v Result) (Result, error) {
		seen = v
		return v, nil
	})

	s.pump(t)

	assert.Equal(t, Succeeded, d.Status())
	assert.Equal(t, "from the worker", seen)
}

// TestGo_Error verifies a returned error settles the Deferred failed, with
// the cause wrapped in a Failure, and that a late errback receives it.
func TestGo_Error(t *testing.T) {
	s := newLoopScheduler()
	cause := errors.New("worker failed")

	d := Go(context.Background(), s, func(ctx context.Context) (Result, error) {
		return nil, cause
	})

	s.pump(t)

	// Settled failed with no handlers: legal for the bridge, and the
	// failure waits for late attachment.
	require.Equal(t, Failed, d.Status())

	var seen Result
	d.AddErrback(func(v Result) (Result, error) {
		seen = v
		return "handled", nil
	})

	f, ok := seen.(*Failure)
	require.True(t, ok, "errback should see a *Failure, got %T", seen)
	assert.Equal(t, cause, f.Value())
	assert.Equal(t, "handled", d.Result())
}

// TestGo_Panic verifies a panicking fn settles the Deferred failed with
// the panic value wrapped in PanicError.
func TestGo_Panic(t *testing.T) {
	s := newLoopScheduler()

	d := Go(context.Background(), s, func(ctx context.Context) (Result, error) {
		panic("worker panic")
	})

	s.pump(t)

	require.Equal(t, Failed, d.Status())
	f, ok := d.Result().(*Failure)
	require.True(t, ok)

	pe, ok := f.Value().(PanicError)
	require.True(t, ok, "payload = %T, want PanicError", f.Value())
	assert.Equal(t, "worker panic", pe.Value)
}

// TestGo_PanicWithFailure verifies a fn panicking with a *Failure settles
// with that exact Failure, no extra wrapping.
func TestGo_PanicWithFailure(t *testing.T) {
	s := newLoopScheduler()
	f := NewFailure("already wrapped")

	d := Go(context.Background(), s, func(ctx context.Context) (Result, error) {
		panic(f)
	})

	s.pump(t)

	require.Equal(t, Failed, d.Status())
	assert.Same(t, f, d.Result())
}

// TestGo_ContextCancelled verifies a context cancelled before fn starts
// fails the Deferred with the context error, without running fn.
func TestGo_ContextCancelled(t *testing.T) {
	s := newLoopScheduler()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := make(chan struct{})
	d := Go(ctx, s, func(ctx context.Context) (Result, error) {
		close(ran)
		return nil, nil
	})

	s.pump(t)

	require.Equal(t, Failed, d.Status())
	f := d.Result().(*Failure)
	assert.ErrorIs(t, f, context.Canceled)

	select {
	case <-ran:
		t.Fatal("fn must not run with a cancelled context")
	default:
	}
}

// TestGo_Goexit verifies a fn exiting via runtime.Goexit fails the
// Deferred with ErrGoexit instead of leaving it unresolved forever.
func TestGo_Goexit(t *testing.T) {
	s := newLoopScheduler()

	d := Go(context.Background(), s, func(ctx context.Context) (Result, error) {
		runtime.Goexit()
		return "unreachable", nil
	})

	s.pump(t)

	require.Equal(t, Failed, d.Status())
	f := d.Result().(*Failure)
	assert.ErrorIs(t, f, ErrGoexit)
}

// TestGo_SubmitFallback verifies the outcome is not lost when the
// scheduler refuses the work: settlement happens directly on the worker.
func TestGo_SubmitFallback(t *testing.T) {
	refusing := SchedulerFunc(func(fn func()) error {
		return errors.New("loop closed")
	})

	release := make(chan struct{})
	done := make(chan struct{})

	d := Go(context.Background(), refusing, func(ctx context.Context) (Result, error) {
		<-release
		return 42, nil
	})

	// Attached before the worker can settle; the callback runs on the
	// worker goroutine via the direct-settlement fallback, so assertions
	// use only the value it captured.
	var got Result
	d.AddCallback(func(v Result) (Result, error) {
		got = v
		close(done)
		return v, nil
	})

	close(release)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for fallback settlement")
	}

	assert.Equal(t, 42, got)
}

// TestGo_NilSchedulerPanics verifies the nil-scheduler misuse is loud.
func TestGo_NilSchedulerPanics(t *testing.T) {
	assert.Panics(t, func() {
		Go(context.Background(), nil, func(ctx context.Context) (Result, error) {
			return nil, nil
		})
	})
}

// TestGo_Options verifies options reach the bridged Deferred.
func TestGo_Options(t *testing.T) {
	s := newLoopScheduler()

	d := Go(context.Background(), s, func(ctx context.Context) (Result, error) {
		return nil, nil
	}, WithName("bridged"))

	require.Equal(t, "bridged", d.name)
	s.pump(t)
}

// TestSchedulerFunc verifies the adapter forwards to the wrapped function.
func TestSchedulerFunc(t *testing.T) {
	var calls int
	s := SchedulerFunc(func(fn func()) error {
		calls++
		fn()
		return nil
	})

	ran := false
	require.NoError(t, s.Submit(func() { ran = true }))
	assert.True(t, ran)
	assert.Equal(t, 1, calls)

	boom := errors.New("refused")
	failing := SchedulerFunc(func(fn func()) error { return boom })
	assert.ErrorIs(t, failing.Submit(func() {}), boom)
}
