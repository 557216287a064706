package client

import (
	"context"
	"sync/atomic"
)

// State is an invocation's lifecycle position. Created and Dispatched are
// transient; the rest are terminal.
type State int32

const (
	StateCreated State = iota
	StateDispatched
	StateSucceeded
	StateFailed
	StateCancelled
)

// Terminal reports whether no further transition can occur.
func (s State) Terminal() bool {
	return s >= StateSucceeded
}

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateDispatched:
		return "dispatched"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// ResultHandler receives an invocation's outcome: exactly one of result or
// err is set, and it is called exactly once, on the dispatch goroutine.
type ResultHandler func(result any, err error)

// Handle is the caller's grip on one in-flight invocation: observe its
// state, wait for the outcome, or cancel it. Cancel is idempotent and inert
// once the outcome has been determined.
type Handle struct {
	state     int32 // State, mutated only via CAS
	cancelled int32
	cancel    context.CancelFunc
	handler   ResultHandler
	result    any
	err       error
	done      chan struct{}
}

func newHandle(handler ResultHandler) *Handle {
	return &Handle{
		handler: handler,
		cancel:  func() {},
		done:    make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	return State(atomic.LoadInt32(&h.state))
}

// Cancel aborts the invocation if its outcome is not yet determined.
// Calling it again, or after completion, is a no-op.
func (h *Handle) Cancel() {
	if !atomic.CompareAndSwapInt32(&h.cancelled, 0, 1) {
		return
	}
	h.cancel()
}

// Done returns a channel closed once the outcome has been delivered.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Result blocks until the outcome is delivered and returns it.
func (h *Handle) Result() (any, error) {
	<-h.done
	return h.result, h.err
}

// complete performs the terminal transition. First writer wins: exactly one
// caller ever gets true, and only that caller may deliver.
func (h *Handle) complete(target State, result any, err error) bool {
	for {
		s := atomic.LoadInt32(&h.state)
		if State(s).Terminal() {
			return false
		}
		if atomic.CompareAndSwapInt32(&h.state, s, int32(target)) {
			h.result = result
			h.err = err
			return true
		}
	}
}

// deliver invokes the handler and releases waiters. Only the complete()
// winner may call this.
func (h *Handle) deliver() {
	if h.handler != nil {
		h.handler(h.result, h.err)
	}
	close(h.done)
}

// markDispatched records the transition out of Created.
func (h *Handle) markDispatched() {
	atomic.CompareAndSwapInt32(&h.state, int32(StateCreated), int32(StateDispatched))
}
