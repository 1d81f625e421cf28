package browse

import (
	"context"
	"sync"
)

// Tasks tracks the in-flight page fetch so a newer request can cancel it.
// Fetches run on their own goroutines, so the tracker is mutex-guarded.
type Tasks struct {
	mu               sync.Mutex
	seq              uint64
	cancel           context.CancelFunc
	cancelSuperseded bool
}

// NewTasks creates a tracker. With cancelSuperseded false, Start never cancels
// anything and only hands out cancellable contexts.
func NewTasks(cancelSuperseded bool) *Tasks {
	return &Tasks{cancelSuperseded: cancelSuperseded}
}

// Start returns the context for fetch seq and a release func the fetch must
// call when done. Starting a newer seq cancels the older task. Starting a seq
// older than the current one yields an already-canceled context, since
// commands can begin out of order.
func (t *Tasks) Start(parent context.Context, seq uint64) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	if !t.cancelSuperseded {
		return ctx, cancel
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if seq < t.seq {
		cancel()
		return ctx, cancel
	}
	if t.cancel != nil {
		t.cancel()
	}
	t.seq = seq
	t.cancel = cancel

	release := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.seq == seq {
			t.cancel = nil
		}
		cancel()
	}
	return ctx, release
}

// CancelAll aborts the in-flight task, if any.
func (t *Tasks) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
