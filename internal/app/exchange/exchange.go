// Package exchange hands point-in-time snapshots from the simulation loop to
// any number of concurrent readers.
//
// Readers register on the current round and raise a coalescing intent
// signal. The simulation polls that signal without blocking and, when it is
// set, publishes one snapshot that closes the round: every reader registered
// on it receives the same immutable value, later readers wait for the next
// round. A reader waits at most Timeout; a stalled or absent engine yields
// "no data", never a hang.
package exchange

import (
	"context"
	"errors"
	"sync"
	"time"

	"skytraffic/internal/domain/airspace"
)

const DefaultTimeout = 500 * time.Millisecond

var ErrUnavailable = errors.New("snapshot unavailable")

type Config struct {
	Timeout time.Duration
}

type round struct {
	done     chan struct{}
	snapshot airspace.Snapshot
}

func newRound() *round {
	return &round{done: make(chan struct{})}
}

type Exchange struct {
	timeout time.Duration
	intent  chan struct{}

	mu      sync.Mutex
	current *round
}

func New(cfg Config) *Exchange {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Exchange{
		timeout: cfg.Timeout,
		intent:  make(chan struct{}, 1),
		current: newRound(),
	}
}

func (e *Exchange) Timeout() time.Duration {
	return e.timeout
}

// Request signals that a snapshot is wanted and waits for the next
// publication. ok is false when nothing arrived within the timeout or ctx
// ended first.
func (e *Exchange) Request(ctx context.Context) (airspace.Snapshot, bool) {
	e.mu.Lock()
	r := e.current
	e.mu.Unlock()

	select {
	case e.intent <- struct{}{}:
	default:
		// already signalled; the pending publication covers this caller too
	}

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case <-r.done:
		return r.snapshot, true
	case <-timer.C:
		return airspace.Snapshot{}, false
	case <-ctx.Done():
		return airspace.Snapshot{}, false
	}
}

// Fetch is Request in error form.
func (e *Exchange) Fetch(ctx context.Context) (airspace.Snapshot, error) {
	snap, ok := e.Request(ctx)
	if !ok {
		return airspace.Snapshot{}, ErrUnavailable
	}
	return snap, nil
}

// Pending reports and clears the intent signal. It never blocks and must only
// be called from the publishing goroutine.
func (e *Exchange) Pending() bool {
	select {
	case <-e.intent:
		return true
	default:
		return false
	}
}

// Wanted exposes the intent signal so the publisher can wake between ticks.
// A receive consumes the signal exactly like Pending.
func (e *Exchange) Wanted() <-chan struct{} {
	return e.intent
}

// Publish completes the current round with snap and opens a new one. snap
// must already be a private copy; it is shared read-only by all waiters.
func (e *Exchange) Publish(snap airspace.Snapshot) {
	e.mu.Lock()
	r := e.current
	e.current = newRound()
	e.mu.Unlock()

	r.snapshot = snap
	close(r.done)
}
