// Package dispatch runs request work on a bounded pool of workers so that a
// burst of connections cannot spawn unbounded concurrent work.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"golang.org/x/sync/semaphore"
)

const DefaultWorkers = 10

var ErrTaskPanicked = errors.New("dispatch task panicked")

type Config struct {
	Name    string
	Workers int
}

// Dispatcher admits at most Workers tasks at a time. The semaphore enforces the
// hard limit; the pool reuses worker goroutines underneath it.
type Dispatcher struct {
	pool    gopool.Pool
	slots   *semaphore.Weighted
	workers int
}

func New(cfg Config) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Name == "" {
		cfg.Name = "dispatch"
	}
	return &Dispatcher{
		pool:    gopool.NewPool(cfg.Name, int32(cfg.Workers), gopool.NewConfig()),
		slots:   semaphore.NewWeighted(int64(cfg.Workers)),
		workers: cfg.Workers,
	}
}

func (d *Dispatcher) Workers() int {
	return d.workers
}

// Do runs fn on a pool worker and waits for it. Callers queue while every
// worker is busy and give up with ctx's error if it ends first. A panic in fn
// is recovered and reported as ErrTaskPanicked so it stays confined to the
// one request.
func Do[T any](ctx context.Context, d *Dispatcher, fn func(context.Context) T) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	if err := d.slots.Acquire(ctx, 1); err != nil {
		var zero T
		return zero, err
	}
	done := make(chan outcome, 1)

	d.pool.CtxGo(ctx, func() {
		defer d.slots.Release(1)
		defer func() {
			if r := recover(); r != nil {
				hlog.CtxErrorf(ctx, "dispatch: task panicked: %v", r)
				done <- outcome{err: fmt.Errorf("%w: %v", ErrTaskPanicked, r)}
			}
		}()
		done <- outcome{value: fn(ctx)}
	})

	out := <-done
	return out.value, out.err
}
