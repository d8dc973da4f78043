package workerpool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"searchai/internal/logging"
	"searchai/internal/services"
)

// DefaultSize is the number of concurrent backend calls allowed per process.
const DefaultSize = 4

// Pool bounds how many blocking backend calls run at once. Calls run on their
// own goroutine so callers can stop waiting when a stage deadline passes.
type Pool struct {
	sem      *semaphore.Weighted
	size     int
	inFlight atomic.Int64
	logger   *slog.Logger
}

// New returns a pool admitting size concurrent calls (DefaultSize when size
// is not positive).
func New(size int, logger *slog.Logger) *Pool {
	if size <= 0 {
		size = DefaultSize
	}
	return &Pool{
		sem:    semaphore.NewWeighted(int64(size)),
		size:   size,
		logger: logging.NewComponentLogger(logger, "workerpool"),
	}
}

// Size returns the configured concurrency limit.
func (p *Pool) Size() int { return p.size }

// InFlight returns the number of calls currently holding a slot, including
// abandoned calls that have not returned yet.
func (p *Pool) InFlight() int { return int(p.inFlight.Load()) }

type outcome[T any] struct {
	value T
	err   error
}

// Do runs fn on the pool and waits at most timeout (no limit when timeout is
// not positive) for it to finish, counting time spent waiting for a slot.
//
// When the deadline passes first, Do returns an error wrapping
// services.ErrTimeout and cancels the context passed to fn. The call itself
// is not interrupted: it keeps its slot until it returns, and whatever it
// returns is logged and discarded.
func Do[T any](ctx context.Context, p *Pool, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	waitCtx := ctx
	cancelWait := func() {}
	if timeout > 0 {
		waitCtx, cancelWait = context.WithTimeout(ctx, timeout)
	}
	defer cancelWait()

	if err := p.sem.Acquire(waitCtx, 1); err != nil {
		return zero, waitError(ctx, waitCtx, timeout)
	}
	p.inFlight.Add(1)

	callCtx, cancelCall := context.WithCancel(ctx)
	done := make(chan outcome[T], 1)
	// Exactly one side claims the result: the call when it finishes before
	// the waiter gives up, otherwise the waiter, and the result is dropped.
	var claimed atomic.Bool
	start := time.Now()

	go func() {
		defer func() {
			cancelCall()
			p.inFlight.Add(-1)
			p.sem.Release(1)
		}()
		value, err := fn(callCtx)
		if claimed.CompareAndSwap(false, true) {
			done <- outcome[T]{value: value, err: err}
			return
		}
		logging.WithContext(ctx, p.logger).Info("late result discarded",
			logging.String(logging.FieldEventType, "late_result_discarded"),
			logging.Duration("elapsed", time.Since(start)),
			logging.Bool("failed", err != nil),
		)
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-waitCtx.Done():
		if !claimed.CompareAndSwap(false, true) {
			// Finished while the deadline fired; the result is still good.
			res := <-done
			return res.value, res.err
		}
		cancelCall()
		return zero, waitError(ctx, waitCtx, timeout)
	}
}

func waitError(parent, waitCtx context.Context, timeout time.Duration) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", services.ErrTimeout, timeout)
	}
	return waitCtx.Err()
}
