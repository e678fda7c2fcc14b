package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Queue serializes async tasks so that no two dispatches begin closer
// together than the interval implied by the configured rate, regardless
// of how long each task takes. At most one task is ever in flight.
type Queue[T any] struct {
	limiter *rate.Limiter
	logFn   func() *slog.Logger

	mu       sync.Mutex
	fifo     []*item[T]
	draining bool
}

// item pairs a queued task with its pending Result.
type item[T any] struct {
	ctx  context.Context
	task Task[T]
	res  *Result[T]
}

// Option defines optional settings for a Queue.
//
// WithLogger injects a lazily-resolved logger, used to report
// dispatches that had to wait for a pacing slot. A nil-returning
// func disables the reporting entirely.
type Option func(*options) error

type options struct {
	logFn func() *slog.Logger
}

func WithLogger(logFn func() *slog.Logger) Option {
	return func(o *options) error {
		if logFn == nil {
			return errors.New("logFn must not be nil")
		}
		o.logFn = logFn
		return nil
	}
}

// New creates a Queue that dispatches at most requestsPerSecond tasks
// per second, measured start-to-start. The rate must be a positive,
// finite number; anything else fails with ErrInvalidRate.
func New[T any](requestsPerSecond float64, optFns ...Option) (*Queue[T], error) {
	if requestsPerSecond <= 0 || math.IsInf(requestsPerSecond, 0) || math.IsNaN(requestsPerSecond) {
		return nil, fmt.Errorf("requestsPerSecond[%v] %w", requestsPerSecond, ErrInvalidRate)
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying queue option: %w", err)
		}
	}

	logFn := opts.logFn
	if logFn == nil {
		logFn = func() *slog.Logger { return nil }
	}

	q := &Queue[T]{
		// Burst of one: tokens become available exactly one pacing
		// interval apart, which is the start-to-start spacing contract.
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logFn:   logFn,
	}

	return q, nil
}

// Schedule appends task to the queue and returns its pending Result
// without waiting for the task to run. The Result settles with the
// task's own value or error, unchanged. If ctx ends before the task is
// dispatched, the Result settles with the context error instead and
// the task never runs.
//
// Schedule is safe for concurrent use; callers racing to enqueue are
// ordered by who wins the internal lock.
func (q *Queue[T]) Schedule(ctx context.Context, task Task[T]) *Result[T] {
	r := &Result[T]{done: make(chan struct{})}

	q.mu.Lock()
	q.fifo = append(q.fifo, &item[T]{ctx: ctx, task: task, res: r})
	start := !q.draining
	if start {
		q.draining = true
	}
	q.mu.Unlock()

	if start {
		go q.drain()
	}

	return r
}

// Len reports the number of tasks waiting for dispatch. It does not
// count a task currently in flight.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fifo)
}

// drain dispatches queued tasks one at a time until the queue empties,
// then clears the draining flag and exits. It runs in a single
// goroutine started by Schedule; iteration (not recursion) keeps the
// cost flat no matter how long the queue grows.
func (q *Queue[T]) drain() {
	for {
		q.mu.Lock()
		if len(q.fifo) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		it := q.fifo[0]
		q.fifo = q.fifo[1:]
		q.mu.Unlock()

		q.dispatch(it)
	}
}

// dispatch waits for the next pacing slot, runs one task to completion,
// and settles its Result. Errors settle only the task's own Result;
// the drain loop never sees them.
func (q *Queue[T]) dispatch(it *item[T]) {
	var zero T

	if err := it.ctx.Err(); err != nil {
		// Settling here consumes no pacing slot, so a dead task
		// never delays its successors.
		it.res.settle(zero, fmt.Errorf("%w while queued: %w", ErrContextEnded, err))
		return
	}

	var waited time.Duration
	logger := q.logFn()
	if logger != nil && q.limiter.Tokens() < 1 {
		defer func() {
			logger.Info("queue dispatch paced", "waited", waited.String(), "rate", float64(q.limiter.Limit()))
		}()
	}

	start := time.Now()
	err := q.limiter.Wait(it.ctx)
	waited = time.Since(start)
	if err != nil {
		it.res.settle(zero, fmt.Errorf("%w: %w", ErrWaitingFailed, err))
		return
	}

	v, err := it.task(it.ctx)
	it.res.settle(v, err)
}
