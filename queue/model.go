package queue

import (
	"context"
	"errors"
)

// Task is the signature for async work submitted to a Queue.
type Task[T any] func(ctx context.Context) (T, error)

var (
	// ErrInvalidRate is returned by New when the requested rate is not a
	// positive, finite number.
	ErrInvalidRate = errors.New("must be a positive finite rate")
	// ErrWaitingFailed wraps a pacing wait that ended before a dispatch
	// slot became available.
	ErrWaitingFailed = errors.New("pacing wait failed")
	// ErrContextEnded wraps the context error of a task whose context
	// ended while it was still queued.
	ErrContextEnded = errors.New("task context ended")
)
