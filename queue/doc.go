// Package queue provides a paced FIFO task queue that dispatches
// asynchronous tasks one at a time, spacing dispatch starts at a
// minimum interval derived from a configured rate. It exists to smooth
// bursts of calls against a rate-limited collaborator (typically a
// remote RPC endpoint) into a steady stream.
//
// # Usage
//
// Create a queue with [New] and submit work with [Queue.Schedule]:
//
//	q, err := queue.New[uint64](10) // at most 10 dispatches per second
//	if err != nil { ... }
//
//	r := q.Schedule(ctx, func(ctx context.Context) (uint64, error) {
//		return fetchBalance(ctx, account)
//	})
//	// ... do other work ...
//	balance, err := r.Value() // blocks until the task settles
//
// Schedule never blocks; it returns a [Result] that settles exactly once
// with the task's own value or error. Tasks dispatch in strict submission
// order, at most one is ever in flight, and one task's failure never
// affects its siblings. An idle queue costs nothing: the drain goroutine
// exits when the queue empties and is restarted by the next Schedule.
package queue
