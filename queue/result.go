package queue

// Result represents the pending outcome of one scheduled task. It
// settles exactly once, with either the task's value or its error.
type Result[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Done returns a channel that is closed when the task settles.
func (r *Result[T]) Done() <-chan struct{} { return r.done }

// Err blocks until the task settles and returns its error, if any.
func (r *Result[T]) Err() error {
	<-r.done
	return r.err
}

// Value blocks until the task settles and returns its value and error.
func (r *Result[T]) Value() (T, error) {
	<-r.done
	return r.val, r.err
}

// settle records the outcome and releases all waiters. It must be
// called at most once, from the dispatch path.
func (r *Result[T]) settle(val T, err error) {
	r.val = val
	r.err = err
	close(r.done)
}
