package binset

import (
	"context"
	"sync"
)

// Future is the asynchronous result of one operation. It resolves exactly once;
// extra resolutions are ignored, which guards against a store client that fires
// a callback more than once.
//
// Cancelling the context passed to Wait abandons the wait only. The in-flight
// store request runs to completion or failure regardless.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// failed builds an already-resolved future, used to fail fast before any
// request is issued (key encode errors, malformed TTLs, bad byte ranges).
func failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	var zero T
	f.complete(zero, err)
	return f
}

func (f *Future[T]) complete(v T, err error) {
	f.once.Do(func() {
		f.val = v
		f.err = err
		close(f.done)
	})
}

// Done is closed once the future has resolved.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the future resolves or ctx is cancelled.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
