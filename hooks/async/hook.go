// Package async decouples hook delivery from the operation hot path: events are
// queued to a bounded channel and replayed on worker goroutines. When the queue
// is full, events are dropped rather than blocking a store-client callback.
package async

import (
	"sync"
	"time"

	"github.com/keystrata/binset"
)

type Hooks struct {
	inner binset.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ binset.Hooks = (*Hooks)(nil)

func New(inner binset.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) KeyEncodeError(op string, err error) {
	h.try(func() { h.inner.KeyEncodeError(op, err) })
}
func (h *Hooks) TransportError(op, ns, set string, err error) {
	h.try(func() { h.inner.TransportError(op, ns, set, err) })
}
func (h *Hooks) DecodeError(op, bin string, err error) {
	h.try(func() { h.inner.DecodeError(op, bin, err) })
}
func (h *Hooks) TTLOverride(op string, ttl time.Duration) {
	h.try(func() { h.inner.TTLOverride(op, ttl) })
}
func (h *Hooks) BatchMisaligned(op string, want, got int) {
	h.try(func() { h.inner.BatchMisaligned(op, want, got) })
}
