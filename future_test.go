package binset

import (
	"context"
	"errors"
	"testing"
	"time"
)

// A client that fires its callback twice must not change the first result.
func TestFutureResolvesExactlyOnce(t *testing.T) {
	f := newFuture[int]()
	f.complete(1, nil)
	f.complete(2, errors.New("late duplicate callback"))

	v, err := f.Wait(context.Background())
	if v != 1 || err != nil {
		t.Fatalf("got (%d, %v), want (1, nil)", v, err)
	}
}

func TestFutureWaitCancellation(t *testing.T) {
	f := newFuture[string]()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// Abandoning a wait does not cancel the operation; a later resolution is
	// still observable.
	f.complete("done", nil)
	v, err := f.Wait(context.Background())
	if v != "done" || err != nil {
		t.Fatalf("got (%q, %v) after late resolution", v, err)
	}
}

func TestFutureDoneSignals(t *testing.T) {
	f := newFuture[int]()
	select {
	case <-f.Done():
		t.Fatalf("Done closed before resolution")
	default:
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		f.complete(7, nil)
	}()

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatalf("Done not closed after resolution")
	}
	if v, err := f.Wait(context.Background()); v != 7 || err != nil {
		t.Fatalf("got (%d, %v)", v, err)
	}
}

func TestFailedFutureIsResolved(t *testing.T) {
	sentinel := errors.New("boom")
	f := failed[int](sentinel)
	select {
	case <-f.Done():
	default:
		t.Fatalf("failed future should be resolved immediately")
	}
	if _, err := f.Wait(context.Background()); !errors.Is(err, sentinel) {
		t.Fatalf("got %v, want sentinel", err)
	}
}
