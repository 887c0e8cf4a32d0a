package deferred

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestResolved(t *testing.T) {
	d := Resolved(42)

	select {
	case <-d.Done():
	default:
		t.Fatal("expected value to be settled")
	}

	v, err := d.Await(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
}

func TestRejected(t *testing.T) {
	boom := errors.New("boom")
	d := Rejected[string](boom)

	v, err := d.Await(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if v != "" {
		t.Errorf("expected zero value, got %q", v)
	}
}

func TestSettlesOnce(t *testing.T) {
	d := New[int]()

	if !d.Resolve(1) {
		t.Error("expected first settle to win")
	}
	if d.Resolve(2) {
		t.Error("expected second resolve to be ignored")
	}
	if d.Reject(errors.New("late")) {
		t.Error("expected reject after resolve to be ignored")
	}

	v, err := d.Await(context.Background())
	if err != nil || v != 1 {
		t.Errorf("expected 1 and no error, got %d %v", v, err)
	}
}

func TestGo(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("resolves with the result", func(t *testing.T) {
		d := Go(func() (string, error) { return "ok", nil })
		v, err := d.Await(context.Background())
		if err != nil || v != "ok" {
			t.Errorf("expected ok, got %q %v", v, err)
		}
	})

	t.Run("rejects with the error", func(t *testing.T) {
		boom := errors.New("boom")
		d := Go(func() (string, error) { return "ignored", boom })
		v, err := d.Await(context.Background())
		if !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
		if v != "" {
			t.Errorf("expected zero value on reject, got %q", v)
		}
	})
}

func TestAwaitContext(t *testing.T) {
	d := New[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := d.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	// Still pending, still settleable.
	if !d.Resolve(7) {
		t.Error("expected value to still be pending after Await gave up")
	}
}
