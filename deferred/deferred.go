// Package deferred provides a value that is settled later, either resolved
// with a result or rejected with an error, exactly once.
package deferred

import (
	"context"
	"sync"
)

type Value[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

// New returns a pending Value.
func New[T any]() *Value[T] {
	return &Value[T]{done: make(chan struct{})}
}

// Resolved returns a Value that is already resolved with v.
func Resolved[T any](v T) *Value[T] {
	d := New[T]()
	d.Resolve(v)
	return d
}

// Rejected returns a Value that is already rejected with err.
func Rejected[T any](err error) *Value[T] {
	d := New[T]()
	d.Reject(err)
	return d
}

// Go runs fn in its own goroutine and settles the returned Value with its
// result. A non-nil error rejects.
func Go[T any](fn func() (T, error)) *Value[T] {
	d := New[T]()
	go func() {
		v, err := fn()
		if err != nil {
			d.Reject(err)
			return
		}
		d.Resolve(v)
	}()
	return d
}

// Resolve settles the Value with v. Returns false if it was already settled.
func (d *Value[T]) Resolve(v T) bool {
	return d.settle(v, nil)
}

// Reject settles the Value with err. Returns false if it was already settled.
func (d *Value[T]) Reject(err error) bool {
	var zero T
	return d.settle(zero, err)
}

func (d *Value[T]) settle(v T, err error) bool {
	settled := false
	d.once.Do(func() {
		d.val = v
		d.err = err
		settled = true
		close(d.done)
	})
	return settled
}

// Done is closed once the Value is settled.
func (d *Value[T]) Done() <-chan struct{} {
	return d.done
}

// Await blocks until the Value is settled or ctx is done. Giving up on ctx
// does not settle the Value.
func (d *Value[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.val, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
