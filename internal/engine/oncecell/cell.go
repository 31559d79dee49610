// Package oncecell provides a write-once, read-many synchronization cell.
// A Cell starts empty, lets any number of goroutines wait for its value, and
// accepts exactly one assignment that releases all waiters together. It is
// used to share the result of background initialization between concurrent
// tasks.
package oncecell

import (
	"context"
	"sync/atomic"

	"go.trai.ch/den/internal/core/domain"
)

const (
	stateUninitialized uint32 = iota
	stateInitializing
	stateInitialized
)

// Cell is a single-assignment cell. The zero value is not usable; create one
// with New. A Cell may be shared freely between goroutines.
type Cell[T any] struct {
	state atomic.Uint32
	ready chan struct{}
	value T
}

// New creates an empty cell.
func New[T any]() *Cell[T] {
	return &Cell[T]{ready: make(chan struct{})}
}

// Set assigns the value exactly once and releases every waiter. Under
// concurrent callers exactly one Set succeeds; the others return
// domain.ErrAlreadySet. The CAS claims the Initializing state before the
// value is written, and the ready channel is closed only after the write, so
// no reader can observe a partially written value.
func (c *Cell[T]) Set(value T) error {
	if !c.state.CompareAndSwap(stateUninitialized, stateInitializing) {
		return domain.ErrAlreadySet
	}
	c.value = value
	c.state.Store(stateInitialized)
	close(c.ready)
	return nil
}

// Wait suspends the calling goroutine until a value has been assigned, then
// returns it. If the value is already set, Wait returns immediately. The
// context bounds the wait; cancellation yields the context error.
func (c *Cell[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-c.ready:
		return c.value, nil
	default:
	}
	select {
	case <-c.ready:
		return c.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryGet returns the value if one has been assigned.
func (c *Cell[T]) TryGet() (T, bool) {
	if c.state.Load() == stateInitialized {
		return c.value, true
	}
	var zero T
	return zero, false
}

// IntoInner returns the value if the cell was ever set. The cell must not be
// used afterwards.
func (c *Cell[T]) IntoInner() (T, bool) {
	return c.TryGet()
}
