// Package pool hands out reusable objects addressed by [slab.Slot].
//
// Objects live in a [slab.Slab]; released slots wait in a [fifo.Queue] and
// are handed out again oldest first, with their previous contents intact so
// callers can reuse buffers. Acquire and Release never allocate.
package pool

import (
	"errors"
	"fmt"

	"github.com/calvinalkan/slab/pkg/fifo"
	"github.com/calvinalkan/slab/pkg/slab"
)

// ErrNotAcquired is returned when a slot is released or read while it is not
// acquired.
var ErrNotAcquired = errors.New("pool: slot not acquired")

// Pool is a fixed-size object pool. Not safe for concurrent use.
type Pool[T any] struct {
	objects  *slab.Slab[T]
	released *fifo.Queue[slab.Slot]
	inUse    []bool
	used     int
}

// New returns a pool holding at most capacity objects.
func New[T any](capacity int) (*Pool[T], error) {
	objects, err := slab.WithCapacity[T](capacity)
	if err != nil {
		return nil, fmt.Errorf("pool: capacity %d: %w", capacity, err)
	}

	released, err := fifo.New[slab.Slot](capacity)
	if err != nil {
		return nil, fmt.Errorf("pool: capacity %d: %w", capacity, err)
	}

	return &Pool[T]{
		objects:  objects,
		released: released,
		inUse:    make([]bool, capacity),
	}, nil
}

// Acquire returns an object and its slot. A previously released object is
// reused if one exists; otherwise a zero T is created.
// Returns [slab.ErrFull] if every object is in use.
func (p *Pool[T]) Acquire() (slab.Slot, *T, error) {
	slot, err := p.released.Dequeue()
	if err != nil {
		var zero T

		slot, err = p.objects.PushFront(zero)
		if err != nil {
			return slab.NUL, nil, err
		}
	}

	p.inUse[slot] = true
	p.used++

	return slot, p.objects.At(slot), nil
}

// Release returns the object at slot to the pool.
// Returns [ErrNotAcquired] if slot is not currently acquired.
func (p *Pool[T]) Release(slot slab.Slot) error {
	if !p.acquired(slot) {
		return ErrNotAcquired
	}

	// Cannot be full: the queue has one cell per object.
	if err := p.released.Enqueue(slot); err != nil {
		return err
	}

	p.inUse[slot] = false
	p.used--

	return nil
}

// Get returns the acquired object at slot.
func (p *Pool[T]) Get(slot slab.Slot) (*T, error) {
	if !p.acquired(slot) {
		return nil, ErrNotAcquired
	}

	return p.objects.At(slot), nil
}

// InUse returns the number of acquired objects.
func (p *Pool[T]) InUse() int { return p.used }

// Cap returns the pool size.
func (p *Pool[T]) Cap() int { return p.objects.Cap() }

// Reset drops every object, acquired or not.
func (p *Pool[T]) Reset() {
	p.objects.Clear()
	p.released.Clear()
	clear(p.inUse)
	p.used = 0
}

func (p *Pool[T]) acquired(slot slab.Slot) bool {
	return uint64(slot) < uint64(len(p.inUse)) && p.inUse[slot]
}
