// Package fifo is a bounded first-in first-out queue on top of [slab.Slab].
//
// Enqueue pushes at the slab's front and Dequeue pops from its back, so both
// are O(1) and neither allocates after [New].
package fifo

import (
	"fmt"

	"github.com/calvinalkan/slab/pkg/slab"
)

// Queue is a bounded FIFO queue. Not safe for concurrent use.
type Queue[T any] struct {
	items *slab.Slab[T]
}

// New returns an empty queue holding at most capacity items.
func New[T any](capacity int) (*Queue[T], error) {
	items, err := slab.WithCapacity[T](capacity)
	if err != nil {
		return nil, fmt.Errorf("fifo: capacity %d: %w", capacity, err)
	}

	return &Queue[T]{items: items}, nil
}

// Enqueue appends value. Returns [slab.ErrFull] if the queue is at capacity.
func (q *Queue[T]) Enqueue(value T) error {
	_, err := q.items.PushFront(value)
	return err
}

// Dequeue removes and returns the oldest value.
// Returns [slab.ErrEmpty] if the queue is empty.
func (q *Queue[T]) Dequeue() (T, error) {
	v, ok := q.items.PopBack()
	if !ok {
		return v, slab.ErrEmpty
	}

	return v, nil
}

// Peek returns the oldest value without removing it.
// Returns [slab.ErrEmpty] if the queue is empty.
func (q *Queue[T]) Peek() (T, error) {
	slot, ok := q.items.Back()
	if !ok {
		var zero T
		return zero, slab.ErrEmpty
	}

	return *q.items.At(slot), nil
}

// Len returns the number of queued values.
func (q *Queue[T]) Len() int { return q.items.Len() }

// Cap returns the maximum number of values.
func (q *Queue[T]) Cap() int { return q.items.Cap() }

func (q *Queue[T]) IsEmpty() bool { return q.items.IsEmpty() }

func (q *Queue[T]) IsFull() bool { return q.items.IsFull() }

// Clear drops all values.
func (q *Queue[T]) Clear() { q.items.Clear() }

// All yields queued values oldest first without removing them.
func (q *Queue[T]) All(yield func(T) bool) {
	for _, v := range q.items.Backward() {
		if !yield(v) {
			return
		}
	}
}
