// Package model provides a deliberately simple, in-memory state model of
// slab's publicly observable behavior.
//
// The model is intentionally easy to audit: the live list is a plain slice in
// front-to-back order and the free list is a plain stack. Every operation is
// O(n) and allocates freely. Differential tests drive the model and a real
// [slab.Slab] with the same operations and compare results.
package model

import (
	"slices"

	"github.com/calvinalkan/slab/pkg/slab"
)

// Entry is one live element and the slot it occupies.
type Entry[T any] struct {
	Slot  slab.Slot
	Value T
}

// Model mirrors a [slab.Slab].
//
// Slot reuse is observable through the slots PushFront returns, so the model
// tracks free slots too: a fresh or cleared slab hands out 0, 1, 2, ... and a
// released slot is the next one handed out (LIFO).
type Model[T any] struct {
	Capacity int

	// Live is ordered front (most recent) to back (oldest).
	Live []Entry[T]

	// FreeStack holds free slots; the last element is handed out next.
	FreeStack []slab.Slot
}

// New returns an empty model, rejecting the same capacities as
// [slab.WithCapacity].
func New[T any](capacity int) (*Model[T], error) {
	if capacity < 0 || capacity > slab.MaxCapacity {
		return nil, slab.ErrTooLarge
	}

	m := &Model[T]{Capacity: capacity}
	m.Clear()

	return m, nil
}

// Clone makes a deep copy so tests can fork the exact same state.
func (m *Model[T]) Clone() *Model[T] {
	return &Model[T]{
		Capacity:  m.Capacity,
		Live:      slices.Clone(m.Live),
		FreeStack: slices.Clone(m.FreeStack),
	}
}

// Clear empties the model and restores the fresh free order.
func (m *Model[T]) Clear() {
	m.Live = nil
	m.FreeStack = make([]slab.Slot, 0, m.Capacity)

	for i := m.Capacity - 1; i >= 0; i-- {
		m.FreeStack = append(m.FreeStack, slab.Slot(i))
	}
}

// Len returns the number of live entries.
func (m *Model[T]) Len() int { return len(m.Live) }

// Free returns the number of free slots.
func (m *Model[T]) Free() int { return m.Capacity - len(m.Live) }

// IsFull reports whether no slot is free.
func (m *Model[T]) IsFull() bool { return len(m.FreeStack) == 0 }

// PushFront inserts value at the front.
func (m *Model[T]) PushFront(value T) (slab.Slot, error) {
	if len(m.FreeStack) == 0 {
		return slab.NUL, slab.ErrFull
	}

	slot := m.FreeStack[len(m.FreeStack)-1]
	m.FreeStack = m.FreeStack[:len(m.FreeStack)-1]

	m.Live = slices.Insert(m.Live, 0, Entry[T]{Slot: slot, Value: value})

	return slot, nil
}

// Remove deletes the live entry at slot.
func (m *Model[T]) Remove(slot slab.Slot) error {
	idx := m.find(slot)
	if idx < 0 {
		return slab.ErrInvalidSlot
	}

	m.Live = slices.Delete(m.Live, idx, idx+1)
	m.FreeStack = append(m.FreeStack, slot)

	return nil
}

// PopBack removes and returns the oldest entry's value.
func (m *Model[T]) PopBack() (T, bool) {
	if len(m.Live) == 0 {
		var zero T
		return zero, false
	}

	last := m.Live[len(m.Live)-1]
	m.Live = m.Live[:len(m.Live)-1]
	m.FreeStack = append(m.FreeStack, last.Slot)

	return last.Value, true
}

// Get returns the value at slot.
func (m *Model[T]) Get(slot slab.Slot) (T, error) {
	idx := m.find(slot)
	if idx < 0 {
		var zero T
		return zero, slab.ErrInvalidSlot
	}

	return m.Live[idx].Value, nil
}

// Set overwrites the value at slot.
func (m *Model[T]) Set(slot slab.Slot, value T) error {
	idx := m.find(slot)
	if idx < 0 {
		return slab.ErrInvalidSlot
	}

	m.Live[idx].Value = value

	return nil
}

// Contains reports whether slot is live.
func (m *Model[T]) Contains(slot slab.Slot) bool {
	return m.find(slot) >= 0
}

// Slots returns live slots front to back.
func (m *Model[T]) Slots() []slab.Slot {
	slots := make([]slab.Slot, 0, len(m.Live))
	for _, e := range m.Live {
		slots = append(slots, e.Slot)
	}

	return slots
}

// Values returns live values front to back.
func (m *Model[T]) Values() []T {
	values := make([]T, 0, len(m.Live))
	for _, e := range m.Live {
		values = append(values, e.Value)
	}

	return values
}

func (m *Model[T]) find(slot slab.Slot) int {
	return slices.IndexFunc(m.Live, func(e Entry[T]) bool { return e.Slot == slot })
}
