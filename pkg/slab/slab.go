package slab

import (
	"fmt"
	"math"
)

// NUL is the reserved "no slot" sentinel: the maximum value of [Slot].
// It terminates both linked lists and is never a valid handle or capacity.
const NUL = ^Slot(0)

// DefaultCapacity is the capacity used by [New].
const DefaultCapacity = 16

// MaxCapacity is the largest capacity accepted by [WithCapacity] for the
// Slot width selected at build time.
var MaxCapacity = maxCapacity()

func maxCapacity() int {
	nul := uint64(NUL)
	if nul > math.MaxInt {
		return math.MaxInt
	}

	return int(nul) - 1
}

// Checked reports whether the package was built with occupancy validation
// (the default). It is false under the slab_unchecked build tag.
func Checked() bool { return checked }

// Slab is a fixed-capacity arena of T with a live list ordered from the most
// recently pushed element (front, head) to the oldest (back, tail).
//
// For a live slot, next/prev hold its live-list neighbours. For a free slot,
// next holds the following free slot and prev is [NUL]. Every slot is in
// exactly one of the two lists.
//
// The zero value is not usable; construct with [WithCapacity] or [New].
type Slab[T any] struct {
	next []Slot
	prev []Slot
	data []T

	freeHead Slot
	head     Slot
	tail     Slot
	len      int

	valid validity

	// mods counts mutations so iterators can detect use after mutation.
	mods uint64
}

// WithCapacity returns an empty slab that can hold exactly capacity
// elements. It is the only place the slab allocates.
//
// Returns [ErrTooLarge] if capacity is negative or not below [NUL].
// A capacity of 0 is allowed and yields a slab that is always full.
func WithCapacity[T any](capacity int) (*Slab[T], error) {
	if capacity < 0 || uint64(capacity) >= uint64(NUL) {
		return nil, ErrTooLarge
	}

	s := &Slab[T]{
		next:  make([]Slot, capacity),
		prev:  make([]Slot, capacity),
		data:  make([]T, capacity),
		valid: newValidity(capacity),
	}
	s.resetLinks()

	return s, nil
}

// New returns an empty slab with [DefaultCapacity].
func New[T any]() *Slab[T] {
	return MustWithCapacity[T](DefaultCapacity)
}

// MustWithCapacity is like [WithCapacity] but panics on error.
func MustWithCapacity[T any](capacity int) *Slab[T] {
	s, err := WithCapacity[T](capacity)
	if err != nil {
		panic(fmt.Sprintf("slab: WithCapacity(%d): %v", capacity, err))
	}

	return s
}

// resetLinks lays out the construction state: free chain 0->1->...->cap-1->NUL
// and an empty live list.
func (s *Slab[T]) resetLinks() {
	capacity := len(s.next)
	for i := range capacity {
		s.next[i] = Slot(i + 1)
		s.prev[i] = NUL
	}

	if capacity > 0 {
		s.next[capacity-1] = NUL
		s.freeHead = 0
	} else {
		s.freeHead = NUL
	}

	s.head = NUL
	s.tail = NUL
	s.len = 0
}

// Cap returns the fixed number of slots.
func (s *Slab[T]) Cap() int { return len(s.data) }

// Len returns the number of live elements.
func (s *Slab[T]) Len() int { return s.len }

// Free returns the number of unused slots.
func (s *Slab[T]) Free() int { return len(s.data) - s.len }

// IsEmpty reports whether no element is live.
func (s *Slab[T]) IsEmpty() bool { return s.len == 0 }

// IsFull reports whether the free list is exhausted.
func (s *Slab[T]) IsFull() bool { return s.freeHead == NUL }

// Front returns the slot of the most recently pushed element.
func (s *Slab[T]) Front() (Slot, bool) { return s.head, s.head != NUL }

// Back returns the slot of the oldest element, the one [Slab.PopBack] would
// remove next.
func (s *Slab[T]) Back() (Slot, bool) { return s.tail, s.tail != NUL }

// PushFront inserts value as the new front of the live list and returns its
// slot. Returns [ErrFull] if no slot is free.
func (s *Slab[T]) PushFront(value T) (Slot, error) {
	slot := s.freeHead
	if slot == NUL {
		return NUL, ErrFull
	}

	s.freeHead = s.next[slot]

	s.next[slot] = s.head
	s.prev[slot] = NUL

	if s.head != NUL {
		s.prev[s.head] = slot
	} else {
		s.tail = slot
	}

	s.head = slot

	s.data[slot] = value
	s.valid.mark(slot)
	s.len++
	s.mods++

	return slot, nil
}

// Remove deletes the element at slot wherever it sits in the live list.
//
// Returns [ErrInvalidSlot] if slot is out of range or, in the checked build,
// not live. In the unchecked build removing a slot that is not live corrupts
// the slab.
func (s *Slab[T]) Remove(slot Slot) error {
	if !s.live(slot) {
		return ErrInvalidSlot
	}

	prev := s.prev[slot]
	next := s.next[slot]

	if prev != NUL {
		s.next[prev] = next
	} else {
		s.head = next
	}

	if next != NUL {
		s.prev[next] = prev
	} else {
		s.tail = prev
	}

	s.release(slot, true)

	return nil
}

// PopBack removes and returns the oldest element.
// The second result is false if the slab is empty.
func (s *Slab[T]) PopBack() (T, bool) {
	slot := s.unlinkTail()
	if slot == NUL {
		var zero T
		return zero, false
	}

	value := s.data[slot]
	s.release(slot, true)

	return value, true
}

// PopBackRef removes the oldest element like [Slab.PopBack] but leaves the
// value in place and returns a pointer to it, so callers can inspect or
// mutate it without a copy.
//
// The slot is free once PopBackRef returns. The pointer stays usable until a
// later [Slab.PushFront] reuses that slot or [Slab.Clear] runs.
func (s *Slab[T]) PopBackRef() (*T, bool) {
	slot := s.unlinkTail()
	if slot == NUL {
		return nil, false
	}

	s.release(slot, false)

	return &s.data[slot], true
}

// unlinkTail detaches the tail from the live list and returns it, or NUL if
// the list is empty.
func (s *Slab[T]) unlinkTail() Slot {
	slot := s.tail
	if slot == NUL {
		return NUL
	}

	prev := s.prev[slot]
	if prev != NUL {
		s.next[prev] = NUL
	} else {
		s.head = NUL
	}

	s.tail = prev

	return slot
}

// release returns an unlinked slot to the head of the free list.
func (s *Slab[T]) release(slot Slot, zero bool) {
	if zero {
		var empty T
		s.data[slot] = empty
	}

	s.valid.unmark(slot)

	s.prev[slot] = NUL
	s.next[slot] = s.freeHead
	s.freeHead = slot

	s.len--
	s.mods++
}

// Get returns a copy of the element at slot.
//
// Returns [ErrInvalidSlot] if slot is out of range or, in the checked build,
// not live. In the unchecked build reading a slot that is not live returns
// whatever the cell holds (usually the zero value).
func (s *Slab[T]) Get(slot Slot) (T, error) {
	if !s.live(slot) {
		var zero T
		return zero, ErrInvalidSlot
	}

	return s.data[slot], nil
}

// GetMut returns a pointer to the element at slot for in-place mutation.
// The pointer is valid until the slot is removed. Errors as [Slab.Get].
func (s *Slab[T]) GetMut(slot Slot) (*T, error) {
	if !s.live(slot) {
		return nil, ErrInvalidSlot
	}

	return &s.data[slot], nil
}

// Set overwrites the element at slot without changing its position.
// Errors as [Slab.Get].
func (s *Slab[T]) Set(slot Slot, value T) error {
	ptr, err := s.GetMut(slot)
	if err != nil {
		return err
	}

	*ptr = value

	return nil
}

// At indexes the slab directly and never returns an error. Unlike
// [Slab.Get], an invalid slot is fatal: At panics if slot is out of range
// or, in the checked build, not live.
func (s *Slab[T]) At(slot Slot) *T {
	if !s.live(slot) {
		panic(fmt.Sprintf("slab: At(%d) with capacity %d: %v", slot, len(s.data), ErrInvalidSlot))
	}

	return &s.data[slot]
}

// Clear drops every element and restores the construction layout.
// Capacity is unchanged. Runs in O(capacity).
func (s *Slab[T]) Clear() {
	clear(s.data)
	s.valid.reset()
	s.resetLinks()
	s.mods++
}

func (s *Slab[T]) inRange(slot Slot) bool {
	return uint64(slot) < uint64(len(s.data))
}

func (s *Slab[T]) live(slot Slot) bool {
	return s.inRange(slot) && s.valid.occupied(slot)
}

// String returns a short summary for debugging.
func (s *Slab[T]) String() string {
	return fmt.Sprintf("Slab[len=%d cap=%d free=%d]", s.len, len(s.data), s.Free())
}
