package slab

import "iter"

// Iter is a double-ended traversal of the live list with a known length.
//
// [Iter.Next] walks from the front (most recent) and [Iter.NextBack] from
// the back (oldest); the two ends never cross, so mixing them yields every
// element exactly once. The slab must not be mutated while an Iter is in
// use; doing so panics with [ErrConcurrentModification] on the next step.
type Iter[T any] struct {
	slab      *Slab[T]
	front     Slot
	back      Slot
	remaining int
	mods      uint64
}

// Iter returns a fresh iterator positioned at both ends of the live list.
// It is returned by value so traversal does not allocate.
func (s *Slab[T]) Iter() Iter[T] {
	return Iter[T]{
		slab:      s,
		front:     s.head,
		back:      s.tail,
		remaining: s.len,
		mods:      s.mods,
	}
}

// Len returns the number of elements not yet yielded from either end.
func (it *Iter[T]) Len() int { return it.remaining }

// Next yields the next element from the front.
func (it *Iter[T]) Next() (*T, bool) {
	_, value, ok := it.NextSlot()
	return value, ok
}

// NextSlot is like [Iter.Next] but also yields the element's slot.
func (it *Iter[T]) NextSlot() (Slot, *T, bool) {
	if it.remaining == 0 {
		return NUL, nil, false
	}

	it.slab.guard(it.mods)

	slot := it.front
	it.front = it.slab.next[slot]
	it.remaining--

	return slot, &it.slab.data[slot], true
}

// NextBack yields the next element from the back.
func (it *Iter[T]) NextBack() (*T, bool) {
	_, value, ok := it.NextBackSlot()
	return value, ok
}

// NextBackSlot is like [Iter.NextBack] but also yields the element's slot.
func (it *Iter[T]) NextBackSlot() (Slot, *T, bool) {
	if it.remaining == 0 {
		return NUL, nil, false
	}

	it.slab.guard(it.mods)

	slot := it.back
	it.back = it.slab.prev[slot]
	it.remaining--

	return slot, &it.slab.data[slot], true
}

// All returns a range-over-func sequence of (slot, value) pairs from front
// to back. The loop body must not mutate the slab.
func (s *Slab[T]) All() iter.Seq2[Slot, T] {
	return func(yield func(Slot, T) bool) {
		mods := s.mods

		for slot := s.head; slot != NUL; {
			next := s.next[slot]
			if !yield(slot, s.data[slot]) {
				return
			}

			s.guard(mods)
			slot = next
		}
	}
}

// Backward is like [Slab.All] but runs from back to front.
func (s *Slab[T]) Backward() iter.Seq2[Slot, T] {
	return func(yield func(Slot, T) bool) {
		mods := s.mods

		for slot := s.tail; slot != NUL; {
			prev := s.prev[slot]
			if !yield(slot, s.data[slot]) {
				return
			}

			s.guard(mods)
			slot = prev
		}
	}
}

// Values returns the live values from front to back.
func (s *Slab[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range s.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// Slots returns the live slots from front to back. Unlike the rest of the
// API it allocates; it is meant for diagnostics and tests.
func (s *Slab[T]) Slots() []Slot {
	slots := make([]Slot, 0, s.len)
	for slot := range s.All() {
		slots = append(slots, slot)
	}

	return slots
}

func (s *Slab[T]) guard(mods uint64) {
	if s.mods != mods {
		panic(ErrConcurrentModification)
	}
}
