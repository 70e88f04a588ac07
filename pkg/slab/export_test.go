package slab

// Cell returns the raw storage cell at slot, live or not.
func Cell[T any](s *Slab[T], slot Slot) T {
	return s.data[slot]
}

// FreeChain returns the free list from head to end.
func FreeChain[T any](s *Slab[T]) []Slot {
	var chain []Slot
	for slot := s.freeHead; slot != NUL; slot = s.next[slot] {
		chain = append(chain, slot)
	}

	return chain
}

// Links returns the raw next/prev entries of slot.
func Links[T any](s *Slab[T], slot Slot) (next, prev Slot) {
	return s.next[slot], s.prev[slot]
}
