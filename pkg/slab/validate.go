package slab

import "fmt"

// Validate walks both lists and checks every structural invariant:
//
//   - each slot is in exactly one of the live list and the free list
//   - live links are symmetric and head/tail terminate at [NUL]
//   - free slots have prev == NUL and the free chain ends at NUL
//   - Len()+Free() == Cap() and, in the checked build, the occupancy bitmap
//     agrees with the live list
//
// It allocates scratch space, runs in O(capacity), and returns an error
// wrapping [ErrCorrupt] on the first violation found.
func (s *Slab[T]) Validate() error {
	capacity := len(s.data)
	if len(s.next) != capacity || len(s.prev) != capacity {
		return fmt.Errorf("%w: link arrays have length %d/%d, capacity %d", ErrCorrupt, len(s.next), len(s.prev), capacity)
	}

	// 0 = unseen, 1 = live, 2 = free
	seen := make([]uint8, capacity)

	liveCount := 0
	prev := NUL

	for slot := s.head; slot != NUL; slot = s.next[slot] {
		if !s.inRange(slot) {
			return fmt.Errorf("%w: live list reaches out-of-range slot %d", ErrCorrupt, slot)
		}

		if seen[slot] != 0 {
			return fmt.Errorf("%w: live list revisits slot %d", ErrCorrupt, slot)
		}

		if s.prev[slot] != prev {
			return fmt.Errorf("%w: slot %d has prev %d, want %d", ErrCorrupt, slot, s.prev[slot], prev)
		}

		if checked && !s.valid.occupied(slot) {
			return fmt.Errorf("%w: live slot %d not marked occupied", ErrCorrupt, slot)
		}

		seen[slot] = 1
		liveCount++
		prev = slot
	}

	if s.tail != prev {
		return fmt.Errorf("%w: tail is %d, live list ends at %d", ErrCorrupt, s.tail, prev)
	}

	if liveCount != s.len {
		return fmt.Errorf("%w: live list has %d slots, len is %d", ErrCorrupt, liveCount, s.len)
	}

	freeCount := 0

	for slot := s.freeHead; slot != NUL; slot = s.next[slot] {
		if !s.inRange(slot) {
			return fmt.Errorf("%w: free list reaches out-of-range slot %d", ErrCorrupt, slot)
		}

		if seen[slot] != 0 {
			return fmt.Errorf("%w: free list revisits slot %d", ErrCorrupt, slot)
		}

		if s.prev[slot] != NUL {
			return fmt.Errorf("%w: free slot %d has prev %d", ErrCorrupt, slot, s.prev[slot])
		}

		if checked && s.valid.occupied(slot) {
			return fmt.Errorf("%w: free slot %d marked occupied", ErrCorrupt, slot)
		}

		seen[slot] = 2
		freeCount++
	}

	if liveCount+freeCount != capacity {
		return fmt.Errorf("%w: %d live + %d free slots, capacity %d", ErrCorrupt, liveCount, freeCount, capacity)
	}

	if checked && s.valid.count() != liveCount {
		return fmt.Errorf("%w: bitmap has %d bits set, %d live slots", ErrCorrupt, s.valid.count(), liveCount)
	}

	return nil
}
