//go:build !slab_unchecked

package slab

import "github.com/bits-and-blooms/bitset"

const checked = true

// validity is the per-slot occupancy bitmap. A bit is set iff the slot is in
// the live list. The bitset is sized once and never extended: every index
// passed in is already bounds-checked against the capacity.
type validity struct {
	bits *bitset.BitSet
}

func newValidity(capacity int) validity {
	return validity{bits: bitset.New(uint(capacity))}
}

func (v validity) occupied(slot Slot) bool { return v.bits.Test(uint(slot)) }

func (v validity) mark(slot Slot) { v.bits.Set(uint(slot)) }

func (v validity) unmark(slot Slot) { v.bits.Clear(uint(slot)) }

func (v validity) reset() { v.bits.ClearAll() }

func (v validity) count() int { return int(v.bits.Count()) }

// ContainsSlot reports whether slot currently holds a live element.
// It never fails: out-of-range slots report false.
//
// Only available in the checked build.
func (s *Slab[T]) ContainsSlot(slot Slot) bool {
	return s.inRange(slot) && s.valid.occupied(slot)
}
