//go:build slab_unchecked

package slab

const checked = false

// validity is a no-op in the unchecked build. Every in-range slot is
// reported as occupied, so the caller must guarantee occupancy.
type validity struct{}

func newValidity(int) validity { return validity{} }

func (validity) occupied(Slot) bool { return true }

func (validity) mark(Slot) {}

func (validity) unmark(Slot) {}

func (validity) reset() {}

func (validity) count() int { return -1 }
