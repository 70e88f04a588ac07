//go:build slab_slot64 && !slab_slotuint

package slab

// Slot is a stable handle naming one storage cell of a [Slab].
type Slot uint64
