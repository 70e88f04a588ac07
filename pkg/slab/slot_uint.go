//go:build slab_slotuint

package slab

// Slot is a stable handle naming one storage cell of a [Slab].
type Slot uint
