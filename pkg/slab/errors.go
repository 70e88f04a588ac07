package slab

import "errors"

// Sentinel errors returned by slab operations.
//
// Callers should use [errors.Is] to check error types:
//
//	if errors.Is(err, slab.ErrFull) {
//	    // drop or pop something first
//	}
var (
	// ErrTooLarge indicates the requested capacity cannot be represented by
	// the Slot width (it must stay below [NUL]), or is negative.
	//
	// This is a configuration error.
	ErrTooLarge = errors.New("slab: capacity too large for slot type")

	// ErrFull indicates there is no free slot left for an insertion.
	//
	// Recovery: remove or pop an element first.
	ErrFull = errors.New("slab: full")

	// ErrInvalidSlot indicates the slot is out of range or, in the checked
	// build, does not currently hold an element.
	ErrInvalidSlot = errors.New("slab: invalid slot")

	// ErrEmpty indicates there is no element to remove.
	//
	// The core never returns it: [Slab.PopBack] reports emptiness with a false
	// result. Wrappers that expose removal as an error (for example a FIFO
	// queue's Dequeue) return it.
	ErrEmpty = errors.New("slab: empty")

	// ErrCorrupt indicates [Slab.Validate] found a broken invariant.
	//
	// In the checked build this only happens after a bug in the package. In
	// the unchecked build it is the usual result of using a stale slot.
	ErrCorrupt = errors.New("slab: corrupt")

	// ErrConcurrentModification is the panic value raised when a slab is
	// mutated while an iterator over it is still being consumed.
	//
	// This is a programming error.
	ErrConcurrentModification = errors.New("slab: mutated during iteration")
)
