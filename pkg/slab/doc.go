// Package slab provides a fixed-capacity slot arena with O(1) insertion at the
// front, O(1) removal at the back, and O(1) access or removal by stable handle.
//
// All storage is reserved by [WithCapacity]. After that, no operation
// allocates: elements live in one preallocated array and two linked lists
// (the live list and the free list) are threaded through shared next/prev
// link arrays.
//
// # Basic Usage
//
//	s, err := slab.WithCapacity[string](3)
//	if err != nil {
//	    // ErrTooLarge: capacity does not fit the Slot width
//	}
//
//	a, _ := s.PushFront("a")
//	b, _ := s.PushFront("b")
//	_, _ = s.PushFront("c")
//
//	v, err := s.Get(a) // "a", nil
//	_ = s.Remove(b)
//
//	for slot, v := range s.All() {
//	    // "c" first (most recently pushed), then "a"
//	}
//
//	oldest, ok := s.PopBack() // "a", true
//
// # Slots
//
// A [Slot] names one storage cell. It stays valid while the element it names
// is live and becomes invalid the moment that element is removed. A later
// [Slab.PushFront] may reuse the same slot for a different element.
//
// # Build Configuration
//
// Two properties are fixed at build time with tags:
//
//   - Slot width: uint32 by default, uint64 with slab_slot64, uint with
//     slab_slotuint. The maximum value of the width is the [NUL] sentinel and
//     bounds [MaxCapacity].
//   - Validity checking: on by default. The slab_unchecked tag removes the
//     occupancy bitmap. [Slab.Get], [Slab.GetMut] and [Slab.Remove] then only
//     bounds-check, [Slab.ContainsSlot] does not exist, and passing a slot
//     that is not live is a caller bug whose effects are not detected.
//
// # Errors
//
// Fallible operations return sentinel errors; compare with [errors.Is].
// Direct indexing with [Slab.At] never returns an error and panics on an
// invalid slot instead. [Slab.PopBack] reports an empty slab with a false
// result, not with [ErrEmpty].
//
// # Concurrency
//
// A Slab is single-owner and not safe for concurrent use. Callers sharing one
// must hold their own lock around every call. Mutating a Slab while an
// iterator over it is still in use panics with [ErrConcurrentModification].
package slab
