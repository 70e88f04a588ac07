// Package bulk builds and extends slabs from sequences.
//
// It sits strictly on top of the fixed-capacity core: it only uses
// [slab.WithCapacity], [slab.Slab.PushFront] and [slab.Slab.PopBack]. When a
// size hint turns out too small, [Collect] builds a larger slab and migrates
// the elements into it; a slab itself never grows.
package bulk

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/calvinalkan/slab/pkg/slab"
)

// Collect builds a slab whose front-to-back order equals the order of seq.
//
// sizeHint is the expected number of elements and becomes the initial
// capacity. If seq yields more, the slab is replaced by one with at least
// twice the capacity and the elements are migrated. The result's capacity
// is therefore >= the number of elements, not necessarily equal.
//
// Returns [slab.ErrTooLarge] if the required capacity cannot be represented.
func Collect[T any](seq iter.Seq[T], sizeHint int) (*slab.Slab[T], error) {
	items := slices.Collect(seq)

	return build(items, max(sizeHint, 0))
}

// FromSlice builds a slab holding items with capacity len(items).
// Front-to-back order equals slice order.
func FromSlice[T any](items []T) (*slab.Slab[T], error) {
	return build(items, len(items))
}

func build[T any](items []T, capacity int) (*slab.Slab[T], error) {
	s, err := slab.WithCapacity[T](capacity)
	if err != nil {
		return nil, fmt.Errorf("bulk: initial capacity %d: %w", capacity, err)
	}

	// Push in reverse so the first item ends up at the front.
	for i := len(items) - 1; i >= 0; i-- {
		_, err := s.PushFront(items[i])
		if err == nil {
			continue
		}

		if !errors.Is(err, slab.ErrFull) {
			return nil, err
		}

		s, err = grow(s)
		if err != nil {
			return nil, err
		}

		if _, err := s.PushFront(items[i]); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// grow returns a slab with at least double the capacity holding the same
// elements in the same order. The old slab is drained.
func grow[T any](old *slab.Slab[T]) (*slab.Slab[T], error) {
	capacity := max(old.Cap()*2, slab.DefaultCapacity)
	if capacity > slab.MaxCapacity || capacity < old.Cap() {
		capacity = slab.MaxCapacity
	}

	if capacity <= old.Cap() {
		return nil, fmt.Errorf("bulk: grow past capacity %d: %w", old.Cap(), slab.ErrTooLarge)
	}

	s, err := slab.WithCapacity[T](capacity)
	if err != nil {
		return nil, fmt.Errorf("bulk: grow to capacity %d: %w", capacity, err)
	}

	// Oldest first: each PopBack/PushFront pair rebuilds the same order.
	for {
		v, ok := old.PopBack()
		if !ok {
			break
		}

		if _, err := s.PushFront(v); err != nil {
			return nil, fmt.Errorf("bulk: migrate: %w", err)
		}
	}

	return s, nil
}

// Extend pushes every item of seq to the front of s, in order, so the last
// item ends up at the front.
//
// Extend cannot fail: running out of capacity is fatal and panics. Use
// [TryExtend] when overflow is expected.
func Extend[T any](s *slab.Slab[T], seq iter.Seq[T]) {
	n, err := TryExtend(s, seq)
	if err != nil {
		panic(fmt.Sprintf("bulk: Extend after %d items: %v", n, err))
	}
}

// TryExtend is like [Extend] but stops at the first item that does not fit
// and returns [slab.ErrFull] with the number of items inserted. Items
// already inserted stay in s.
func TryExtend[T any](s *slab.Slab[T], seq iter.Seq[T]) (int, error) {
	n := 0

	for v := range seq {
		if _, err := s.PushFront(v); err != nil {
			return n, err
		}

		n++
	}

	return n, nil
}
