//go:build !slab_unchecked

package slab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/slab/pkg/slab"
)

func Test_Checked_Reports_True_In_Default_Build(t *testing.T) {
	t.Parallel()

	assert.True(t, slab.Checked())
}

func Test_Get_Returns_ErrInvalidSlot_After_Remove_Until_Slot_Reused(t *testing.T) {
	t.Parallel()

	s := slab.MustWithCapacity[string](2)
	slots := pushAll(t, s, "a", "b")

	require.NoError(t, s.Remove(slots[0]))

	_, err := s.Get(slots[0])
	require.ErrorIs(t, err, slab.ErrInvalidSlot)

	_, err = s.GetMut(slots[0])
	require.ErrorIs(t, err, slab.ErrInvalidSlot)

	require.ErrorIs(t, s.Remove(slots[0]), slab.ErrInvalidSlot, "double remove must be rejected")
	assert.Equal(t, 1, s.Len())

	reused, err := s.PushFront("c")
	require.NoError(t, err)
	require.Equal(t, slots[0], reused, "the freed slot is handed out next")

	got, err := s.Get(reused)
	require.NoError(t, err)
	assert.Equal(t, "c", got)

	requireValid(t, s)
}

func Test_Get_Returns_ErrInvalidSlot_When_Slot_Never_Written(t *testing.T) {
	t.Parallel()

	s := slab.MustWithCapacity[int](4)
	pushAll(t, s, 1)

	for slot := slab.Slot(1); slot < 4; slot++ {
		_, err := s.Get(slot)
		require.ErrorIs(t, err, slab.ErrInvalidSlot, "slot %d", slot)
		assert.False(t, s.ContainsSlot(slot))
	}
}

func Test_Get_Returns_ErrInvalidSlot_After_PopBack(t *testing.T) {
	t.Parallel()

	s := slab.MustWithCapacity[int](2)
	pushAll(t, s, 1, 2)

	back, ok := s.Back()
	require.True(t, ok)

	_, ok = s.PopBackRef()
	require.True(t, ok)

	_, err := s.Get(back)
	require.ErrorIs(t, err, slab.ErrInvalidSlot)
	assert.False(t, s.ContainsSlot(back))
}

func Test_ContainsSlot_Tracks_Occupancy(t *testing.T) {
	t.Parallel()

	s := slab.MustWithCapacity[int](3)
	slots := pushAll(t, s, 1, 2)

	assert.True(t, s.ContainsSlot(slots[0]))
	assert.True(t, s.ContainsSlot(slots[1]))
	assert.False(t, s.ContainsSlot(2))
	assert.False(t, s.ContainsSlot(3), "out of range reports false")
	assert.False(t, s.ContainsSlot(slab.NUL))

	s.Clear()

	assert.False(t, s.ContainsSlot(slots[0]))
	assert.False(t, s.ContainsSlot(slots[1]))
}

func Test_At_Panics_When_Slot_Not_Live(t *testing.T) {
	t.Parallel()

	s := slab.MustWithCapacity[int](2)
	slots := pushAll(t, s, 1)

	assert.Panics(t, func() { s.At(1) }, "never written")

	require.NoError(t, s.Remove(slots[0]))
	assert.Panics(t, func() { s.At(slots[0]) }, "removed")
}
