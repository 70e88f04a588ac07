package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/slab/pkg/slab"
	"github.com/calvinalkan/slab/pkg/slab/model"
)

func Test_Model_Returns_ErrTooLarge_When_Capacity_Negative(t *testing.T) {
	t.Parallel()

	_, err := model.New[int](-1)
	require.ErrorIs(t, err, slab.ErrTooLarge)
}

func Test_Model_Hands_Out_Slots_In_Ascending_Order_When_Fresh(t *testing.T) {
	t.Parallel()

	m, err := model.New[string](3)
	require.NoError(t, err)

	for want := range 3 {
		got, pushErr := m.PushFront("x")
		require.NoError(t, pushErr)
		assert.Equal(t, slab.Slot(want), got)
	}

	_, err = m.PushFront("overflow")
	require.ErrorIs(t, err, slab.ErrFull)
	assert.True(t, m.IsFull())
}

func Test_Model_Reuses_Last_Released_Slot_First(t *testing.T) {
	t.Parallel()

	m, err := model.New[int](4)
	require.NoError(t, err)

	a, _ := m.PushFront(1)
	b, _ := m.PushFront(2)
	_, _ = m.PushFront(3)

	require.NoError(t, m.Remove(a))
	require.NoError(t, m.Remove(b))

	got, err := m.PushFront(4)
	require.NoError(t, err)
	assert.Equal(t, b, got, "most recently released slot is reused first")
}

func Test_Model_Keeps_Front_To_Back_Order(t *testing.T) {
	t.Parallel()

	m, err := model.New[string](4)
	require.NoError(t, err)

	for _, v := range []string{"a", "b", "c"} {
		_, pushErr := m.PushFront(v)
		require.NoError(t, pushErr)
	}

	if diff := cmp.Diff([]string{"c", "b", "a"}, m.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	v, ok := m.PopBack()
	require.True(t, ok)
	assert.Equal(t, "a", v)
}

func Test_Model_Clone_Is_Independent(t *testing.T) {
	t.Parallel()

	m, err := model.New[int](2)
	require.NoError(t, err)

	slot, _ := m.PushFront(7)

	clone := m.Clone()
	if diff := cmp.Diff(m, clone); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	require.NoError(t, clone.Set(slot, 8))

	got, err := m.Get(slot)
	require.NoError(t, err)
	assert.Equal(t, 7, got, "mutating the clone must not affect the source model")
}
