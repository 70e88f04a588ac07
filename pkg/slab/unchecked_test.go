//go:build slab_unchecked

package slab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/slab/pkg/slab"
)

func Test_Checked_Reports_False_In_Unchecked_Build(t *testing.T) {
	t.Parallel()

	assert.False(t, slab.Checked())
}

// Only the bounds check survives in the unchecked build; reading a free
// in-range slot is the caller's problem and yields the zeroed cell.
func Test_Get_Skips_Occupancy_Check_In_Unchecked_Build(t *testing.T) {
	t.Parallel()

	s := slab.MustWithCapacity[int](2)

	got, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = s.Get(2)
	require.ErrorIs(t, err, slab.ErrInvalidSlot)
}
