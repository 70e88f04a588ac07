//go:build slab_unchecked

package cli

import (
	"errors"

	"github.com/calvinalkan/slab/pkg/slab"
)

var errContainsUnavailable = errors.New("contains needs occupancy tracking (built with slab_unchecked)")

func containsSlot(*slab.Slab[string], slab.Slot) (bool, error) {
	return false, errContainsUnavailable
}
