//go:build !slab_unchecked

package cli

import "github.com/calvinalkan/slab/pkg/slab"

func containsSlot(s *slab.Slab[string], slot slab.Slot) (bool, error) {
	return s.ContainsSlot(slot), nil
}
