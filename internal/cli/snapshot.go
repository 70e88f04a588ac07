package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/calvinalkan/slab/internal/fs"
	"github.com/calvinalkan/slab/pkg/slab"
	"github.com/calvinalkan/slab/pkg/slab/bulk"
)

// snapshot is the on-disk form of a string slab. Values are front to back.
// Slots are not preserved: loading renumbers them.
type snapshot struct {
	Capacity int      `json:"capacity"`
	Values   []string `json:"values"`
}

// saveSnapshot writes s to path atomically, creating parent directories.
func saveSnapshot(fsys fs.FS, path string, s *slab.Slab[string]) error {
	snap := snapshot{
		Capacity: s.Cap(),
		Values:   slices.Collect(s.Values()),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data = append(data, '\n')

	if err := fsys.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

// loadSnapshot rebuilds a slab from path with the same front-to-back order.
// If the file lists more values than its capacity, the slab is sized up.
func loadSnapshot(fsys fs.FS, path string) (*slab.Slab[string], error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	if snap.Capacity == len(snap.Values) {
		return bulk.FromSlice(snap.Values)
	}

	return bulk.Collect(slices.Values(snap.Values), snap.Capacity)
}
