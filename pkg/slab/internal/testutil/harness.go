package testutil

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/slab/pkg/slab"
	"github.com/calvinalkan/slab/pkg/slab/model"
)

// DefaultMaxFuzzOperations caps the operations applied per fuzz input.
const DefaultMaxFuzzOperations = 2000

// RunConfig controls how often the harness compares full state.
type RunConfig struct {
	MaxOps          int
	CompareEveryN   int // 1 compares after every operation
	ValidateEveryOp bool
}

// ObservableState is everything a caller can learn about a slab without
// mutating it.
type ObservableState struct {
	Len      int
	Free     int
	IsFull   bool
	IsEmpty  bool
	Slots    []slab.Slot
	Values   []int
	Backward []int
	Occupied []bool // per slot; nil in the unchecked build
}

// RunBehavior applies the generated operations to a fresh model and a fresh
// slab of the given capacity and fails on the first divergence.
func RunBehavior(t *testing.T, capacity int, gen *OpGenerator, cfg RunConfig) {
	t.Helper()

	m, err := model.New[int](capacity)
	if err != nil {
		t.Fatalf("model.New(%d): %v", capacity, err)
	}

	s, err := slab.WithCapacity[int](capacity)
	if err != nil {
		t.Fatalf("slab.WithCapacity(%d): %v", capacity, err)
	}

	var history []Operation

	for i := 0; gen.HasMore() && (cfg.MaxOps == 0 || i < cfg.MaxOps); i++ {
		op := gen.Next(m)
		history = append(history, op)

		want := ApplyModel(m, op)
		got := ApplyReal(s, op)

		if diff := cmp.Diff(want, got, cmpopts.EquateErrors()); diff != "" {
			t.Fatalf("op #%d %s result mismatch (-model +real):\n%s\nhistory: %v", i, op, diff, tail(history))
		}

		if cfg.ValidateEveryOp {
			if err := s.Validate(); err != nil {
				t.Fatalf("op #%d %s left slab invalid: %v\nhistory: %v", i, op, err, tail(history))
			}
		}

		if cfg.CompareEveryN > 0 && i%cfg.CompareEveryN == 0 {
			CompareState(t, m, s)
		}
	}

	CompareState(t, m, s)
}

// CompareState fails the test if the observable state of s differs from m.
func CompareState(t *testing.T, m *model.Model[int], s *slab.Slab[int]) {
	t.Helper()

	want := ModelState(m)
	got := RealState(s)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-model +real):\n%s", diff)
	}

	if s.Len()+s.Free() != s.Cap() {
		t.Fatalf("len %d + free %d != capacity %d", s.Len(), s.Free(), s.Cap())
	}

	if it := s.Iter(); it.Len() != s.Len() {
		t.Fatalf("iterator length %d, want %d", it.Len(), s.Len())
	}
}

// ModelState captures the model's observable state.
func ModelState(m *model.Model[int]) ObservableState {
	values := m.Values()
	backward := slices.Clone(values)
	slices.Reverse(backward)

	state := ObservableState{
		Len:      m.Len(),
		Free:     m.Free(),
		IsFull:   m.IsFull(),
		IsEmpty:  m.Len() == 0,
		Slots:    m.Slots(),
		Values:   values,
		Backward: backward,
	}

	if slab.Checked() {
		state.Occupied = make([]bool, m.Capacity)
		for i := range m.Capacity {
			state.Occupied[i] = m.Contains(slab.Slot(i))
		}
	}

	return state
}

// RealState captures the slab's observable state.
func RealState(s *slab.Slab[int]) ObservableState {
	state := ObservableState{
		Len:      s.Len(),
		Free:     s.Free(),
		IsFull:   s.IsFull(),
		IsEmpty:  s.IsEmpty(),
		Slots:    s.Slots(),
		Values:   make([]int, 0, s.Len()),
		Backward: make([]int, 0, s.Len()),
	}

	for v := range s.Values() {
		state.Values = append(state.Values, v)
	}

	for _, v := range s.Backward() {
		state.Backward = append(state.Backward, v)
	}

	if slab.Checked() {
		state.Occupied = make([]bool, s.Cap())
		for i := range s.Cap() {
			_, err := s.Get(slab.Slot(i))
			state.Occupied[i] = err == nil
		}
	}

	return state
}

func tail(history []Operation) []Operation {
	const keep = 20
	if len(history) <= keep {
		return history
	}

	return history[len(history)-keep:]
}
