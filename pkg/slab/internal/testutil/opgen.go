package testutil

import (
	"github.com/calvinalkan/slab/pkg/slab"
	"github.com/calvinalkan/slab/pkg/slab/model"
)

// OpGenConfig weights the operation mix. Weights are relative; an operation
// with weight 0 is never generated.
type OpGenConfig struct {
	PushWeight    int
	PopWeight     int
	PopRefWeight  int
	RemoveWeight  int
	GetWeight     int
	SetWeight     int
	ClearWeight   int
	StaleSlotRate int // percent of slot picks that ignore the live set
}

// DefaultOpGenConfig is a balanced mix that keeps the slab hovering between
// empty and full. Stale picks are disabled in the unchecked build, where
// they are caller bugs rather than checked errors.
func DefaultOpGenConfig() OpGenConfig {
	cfg := OpGenConfig{
		PushWeight:    8,
		PopWeight:     3,
		PopRefWeight:  1,
		RemoveWeight:  4,
		GetWeight:     3,
		SetWeight:     2,
		ClearWeight:   0,
		StaleSlotRate: 20,
	}

	if !slab.Checked() {
		cfg.StaleSlotRate = 0
	}

	return cfg
}

// OpGenerator derives a deterministic operation stream from bytes.
type OpGenerator struct {
	stream   *ByteStream
	cfg      OpGenConfig
	capacity int
	nextVal  int
}

// NewOpGenerator returns a generator over data for a slab of capacity.
func NewOpGenerator(data []byte, capacity int, cfg OpGenConfig) *OpGenerator {
	return &OpGenerator{stream: NewByteStream(data), cfg: cfg, capacity: capacity}
}

// HasMore reports whether the generator has input left.
func (g *OpGenerator) HasMore() bool { return g.stream.HasMore() }

// Next returns the next operation. It consults the model only to choose
// slots, so both sides always see identical operations.
func (g *OpGenerator) Next(m *model.Model[int]) Operation {
	weights := []int{
		g.cfg.PushWeight, g.cfg.PopWeight, g.cfg.PopRefWeight, g.cfg.RemoveWeight,
		g.cfg.GetWeight, g.cfg.SetWeight, g.cfg.ClearWeight,
	}

	total := 0
	for _, w := range weights {
		total += w
	}

	if total == 0 {
		return OpPopBack{}
	}

	pick := int(g.stream.NextByte())<<8 | int(g.stream.NextByte())
	pick %= total

	kind := 0
	for kind < len(weights)-1 && pick >= weights[kind] {
		pick -= weights[kind]
		kind++
	}

	switch kind {
	case 0:
		g.nextVal++
		return OpPushFront{Value: g.nextVal}
	case 1:
		return OpPopBack{}
	case 2:
		return OpPopBackRef{}
	case 3:
		slot, ok := g.pickSlot(m)
		if !ok {
			return OpPopBack{}
		}

		return OpRemove{Slot: slot}
	case 4:
		slot, ok := g.pickSlot(m)
		if !ok {
			return OpPopBack{}
		}

		return OpGet{Slot: slot}
	case 5:
		slot, ok := g.pickSlot(m)
		if !ok {
			return OpPopBack{}
		}

		g.nextVal++

		return OpSet{Slot: slot, Value: g.nextVal}
	default:
		return OpClear{}
	}
}

// pickSlot returns a live slot, or with StaleSlotRate percent probability any
// slot in [0, capacity+2) so out-of-range and freed handles get exercised.
func (g *OpGenerator) pickSlot(m *model.Model[int]) (slab.Slot, bool) {
	if g.cfg.StaleSlotRate > 0 && g.stream.NextInt(100) < g.cfg.StaleSlotRate {
		return slab.Slot(g.stream.NextInt(g.capacity + 2)), true
	}

	slots := m.Slots()
	if len(slots) == 0 {
		return 0, false
	}

	return slots[g.stream.NextInt(len(slots))], true
}
