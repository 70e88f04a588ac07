package testutil

import (
	"fmt"

	"github.com/calvinalkan/slab/pkg/slab"
	"github.com/calvinalkan/slab/pkg/slab/model"
)

// Operation is one step applied to both the model and the real slab.
type Operation interface {
	fmt.Stringer
	isOperation()
}

// OpPushFront inserts Value at the front.
type OpPushFront struct{ Value int }

// OpPopBack removes the oldest element.
type OpPopBack struct{}

// OpPopBackRef removes the oldest element through the pointer-returning path.
type OpPopBackRef struct{}

// OpRemove deletes the element at Slot.
type OpRemove struct{ Slot slab.Slot }

// OpGet reads the element at Slot.
type OpGet struct{ Slot slab.Slot }

// OpSet overwrites the element at Slot.
type OpSet struct {
	Slot  slab.Slot
	Value int
}

// OpClear drops every element.
type OpClear struct{}

func (OpPushFront) isOperation()  {}
func (OpPopBack) isOperation()    {}
func (OpPopBackRef) isOperation() {}
func (OpRemove) isOperation()     {}
func (OpGet) isOperation()        {}
func (OpSet) isOperation()        {}
func (OpClear) isOperation()      {}

func (op OpPushFront) String() string { return fmt.Sprintf("PushFront(%d)", op.Value) }
func (OpPopBack) String() string      { return "PopBack()" }
func (OpPopBackRef) String() string   { return "PopBackRef()" }
func (op OpRemove) String() string    { return fmt.Sprintf("Remove(%d)", op.Slot) }
func (op OpGet) String() string       { return fmt.Sprintf("Get(%d)", op.Slot) }
func (op OpSet) String() string       { return fmt.Sprintf("Set(%d, %d)", op.Slot, op.Value) }
func (OpClear) String() string        { return "Clear()" }

// Result is the direct, observable outcome of an operation. Fields that an
// operation does not produce stay zero on both sides.
type Result struct {
	Slot  slab.Slot
	Value int
	OK    bool
	Err   error
}

// ApplyModel applies op to the model.
func ApplyModel(m *model.Model[int], op Operation) Result {
	switch o := op.(type) {
	case OpPushFront:
		slot, err := m.PushFront(o.Value)
		return Result{Slot: slot, Err: err}
	case OpPopBack:
		v, ok := m.PopBack()
		return Result{Value: v, OK: ok}
	case OpPopBackRef:
		v, ok := m.PopBack()
		return Result{Value: v, OK: ok}
	case OpRemove:
		return Result{Err: m.Remove(o.Slot)}
	case OpGet:
		v, err := m.Get(o.Slot)
		return Result{Value: v, Err: err}
	case OpSet:
		return Result{Err: m.Set(o.Slot, o.Value)}
	case OpClear:
		m.Clear()
		return Result{}
	default:
		panic(fmt.Sprintf("testutil: unknown operation %T", op))
	}
}

// ApplyReal applies op to the real slab.
func ApplyReal(s *slab.Slab[int], op Operation) Result {
	switch o := op.(type) {
	case OpPushFront:
		slot, err := s.PushFront(o.Value)
		return Result{Slot: slot, Err: err}
	case OpPopBack:
		v, ok := s.PopBack()
		return Result{Value: v, OK: ok}
	case OpPopBackRef:
		ref, ok := s.PopBackRef()
		if !ok {
			return Result{}
		}

		return Result{Value: *ref, OK: true}
	case OpRemove:
		return Result{Err: s.Remove(o.Slot)}
	case OpGet:
		v, err := s.Get(o.Slot)
		return Result{Value: v, Err: err}
	case OpSet:
		return Result{Err: s.Set(o.Slot, o.Value)}
	case OpClear:
		s.Clear()
		return Result{}
	default:
		panic(fmt.Sprintf("testutil: unknown operation %T", op))
	}
}
