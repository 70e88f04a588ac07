package cli

import (
	"context"
	"errors"
	"fmt"
	"math"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/slab/pkg/fifo"
	"github.com/calvinalkan/slab/pkg/pool"
	"github.com/calvinalkan/slab/pkg/slab"
)

// ErrUnknownDemo is returned for a demo name other than queue or pool.
var ErrUnknownDemo = errors.New("unknown demo (want queue or pool)")

// DemoCmd returns the demo command.
func DemoCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("demo", flag.ContinueOnError),
		Usage: "demo <queue|pool>",
		Short: "Walk through the FIFO queue or object pool",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return ErrUnknownDemo
			}

			switch args[0] {
			case "queue":
				return demoQueue(o)
			case "pool":
				return demoPool(o)
			default:
				return fmt.Errorf("%w: %s", ErrUnknownDemo, args[0])
			}
		},
	}
}

func demoQueue(o *IO) error {
	q, err := fifo.New[int](5)
	if err != nil {
		return err
	}

	for i := 1; i <= 5; i++ {
		o.Println("enqueue:", i)

		if err := q.Enqueue(i); err != nil {
			return err
		}
	}

	if err := q.Enqueue(6); err != nil {
		o.Println("enqueue 6 rejected:", err)
	}

	for !q.IsEmpty() {
		v, err := q.Dequeue()
		if err != nil {
			return err
		}

		o.Println("dequeue:", v)
	}

	o.Println("empty:", q.IsEmpty())
	o.Println("reusing queue")

	for i := 10; i <= 12; i++ {
		if err := q.Enqueue(i); err != nil {
			return err
		}
	}

	o.Println("len:", q.Len())

	q.Clear()
	o.Println("after clear, empty:", q.IsEmpty())

	return nil
}

type bullet struct {
	x, y   float64
	vx, vy float64
}

func (b *bullet) update() {
	b.x += b.vx
	b.y += b.vy
}

const (
	demoPoolSize = 100
	demoBullets  = 25
	demoFrames   = 5
)

func demoPool(o *IO) error {
	p, err := pool.New[bullet](demoPoolSize)
	if err != nil {
		return err
	}

	o.Println("pool capacity:", p.Cap())

	active := make([]slab.Slot, 0, demoBullets)

	for i := range demoBullets {
		slot, b, err := p.Acquire()
		if err != nil {
			return err
		}

		angle := float64(i) * 0.25
		*b = bullet{vx: math.Cos(angle) * 5, vy: math.Sin(angle) * 5}

		active = append(active, slot)
	}

	o.Printf("fired %d bullets, in use: %d\n", demoBullets, p.InUse())

	for frame := 1; frame <= demoFrames; frame++ {
		for _, slot := range active {
			b, err := p.Get(slot)
			if err != nil {
				return err
			}

			b.update()
		}

		if frame%2 == 0 && len(active) > 0 {
			returned := len(active) / 2

			for range returned {
				last := active[len(active)-1]
				active = active[:len(active)-1]

				if err := p.Release(last); err != nil {
					return err
				}
			}

			o.Printf("frame %d: returned %d, in use: %d\n", frame, returned, p.InUse())
		} else {
			o.Printf("frame %d: in use: %d\n", frame, p.InUse())
		}
	}

	p.Reset()
	o.Println("pool reset, in use:", p.InUse())

	return nil
}
