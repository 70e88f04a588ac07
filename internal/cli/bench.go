package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/slab/internal/config"
	"github.com/calvinalkan/slab/pkg/slab"
)

const defaultBenchSize = 10_000

// BenchCmd returns the bench command.
func BenchCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	size := fs.IntP("size", "n", defaultBenchSize, "Slab capacity to benchmark")
	ops := fs.Int("ops", 0, "Random get operations (default: bench_ops from config)")
	seed := fs.Uint64("seed", 0, "Random seed (0 picks one from the clock)")

	return &Command{
		Flags: fs,
		Usage: "bench [flags]",
		Short: "Time push_front, get, remove+push_front and iteration",
		Long: `Fill a slab of --size ints, then time random gets, remove+push_front
slot reuse and repeated full iterations. Reports total and per-op time.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			n := *ops
			if n <= 0 {
				n = cfg.BenchOps
			}

			s := *seed
			if s == 0 {
				s = uint64(time.Now().UnixNano())
			}

			return execBench(ctx, o, *size, n, s)
		},
	}
}

// BenchResult is the timing of one benchmark phase.
type BenchResult struct {
	Name  string
	Ops   int
	Total time.Duration
}

func (r BenchResult) perOp() time.Duration {
	if r.Ops == 0 {
		return 0
	}

	return r.Total / time.Duration(r.Ops)
}

const iterRounds = 100

func execBench(ctx context.Context, o *IO, size, ops int, seed uint64) error {
	if size <= 0 {
		return fmt.Errorf("bench: size must be positive, got %d", size)
	}

	s, err := slab.WithCapacity[int](size)
	if err != nil {
		return fmt.Errorf("bench: %w", err)
	}

	o.Printf("Benchmarking slab with capacity %d (seed %d)\n", size, seed)
	o.Println("------------------------------------------")

	results, sum, err := runBench(ctx, s, ops, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return err
	}

	for _, r := range results {
		o.Printf("%-18s %12v total, %10v per op (%d ops)\n", r.Name+":", r.Total, r.perOp(), r.Ops)
	}

	o.Printf("(sum: %d)\n", sum)

	return nil
}

// runBench fills s and runs the timed phases. s must be empty.
func runBench(ctx context.Context, s *slab.Slab[int], ops int, rng *rand.Rand) ([]BenchResult, int, error) {
	size := s.Cap()
	slots := make([]slab.Slot, 0, size)
	results := make([]BenchResult, 0, 4)
	sum := 0

	start := time.Now()

	for i := range size {
		slot, err := s.PushFront(i)
		if err != nil {
			return nil, 0, fmt.Errorf("bench: push %d: %w", i, err)
		}

		slots = append(slots, slot)
	}

	results = append(results, BenchResult{Name: "push_front", Ops: size, Total: time.Since(start)})

	start = time.Now()

	for range ops {
		if v, err := s.Get(slots[rng.IntN(len(slots))]); err == nil {
			sum += v
		}
	}

	results = append(results, BenchResult{Name: "get", Ops: ops, Total: time.Since(start)})

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	reuse := min(ops, size)
	start = time.Now()

	for i := range reuse {
		idx := i % len(slots)
		_ = s.Remove(slots[idx])

		slot, err := s.PushFront(i)
		if err != nil {
			return nil, 0, fmt.Errorf("bench: push after remove: %w", err)
		}

		slots[idx] = slot
	}

	results = append(results, BenchResult{Name: "remove+push_front", Ops: reuse, Total: time.Since(start)})

	start = time.Now()

	for range iterRounds {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		it := s.Iter()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			sum += *v
		}
	}

	results = append(results, BenchResult{Name: "iteration", Ops: iterRounds, Total: time.Since(start)})

	return results, sum, nil
}
