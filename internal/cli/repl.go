package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/slab/internal/config"
	"github.com/calvinalkan/slab/internal/fs"
	"github.com/calvinalkan/slab/pkg/slab"
	"github.com/calvinalkan/slab/pkg/slab/bulk"
)

// ReplCmd returns the repl command. Input is read from in: a terminal gets
// line editing and history, anything else is read line by line.
func ReplCmd(cfg *config.Config, in io.Reader, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("repl", flag.ContinueOnError)
	load := flags.StringP("load", "l", "", "Load a snapshot `file` before starting")

	return &Command{
		Flags: flags,
		Usage: "repl [flags]",
		Short: "Interactive shell over a slab of strings",
		Long: `Start an interactive shell over a slab of strings with the configured
capacity. Type 'help' inside the shell for commands.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			s, err := slab.WithCapacity[string](cfg.Capacity)
			if err != nil {
				return fmt.Errorf("capacity %d: %w", cfg.Capacity, err)
			}

			r := &repl{cfg: cfg, o: o, fsys: fsys, slab: s}

			if *load != "" {
				if err := r.load(*load); err != nil {
					return err
				}
			}

			lines := newLineReader(cfg, in, fsys)
			defer lines.Close()

			return r.run(ctx, lines)
		},
	}
}

// lineReader is the REPL's input source.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

func newLineReader(cfg *config.Config, in io.Reader, fsys fs.FS) lineReader {
	if f, ok := in.(*os.File); ok && f == os.Stdin && isTerminal(f.Fd()) && isTerminal(os.Stdout.Fd()) {
		return newTermReader(fsys, cfg.HistoryFile)
	}

	if in == nil {
		in = strings.NewReader("")
	}

	return &scanReader{sc: bufio.NewScanner(in)}
}

// termReader reads from an interactive terminal with liner.
type termReader struct {
	state       *liner.State
	fsys        fs.FS
	historyFile string
}

func newTermReader(fsys fs.FS, historyFile string) *termReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(complete)

	if historyFile != "" {
		if f, err := fsys.Open(historyFile); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}

	return &termReader{state: state, fsys: fsys, historyFile: historyFile}
}

func (t *termReader) Prompt(prompt string) (string, error) {
	line, err := t.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}

	return line, err
}

func (t *termReader) AppendHistory(line string) { t.state.AppendHistory(line) }

// Close saves history and restores the terminal.
func (t *termReader) Close() error {
	if t.historyFile != "" {
		if err := t.fsys.MkdirAll(filepath.Dir(t.historyFile), 0o750); err == nil {
			if f, err := t.fsys.Create(t.historyFile); err == nil {
				_, _ = t.state.WriteHistory(f)
				_ = f.Close()
			}
		}
	}

	return t.state.Close()
}

// scanReader reads piped input. Prompts are not printed.
type scanReader struct {
	sc *bufio.Scanner
}

func (s *scanReader) Prompt(string) (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}

	if err := s.sc.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

func (*scanReader) AppendHistory(string) {}

func (*scanReader) Close() error { return nil }

var replCommands = []string{
	"push", "pushall", "pop", "popref", "remove", "rm", "get", "set",
	"front", "back", "ls", "rev", "info", "check", "contains",
	"clear", "new", "save", "load", "bench", "help", "exit", "quit", "q",
}

func complete(line string) []string {
	var out []string

	lower := strings.ToLower(line)
	for _, c := range replCommands {
		if strings.HasPrefix(c, lower) {
			out = append(out, c)
		}
	}

	return out
}

type repl struct {
	cfg  *config.Config
	o    *IO
	fsys fs.FS
	slab *slab.Slab[string]
}

var errQuit = errors.New("quit")

func (r *repl) run(ctx context.Context, lines lineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := lines.Prompt(r.cfg.Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lines.AppendHistory(line)

		fields := strings.Fields(line)

		err = r.exec(ctx, strings.ToLower(fields[0]), fields[1:])
		if errors.Is(err, errQuit) {
			return nil
		}

		if err != nil {
			r.o.Println("error:", err)
		}
	}
}

var (
	errUsage       = errors.New("usage")
	errReplCommand = errors.New("unknown command (type 'help' for commands)")
)

func usage(text string) error {
	return fmt.Errorf("%w: %s", errUsage, text)
}

func (r *repl) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "exit", "quit", "q":
		return errQuit
	case "help", "?":
		r.printHelp()
		return nil
	case "push":
		return r.cmdPush(args)
	case "pushall":
		return r.cmdPushAll(args)
	case "pop":
		return r.cmdPop()
	case "popref":
		return r.cmdPopRef()
	case "remove", "rm":
		return r.withSlot(args, "remove <slot>", r.slab.Remove, "removed slot %d\n")
	case "get":
		return r.cmdGet(args)
	case "set":
		return r.cmdSet(args)
	case "front":
		return r.cmdPeek(r.slab.Front)
	case "back":
		return r.cmdPeek(r.slab.Back)
	case "ls":
		return r.list(r.slab.All())
	case "rev":
		return r.list(r.slab.Backward())
	case "info":
		r.o.Printf("len=%d cap=%d free=%d empty=%t full=%t checked=%t\n",
			r.slab.Len(), r.slab.Cap(), r.slab.Free(), r.slab.IsEmpty(), r.slab.IsFull(), slab.Checked())
		return nil
	case "check":
		if err := r.slab.Validate(); err != nil {
			return err
		}

		r.o.Println("ok")

		return nil
	case "contains":
		return r.cmdContains(args)
	case "clear":
		r.slab.Clear()
		r.o.Println("cleared")

		return nil
	case "new":
		return r.cmdNew(args)
	case "save":
		return r.cmdSave(args)
	case "load":
		if len(args) != 1 {
			return usage("load <file>")
		}

		return r.load(args[0])
	case "bench":
		return r.cmdBench(ctx, args)
	default:
		return fmt.Errorf("%w: %s", errReplCommand, cmd)
	}
}

func (r *repl) printHelp() {
	r.o.Println(`Commands:
  push <value>             Insert at the front, print its slot
  pushall <v1> <v2> ...    Push each value in order
  pop                      Remove and print the oldest value
  popref                   Like pop, via a pointer into the slab
  remove <slot>            Remove the value at slot
  get <slot>               Print the value at slot
  set <slot> <value>       Overwrite the value at slot
  front / back             Print the newest / oldest entry
  ls / rev                 List entries newest first / oldest first
  info                     Print len, cap, free and build mode
  check                    Verify internal links
  contains <slot>          Report whether slot is live
  clear                    Drop everything
  new <capacity>           Replace with an empty slab
  save <file>              Write a snapshot
  load <file>              Replace with a snapshot
  bench [ops]              Run the benchmark
  help                     Show this help
  exit / quit / q          Exit`)
}

func parseSlot(arg string) (slab.Slot, error) {
	v, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || v > uint64(slab.NUL) {
		return 0, fmt.Errorf("invalid slot %q", arg)
	}

	return slab.Slot(v), nil
}

func (r *repl) withSlot(args []string, use string, fn func(slab.Slot) error, format string) error {
	if len(args) != 1 {
		return usage(use)
	}

	slot, err := parseSlot(args[0])
	if err != nil {
		return err
	}

	if err := fn(slot); err != nil {
		return fmt.Errorf("slot %d: %w", slot, err)
	}

	r.o.Printf(format, slot)

	return nil
}

func (r *repl) cmdPush(args []string) error {
	if len(args) == 0 {
		return usage("push <value>")
	}

	slot, err := r.slab.PushFront(strings.Join(args, " "))
	if err != nil {
		return err
	}

	r.o.Println("slot", slot)

	return nil
}

func (r *repl) cmdPushAll(args []string) error {
	if len(args) == 0 {
		return usage("pushall <v1> <v2> ...")
	}

	n, err := bulk.TryExtend(r.slab, slices.Values(args))
	if err != nil {
		return fmt.Errorf("pushed %d of %d: %w", n, len(args), err)
	}

	r.o.Println("pushed", n)

	return nil
}

func (r *repl) cmdPop() error {
	v, ok := r.slab.PopBack()
	if !ok {
		r.o.Println("(empty)")
		return nil
	}

	r.o.Println(v)

	return nil
}

func (r *repl) cmdPopRef() error {
	slot, _ := r.slab.Back()

	v, ok := r.slab.PopBackRef()
	if !ok {
		r.o.Println("(empty)")
		return nil
	}

	r.o.Printf("%s (slot %d freed)\n", *v, slot)

	return nil
}

func (r *repl) cmdGet(args []string) error {
	if len(args) != 1 {
		return usage("get <slot>")
	}

	slot, err := parseSlot(args[0])
	if err != nil {
		return err
	}

	v, err := r.slab.Get(slot)
	if err != nil {
		return fmt.Errorf("slot %d: %w", slot, err)
	}

	r.o.Println(v)

	return nil
}

func (r *repl) cmdSet(args []string) error {
	if len(args) < 2 {
		return usage("set <slot> <value>")
	}

	value := strings.Join(args[1:], " ")

	return r.withSlot(args[:1], "set <slot> <value>", func(slot slab.Slot) error {
		return r.slab.Set(slot, value)
	}, "set slot %d\n")
}

func (r *repl) cmdPeek(end func() (slab.Slot, bool)) error {
	slot, ok := end()
	if !ok {
		r.o.Println("(empty)")
		return nil
	}

	r.o.Printf("%d: %s\n", slot, *r.slab.At(slot))

	return nil
}

func (r *repl) list(seq iter.Seq2[slab.Slot, string]) error {
	if r.slab.IsEmpty() {
		r.o.Println("(empty)")
		return nil
	}

	for slot, v := range seq {
		r.o.Printf("%d: %s\n", slot, v)
	}

	return nil
}

func (r *repl) cmdContains(args []string) error {
	if len(args) != 1 {
		return usage("contains <slot>")
	}

	slot, err := parseSlot(args[0])
	if err != nil {
		return err
	}

	ok, err := containsSlot(r.slab, slot)
	if err != nil {
		return err
	}

	r.o.Println(ok)

	return nil
}

func (r *repl) cmdNew(args []string) error {
	if len(args) != 1 {
		return usage("new <capacity>")
	}

	capacity, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid capacity %q", args[0])
	}

	s, err := slab.WithCapacity[string](capacity)
	if err != nil {
		return fmt.Errorf("capacity %d: %w", capacity, err)
	}

	r.slab = s
	r.o.Println("new slab with capacity", capacity)

	return nil
}

func (r *repl) snapshotPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(r.cfg.SnapshotDirAbs, name)
}

func (r *repl) cmdSave(args []string) error {
	if len(args) != 1 {
		return usage("save <file>")
	}

	path := r.snapshotPath(args[0])
	if err := saveSnapshot(r.fsys, path, r.slab); err != nil {
		return err
	}

	r.o.Printf("saved %d values to %s\n", r.slab.Len(), path)

	return nil
}

func (r *repl) load(name string) error {
	s, err := loadSnapshot(r.fsys, r.snapshotPath(name))
	if err != nil {
		return err
	}

	r.slab = s
	r.o.Printf("loaded %d values (capacity %d)\n", s.Len(), s.Cap())

	return nil
}

func (r *repl) cmdBench(ctx context.Context, args []string) error {
	ops := r.cfg.BenchOps

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return usage("bench [ops]")
		}

		ops = n
	}

	return execBench(ctx, r.o, defaultBenchSize, ops, uint64(ops))
}
