// Package cli implements the slaby command line: a REPL over a string slab,
// a benchmark, and demos of the queue and pool built on top of it.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/slab/internal/config"
	"github.com/calvinalkan/slab/internal/fs"
)

// Run is the main entry point. Returns exit code.
//
// sigCh may be nil. When it fires, the running command's context is
// cancelled.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globals := flag.NewFlagSet("slaby", flag.ContinueOnError)
	globals.SetOutput(&strings.Builder{})
	globals.SetInterspersed(false)

	workDir := globals.StringP("cwd", "C", "", "Run as if started in `dir`")
	configPath := globals.StringP("config", "c", "", "Use specified config `file`")
	capacity := globals.Int("capacity", 0, "Slab capacity (overrides config)")
	benchOps := globals.Int("bench-ops", 0, "Default bench operation count (overrides config)")
	help := globals.BoolP("help", "h", false, "Show help")

	if len(args) > 0 {
		args = args[1:]
	}

	if err := globals.Parse(args); err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, globals, nil)

		return 1
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: *workDir,
		ConfigPath:      *configPath,
		Overrides: config.Overrides{
			Capacity:    *capacity,
			HasCapacity: globals.Changed("capacity"),
			BenchOps:    *benchOps,
		},
		Env: env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	commands := []*Command{
		ReplCmd(&cfg, in, fs.NewReal()),
		BenchCmd(&cfg),
		DemoCmd(),
		PrintConfigCmd(&cfg),
	}

	rest := globals.Args()
	if *help || len(rest) == 0 {
		printUsage(out, globals, commands)

		return 0
	}

	name := rest[0]

	var cmd *Command

	for _, c := range commands {
		if c.Name() == name {
			cmd = c

			break
		}
	}

	if cmd == nil {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", ErrUnknownCommand, name))
		printUsage(errOut, globals, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	return cmd.Run(ctx, NewIO(out, errOut), rest[1:])
}

// ErrUnknownCommand is returned for a command name that is not registered.
var ErrUnknownCommand = errors.New("unknown command")

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globals *flag.FlagSet, commands []*Command) {
	fprintln(w, `slaby - fixed-capacity slab playground

Usage: slaby [options] <command> [args]

Options:`)

	var buf strings.Builder
	globals.SetOutput(&buf)
	globals.PrintDefaults()
	globals.SetOutput(&strings.Builder{})
	_, _ = io.WriteString(w, buf.String())

	if len(commands) == 0 {
		return
	}

	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range commands {
		fprintln(w, c.HelpLine())
	}
}
