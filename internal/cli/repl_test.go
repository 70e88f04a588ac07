package cli_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/slab/internal/cli"
	"github.com/calvinalkan/slab/pkg/slab"
)

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func Test_Repl_Runs_Session_When_Input_Piped(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout, stderr, code := c.RunWithInput(script(
		"push a",
		"push b",
		"push c",
		"push d",
		"ls",
		"remove 1",
		"push d",
		"rev",
		"pop",
		"popref",
		"info",
		"check",
		"front",
		"set 1 z z",
		"get 1",
		"clear",
		"ls",
		"pop",
	), "--capacity", "3", "repl")
	require.Equal(t, 0, code, "stderr: %s", stderr)

	want := []string{
		"slot 0",
		"slot 1",
		"slot 2",
		"error: slab: full",
		"2: c",
		"1: b",
		"0: a",
		"removed slot 1",
		"slot 1",
		"0: a",
		"2: c",
		"1: d",
		"a",
		"c (slot 2 freed)",
		fmt.Sprintf("len=1 cap=3 free=2 empty=false full=false checked=%t", slab.Checked()),
		"ok",
		"1: d",
		"set slot 1",
		"z z",
		"cleared",
		"(empty)",
		"(empty)",
	}

	if diff := cmp.Diff(want, strings.Split(strings.TrimSpace(stdout), "\n")); diff != "" {
		t.Fatalf("session output mismatch (-want +got):\n%s", diff)
	}
}

func Test_Repl_Stops_When_Exit_Command(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRepl(script("push a", "exit", "push b"))

	assert.Equal(t, "slot 0", stdout)
}

func Test_Repl_Skips_Blank_And_Comment_Lines(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRepl(script("", "   ", "# note", "push a"))

	assert.Equal(t, "slot 0", stdout)
}

func Test_Repl_Reports_Errors_And_Continues(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRepl(script(
		"nope",
		"get",
		"get x",
		"get 99",
		"remove 99",
		"new -1",
		"push ok",
	))

	lines := strings.Split(stdout, "\n")
	require.Len(t, lines, 7)

	assert.Equal(t, "error: unknown command (type 'help' for commands): nope", lines[0])
	assert.Equal(t, "error: usage: get <slot>", lines[1])
	assert.Equal(t, `error: invalid slot "x"`, lines[2])
	assert.Equal(t, "error: slot 99: slab: invalid slot", lines[3])
	assert.Equal(t, "error: slot 99: slab: invalid slot", lines[4])
	assert.Equal(t, "error: capacity -1: slab: capacity too large for slot type", lines[5])
	assert.Equal(t, "slot 0", lines[6])
}

func Test_Repl_Uses_Configured_Capacity(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".slaby.json", `{"capacity": 1}`)

	stdout := c.MustRepl(script("push a", "push b", "info"))

	cli.AssertContains(t, stdout, "error: slab: full")
	cli.AssertContains(t, stdout, "len=1 cap=1 free=0 empty=false full=true")
}

func Test_Repl_Replaces_Slab_When_New(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRepl(script("push a", "new 2", "info", "push b"))

	cli.AssertContains(t, stdout, "new slab with capacity 2")
	cli.AssertContains(t, stdout, "len=0 cap=2 free=2")
	assert.True(t, strings.HasSuffix(stdout, "slot 0"))
}

func Test_Repl_PushAll_Keeps_Inserted_When_Full(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.RunWithInput(script("pushall a b c", "ls"), "--capacity", "2", "repl")
	require.Equal(t, 0, code, "stderr: %s", stderr)

	cli.AssertContains(t, stdout, "error: pushed 2 of 3: slab: full")
	cli.AssertContains(t, stdout, "1: b\n0: a")
}

func Test_Repl_Saves_And_Loads_Snapshot(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".slaby.json", `{"snapshot_dir": "snaps"}`)

	stdout, stderr, code := c.RunWithInput(script("push a", "push b", "push c", "remove 1", "save s.json"), "--capacity", "4", "repl")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	cli.AssertContains(t, stdout, "saved 2 values to "+filepath.Join(c.Dir, "snaps", "s.json"))

	saved := c.ReadFile("snaps/s.json")
	cli.AssertContains(t, saved, `"capacity": 4`)
	cli.AssertContains(t, saved, `"c"`)

	stdout = c.MustRepl(script("ls", "info"), "--load", "s.json")

	lines := strings.Split(stdout, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "loaded 2 values (capacity 4)", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ": c"), "front keeps newest value, got %q", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], ": a"), "back keeps oldest value, got %q", lines[2])
	cli.AssertContains(t, lines[3], "len=2 cap=4 free=2")
}

func Test_Repl_Load_Grows_When_Snapshot_Exceeds_Capacity(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("big.json", `{"capacity": 1, "values": ["x", "y", "z"]}`)

	stdout := c.MustRepl(script("load big.json", "rev"))

	cli.AssertContains(t, stdout, "loaded 3 values (capacity 16)")
	cli.AssertContains(t, stdout, ": z\n")
}

func Test_Repl_Load_Fails_When_File_Missing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("repl", "--load", "missing.json")
	cli.AssertContains(t, stderr, "read snapshot")

	stdout := c.MustRepl(script("load missing.json"))
	cli.AssertContains(t, stdout, "error: read snapshot")
}

func Test_Repl_Runs_Bench_When_Asked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRepl(script("bench 100"))

	cli.AssertContains(t, stdout, "remove+push_front:")
}

func Test_Repl_Prints_Help(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRepl(script("help"))

	cli.AssertContains(t, stdout, "push <value>")
	cli.AssertContains(t, stdout, "save <file>")
}
