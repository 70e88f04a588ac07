package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calvinalkan/slab/internal/cli"
)

func Test_Run_Prints_Usage_When_No_Command(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun()

	cli.AssertContains(t, stdout, "Usage: slaby [options] <command> [args]")
	cli.AssertContains(t, stdout, "--cwd")
	cli.AssertContains(t, stdout, "--capacity")

	for _, name := range []string{"repl", "bench", "demo", "print-config"} {
		cli.AssertContains(t, stdout, "  "+name)
	}
}

func Test_Run_Prints_Usage_When_Help_Flag(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("--help")

	cli.AssertContains(t, stdout, "Commands:")
}

func Test_Run_Fails_When_Global_Flag_Unknown(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.Run("--invalid-flag", "repl")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	cli.AssertContains(t, stderr, "unknown flag")
	cli.AssertContains(t, stderr, "--invalid-flag")
}

func Test_Run_Fails_When_Command_Unknown(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("frobnicate")

	cli.AssertContains(t, stderr, "unknown command: frobnicate")
	cli.AssertContains(t, stderr, "Commands:")
}

func Test_Run_Fails_When_Capacity_Flag_Negative(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("--capacity", "-1", "repl")

	cli.AssertContains(t, stderr, "capacity out of range")
}

func Test_Run_Fails_When_Project_Config_Invalid(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".slaby.json", `{"capacity": "lots"}`)

	stderr := c.MustFail("print-config")

	cli.AssertContains(t, stderr, "invalid config")
}

func Test_Command_Prints_Help_When_Help_Flag(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("bench", "--help")

	cli.AssertContains(t, stdout, "Usage: slaby bench [flags]")
	cli.AssertContains(t, stdout, "--size")
	cli.AssertContains(t, stdout, "--ops")
}

func Test_Command_Fails_When_Flag_Unknown(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.Run("repl", "--bogus")

	assert.Equal(t, 1, code)
	cli.AssertContains(t, stderr, "unknown flag: --bogus")
	cli.AssertContains(t, stdout, "Usage: slaby repl")
}

func Test_PrintConfig_Shows_Defaults_Only_When_No_Files(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("print-config")

	cli.AssertContains(t, stdout, `"capacity": 16`)
	cli.AssertContains(t, stdout, "(defaults only)")
}

func Test_PrintConfig_Shows_Sources_When_Files_Loaded(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Env["XDG_CONFIG_HOME"] = c.Dir + "/xdg"
	c.WriteFile("xdg/slaby/config.json", `{"bench_ops": 7}`)
	c.WriteFile(".slaby.json", `{
		// project override
		"capacity": 8,
	}`)

	stdout := c.MustRun("--capacity", "9", "print-config")

	cli.AssertContains(t, stdout, `"capacity": 9`)
	cli.AssertContains(t, stdout, `"bench_ops": 7`)
	cli.AssertContains(t, stdout, "global_config="+c.Dir+"/xdg/slaby/config.json")
	cli.AssertContains(t, stdout, "project_config="+c.Dir+"/.slaby.json")
}

func Test_Demo_Queue_Dequeues_In_Order(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("demo", "queue")

	cli.AssertContains(t, stdout, "enqueue 6 rejected: slab: full")
	cli.AssertContains(t, stdout, "dequeue: 1\ndequeue: 2\ndequeue: 3\ndequeue: 4\ndequeue: 5")
	cli.AssertContains(t, stdout, "len: 3")
	cli.AssertContains(t, stdout, "after clear, empty: true")
}

func Test_Demo_Pool_Returns_Half_Every_Other_Frame(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("demo", "pool")

	cli.AssertContains(t, stdout, "pool capacity: 100")
	cli.AssertContains(t, stdout, "fired 25 bullets, in use: 25")
	cli.AssertContains(t, stdout, "frame 2: returned 12, in use: 13")
	cli.AssertContains(t, stdout, "frame 4: returned 6, in use: 7")
	cli.AssertContains(t, stdout, "pool reset, in use: 0")
}

func Test_Demo_Fails_When_Name_Unknown(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("demo", "stack")

	cli.AssertContains(t, stderr, "unknown demo")
}

func Test_Bench_Reports_Every_Phase(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("bench", "--size", "64", "--ops", "500", "--seed", "1")

	cli.AssertContains(t, stdout, "capacity 64 (seed 1)")

	for _, phase := range []string{"push_front:", "get:", "remove+push_front:", "iteration:"} {
		cli.AssertContains(t, stdout, phase)
	}
}

func Test_Bench_Fails_When_Size_Not_Positive(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("bench", "--size", "0")

	cli.AssertContains(t, stderr, "size must be positive")
}
