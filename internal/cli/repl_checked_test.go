//go:build !slab_unchecked

package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calvinalkan/slab/internal/cli"
)

func Test_Repl_Contains_Tracks_Live_Slots(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRepl(script("push a", "contains 0", "contains 1", "remove 0", "contains 0", "get 0"))

	assert.Equal(t, "slot 0\ntrue\nfalse\nremoved slot 0\nfalse\nerror: slot 0: slab: invalid slot", stdout)
}
