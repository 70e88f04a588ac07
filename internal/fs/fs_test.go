package fs_test

import (
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/slab/internal/fs"
)

func Test_Real_WriteFileAtomic_Replaces_Content(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")
	rfs := fs.NewReal()

	require.NoError(t, rfs.WriteFileAtomic(path, []byte("one")))
	require.NoError(t, rfs.WriteFileAtomic(path, []byte("two")))

	data, err := rfs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func Test_Real_Create_Then_Open_Round_Trips(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "history")
	rfs := fs.NewReal()

	require.NoError(t, rfs.MkdirAll(filepath.Dir(path), 0o750))

	w, err := rfs.Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "push a\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := rfs.Open(path)
	require.NoError(t, err)

	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "push a\n", string(data))
}

func Test_Injected_Fails_Only_Configured_Ops(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inj := fs.NewInjected(fs.NewReal())
	inj.Fail[fs.OpWriteAtomic] = syscall.ENOSPC

	err := inj.WriteFileAtomic(filepath.Join(dir, "x"), []byte("x"))
	require.ErrorIs(t, err, syscall.ENOSPC)
	assert.True(t, fs.IsInjected(err))

	require.NoError(t, inj.MkdirAll(filepath.Join(dir, "d"), 0o750))
	assert.Equal(t, 1, inj.Calls[fs.OpWriteAtomic])
	assert.Equal(t, 1, inj.Calls[fs.OpMkdirAll])

	_, err = inj.ReadFile(filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, fs.IsInjected(err), "real errors are not marked injected")
}
