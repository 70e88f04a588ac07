// Package fs is the filesystem seam used by slaby's snapshot and history
// code.
//
// The main types are:
//   - [FS]: the operations slaby needs
//   - [Real]: production implementation using [os] and atomic writes
//   - [Injected]: test implementation that fails chosen operations
package fs

import (
	"io"
	"os"
)

// File is an open file. Satisfied by [os.File].
type File interface {
	io.ReadWriteCloser
}

// FS defines the filesystem operations slaby performs.
type FS interface {
	// Open opens a file for reading. See [os.Open].
	Open(path string) (File, error)

	// Create creates or truncates a file for writing. See [os.Create].
	Create(path string) (File, error)

	// ReadFile reads an entire file. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data via temp file + rename so readers never
	// observe a partial file.
	WriteFileAtomic(path string, data []byte) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error
}

var _ File = (*os.File)(nil)
