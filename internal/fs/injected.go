package fs

import (
	"errors"
	iofs "io/fs"
	"os"
)

// Op names an [FS] operation for fault injection.
type Op string

const (
	OpOpen        Op = "open"
	OpCreate      Op = "create"
	OpReadFile    Op = "readfile"
	OpWriteAtomic Op = "writeatomic"
	OpMkdirAll    Op = "mkdirall"
)

// InjectedError marks an error as intentionally injected by [Injected].
// It wraps the underlying error so errors.Is/As continue to work.
type InjectedError struct {
	Err error
}

func (e *InjectedError) Error() string { return e.Err.Error() }

func (e *InjectedError) Unwrap() error { return e.Err }

// IsInjected reports whether err (or any wrapped error) was injected.
func IsInjected(err error) bool {
	var injected *InjectedError
	return errors.As(err, &injected)
}

// Injected wraps an [FS] and fails the operations listed in Fail with a
// [*iofs.PathError] wrapped in [InjectedError]. Everything else passes
// through. Calls counts every attempted operation.
type Injected struct {
	Base  FS
	Fail  map[Op]error
	Calls map[Op]int
}

// NewInjected returns an [Injected] over base with no failures configured.
func NewInjected(base FS) *Injected {
	return &Injected{Base: base, Fail: map[Op]error{}, Calls: map[Op]int{}}
}

func (f *Injected) check(op Op, path string) error {
	f.Calls[op]++

	err, ok := f.Fail[op]
	if !ok {
		return nil
	}

	return &InjectedError{Err: &iofs.PathError{Op: string(op), Path: path, Err: err}}
}

func (f *Injected) Open(path string) (File, error) {
	if err := f.check(OpOpen, path); err != nil {
		return nil, err
	}

	return f.Base.Open(path)
}

func (f *Injected) Create(path string) (File, error) {
	if err := f.check(OpCreate, path); err != nil {
		return nil, err
	}

	return f.Base.Create(path)
}

func (f *Injected) ReadFile(path string) ([]byte, error) {
	if err := f.check(OpReadFile, path); err != nil {
		return nil, err
	}

	return f.Base.ReadFile(path)
}

func (f *Injected) WriteFileAtomic(path string, data []byte) error {
	if err := f.check(OpWriteAtomic, path); err != nil {
		return err
	}

	return f.Base.WriteFileAtomic(path, data)
}

func (f *Injected) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}

	return f.Base.MkdirAll(path, perm)
}
