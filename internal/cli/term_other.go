//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package cli

// isTerminal always reports false; the REPL falls back to plain line input.
func isTerminal(uintptr) bool { return false }
