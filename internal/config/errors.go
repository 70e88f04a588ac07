package config

import "errors"

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config")
	ErrCapacityInvalid    = errors.New("capacity out of range")
	ErrBenchOpsInvalid    = errors.New("bench_ops must be positive")
	ErrPromptEmpty        = errors.New("prompt cannot be empty")
)
