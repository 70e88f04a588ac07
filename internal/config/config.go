// Package config loads slaby's JSONC configuration.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/slab/pkg/slab"
)

// Config holds all configuration options.
type Config struct {
	// Capacity is the slab capacity the REPL and demos start with.
	Capacity int `json:"capacity"`

	// BenchOps is the default operation count for bench.
	BenchOps int `json:"bench_ops"`

	// HistoryFile is where the REPL keeps its line history. Empty disables
	// history.
	HistoryFile string `json:"history_file"`

	Prompt string `json:"prompt"`

	// SnapshotDir is where relative save/load paths are resolved.
	SnapshotDir string `json:"snapshot_dir"`

	// Resolved (computed, not serialized)
	EffectiveCwd   string `json:"-"`
	SnapshotDirAbs string `json:"-"`

	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string
	Project string
}

// FileName is the project config file name.
const FileName = ".slaby.json"

const (
	defaultBenchOps = 1_000_000
	defaultPrompt   = "slaby> "
)

// Default returns the default configuration. The history file is placed
// next to the global config when HOME or XDG_CONFIG_HOME is known.
func Default(env map[string]string) Config {
	cfg := Config{
		Capacity:    slab.DefaultCapacity,
		BenchOps:    defaultBenchOps,
		Prompt:      defaultPrompt,
		SnapshotDir: ".",
	}

	if dir := globalDir(env); dir != "" {
		cfg.HistoryFile = filepath.Join(dir, "history")
	}

	return cfg
}

// globalDir returns $XDG_CONFIG_HOME/slaby or ~/.config/slaby, or "" if
// neither can be determined.
func globalDir(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "slaby")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "slaby")
	}

	return ""
}

// Overrides are values set on the command line. Zero values mean unset.
type Overrides struct {
	Capacity    int
	HasCapacity bool
	BenchOps    int
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string // -C/--cwd; if empty, os.Getwd() is used
	ConfigPath      string // -c/--config
	Overrides       Overrides
	Env             map[string]string
}

// Load resolves configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global config ($XDG_CONFIG_HOME/slaby/config.json or ~/.config/slaby/config.json)
// 3. Project config (.slaby.json in the working directory, if it exists)
// 4. Explicit config file via ConfigPath
// 5. CLI overrides.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default(input.Env)

	if dir := globalDir(input.Env); dir != "" {
		path := filepath.Join(dir, "config.json")

		globalCfg, loaded, err := loadFile(path, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = path
			cfg = merge(cfg, globalCfg)
		}
	}

	projectPath, mustExist := filepath.Join(workDir, FileName), false

	if input.ConfigPath != "" {
		projectPath, mustExist = input.ConfigPath, true
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}

		if _, err := os.Stat(projectPath); err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, input.ConfigPath)
		}
	}

	projectCfg, loaded, err := loadFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg.Sources.Project = projectPath
		cfg = merge(cfg, projectCfg)
	}

	if input.Overrides.HasCapacity {
		cfg.Capacity = input.Overrides.Capacity
	}

	if input.Overrides.BenchOps != 0 {
		cfg.BenchOps = input.Overrides.BenchOps
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	cfg.SnapshotDirAbs = cfg.SnapshotDir
	if !filepath.IsAbs(cfg.SnapshotDirAbs) {
		cfg.SnapshotDirAbs = filepath.Join(workDir, cfg.SnapshotDirAbs)
	}

	return cfg, nil
}

// fileConfig is the on-disk form. Pointer fields distinguish "absent" from
// an explicit zero value such as "capacity": 0 or "history_file": "".
type fileConfig struct {
	Capacity    *int    `json:"capacity"`
	BenchOps    *int    `json:"bench_ops"`
	HistoryFile *string `json:"history_file"`
	Prompt      *string `json:"prompt"`
	SnapshotDir *string `json:"snapshot_dir"`
}

// loadFile reads and parses a config file. A missing file is not an error
// unless mustExist is set.
func loadFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return fileConfig{}, false, nil
		}

		return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	cfg, err := parse(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

// parse decodes JSONC (JSON with comments and trailing commas). Unknown
// fields are rejected.
func parse(data []byte) (fileConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg fileConfig

	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&cfg); err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func merge(base Config, overlay fileConfig) Config {
	if overlay.Capacity != nil {
		base.Capacity = *overlay.Capacity
	}

	if overlay.BenchOps != nil {
		base.BenchOps = *overlay.BenchOps
	}

	if overlay.HistoryFile != nil {
		base.HistoryFile = *overlay.HistoryFile
	}

	if overlay.Prompt != nil {
		base.Prompt = *overlay.Prompt
	}

	if overlay.SnapshotDir != nil && *overlay.SnapshotDir != "" {
		base.SnapshotDir = *overlay.SnapshotDir
	}

	return base
}

func validate(cfg Config) error {
	if cfg.Capacity < 0 || cfg.Capacity > slab.MaxCapacity {
		return fmt.Errorf("%w: %d (max %d)", ErrCapacityInvalid, cfg.Capacity, slab.MaxCapacity)
	}

	if cfg.BenchOps <= 0 {
		return fmt.Errorf("%w: %d", ErrBenchOpsInvalid, cfg.BenchOps)
	}

	if cfg.Prompt == "" {
		return ErrPromptEmpty
	}

	return nil
}

// Format renders the serializable fields as indented JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}

	return string(data), nil
}
