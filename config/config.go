// Package config handles intcode.toml run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrUnknownKey   = errors.New(f("unknown configuration key"))
	ErrPatchAddress = errors.New(f("patch address is not a number"))
)

// Config represents an intcode.toml run configuration.
type Config struct {
	Cpu     Cpu     `toml:"cpu"`
	Program Program `toml:"program"`
	Network Network `toml:"network"`
	Script  Script  `toml:"script"`

	// Dir is the directory containing the configuration (set at load time).
	Dir string `toml:"-"`
}

// Cpu configures the processor run modes and limits.
type Cpu struct {
	MemoryLimit  int  `toml:"memory_limit"`
	StepLimit    int  `toml:"step_limit"`
	HaltOnOutput bool `toml:"halt_on_output"`
	NoSuspend    bool `toml:"no_suspend"`
	Verbose      bool `toml:"verbose"`
}

// Program configures the program image and its initial input.
type Program struct {
	Path  string           `toml:"path"`
	Input []int64          `toml:"input"`
	Patch map[string]int64 `toml:"patch"` // Address to value.
}

// Network configures a chain of processors.
type Network struct {
	Phases   []int64 `toml:"phases"`
	Feedback bool    `toml:"feedback"`
	Signal   int64   `toml:"signal"`
}

// Script configures a Starlark driver.
type Script struct {
	Path string `toml:"path"`
}

// Parse decodes a configuration. Unknown keys are an error.
func Parse(text string) (*Config, error) {
	var cfg Config
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return nil, err
	}

	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	return &cfg, nil
}

// Load parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	cfg.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve returns path relative to the configuration directory.
func (cfg *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || cfg.Dir == "" {
		return path
	}
	return filepath.Join(cfg.Dir, path)
}

// Configure sets the processor run modes and limits.
func (cfg *Config) Configure(cp *cpu.Cpu) {
	cp.Memory.Limit = cfg.Cpu.MemoryLimit
	cp.StepLimit = cfg.Cpu.StepLimit
	cp.HaltOnOutput = cfg.Cpu.HaltOnOutput
	cp.NoSuspend = cfg.Cpu.NoSuspend
	cp.Verbose = cfg.Cpu.Verbose
}

// Apply sets the processor run modes and limits, and queues the initial
// input.
func (cfg *Config) Apply(cp *cpu.Cpu) {
	cfg.Configure(cp)
	cp.Push(cfg.Program.Input...)
}

// PatchProgram applies the configured patches to a program image.
// The image may not grow past the configured memory limit.
func (cfg *Config) PatchProgram(prog *cpu.Program) (err error) {
	for key, value := range cfg.Program.Patch {
		var addr int64
		addr, err = strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: '%s'", ErrPatchAddress, key)
		}
		err = prog.Patch(addr, value, cfg.Cpu.MemoryLimit)
		if err != nil {
			return
		}
	}

	return
}
