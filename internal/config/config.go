// Package config loads the on-disk form of the device descriptor: a small
// YAML document naming the thread count and math mode, parsed with
// gopkg.in/yaml.v3 the way the teacher's marshaller stack parses its own
// config documents.
package config

import (
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/itohio/cputensor/internal/kernel/vector"
	"github.com/itohio/cputensor/internal/obslog"
)

// Config is the on-disk counterpart of device.Descriptor plus the
// process-wide math mode selection.
type Config struct {
	ThreadCount string `yaml:"thread_count"`
	MathMode    string `yaml:"math_mode"`
}

// Load reads and parses a YAML config file at path. A missing or malformed
// file is a programmer-contract violation (the caller is expected to have
// validated the path already, out of scope here) and is fatal.
func Load(path string) Config {
	raw, err := os.ReadFile(path)
	if err != nil {
		obslog.Fatal("config: failed to read %s: %v", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		obslog.Fatal("config: failed to parse %s: %v", path, err)
	}
	return cfg
}

// ResolveThreadCount interprets ThreadCount: "" or "auto" or "0" means
// hardware concurrency, matching device.Descriptor{ThreadCount: 0}'s
// convention (§6).
func (c Config) ResolveThreadCount() uint32 {
	switch c.ThreadCount {
	case "", "auto", "0":
		return uint32(runtime.GOMAXPROCS(0))
	}
	n, err := strconv.ParseUint(c.ThreadCount, 10, 32)
	if err != nil {
		obslog.Fatal("config: invalid thread_count %q: %v", c.ThreadCount, err)
	}
	if n == 0 {
		return uint32(runtime.GOMAXPROCS(0))
	}
	return uint32(n)
}

// ResolveMathMode returns the configured math mode, defaulting to
// "precise".
func (c Config) ResolveMathMode() string {
	if c.MathMode == "" {
		return "precise"
	}
	return c.MathMode
}

// Apply pushes the configured math mode into internal/kernel/vector's
// process-wide setting. Call once at startup, before any kernel runs.
func (c Config) Apply() {
	switch c.ResolveMathMode() {
	case "approximate":
		vector.SetMathMode(vector.Approximate)
	default:
		vector.SetMathMode(vector.Precise)
	}
}
