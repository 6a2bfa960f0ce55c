package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/cputensor/internal/kernel/vector"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadParsesYAML(t *testing.T) {
	path := writeConfig(t, "thread_count: \"4\"\nmath_mode: approximate\n")
	cfg := Load(path)
	assert.Equal(t, uint32(4), cfg.ResolveThreadCount())
	assert.Equal(t, "approximate", cfg.ResolveMathMode())
}

func TestResolveThreadCountAutoMeansHardwareConcurrency(t *testing.T) {
	cfg := Config{ThreadCount: "auto"}
	assert.GreaterOrEqual(t, cfg.ResolveThreadCount(), uint32(1))
}

func TestResolveMathModeDefaultsToPrecise(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, "precise", cfg.ResolveMathMode())
}

func TestApplySetsVectorMathMode(t *testing.T) {
	defer vector.SetMathMode(vector.Precise)

	Config{MathMode: "approximate"}.Apply()
	assert.Equal(t, vector.Approximate, vector.MathModeActive())

	Config{MathMode: "precise"}.Apply()
	assert.Equal(t, vector.Precise, vector.MathModeActive())
}

func TestLoadFatalOnMissingFile(t *testing.T) {
	assert.Panics(t, func() { Load(filepath.Join(t.TempDir(), "missing.yaml")) })
}
