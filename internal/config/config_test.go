package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sena-ops/cguard/internal/parser"
)

var order = []string{"cppcheck", "clang_tidy", "splint", "flawfinder"}

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 60*time.Second, cfg.RunTimeout)
	assert.True(t, cfg.Concurrent)
	assert.Equal(t, parser.Heuristic, cfg.BoundaryMode())
	assert.Len(t, cfg.Specs(order), 4)
}

func TestLoad(t *testing.T) {
	path := write(t, `
run_timeout: 30s
concurrent: false
strict_function_bounds: true
tools:
  splint:
    enabled: false
  cppcheck:
    binary: /opt/cppcheck/bin/cppcheck
    extra_args: ["--std=c99"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 30*time.Second, cfg.RunTimeout)
	assert.False(t, cfg.Concurrent)
	assert.Equal(t, parser.Strict, cfg.BoundaryMode())

	specs := cfg.Specs(order)
	require.Len(t, specs, 3)
	assert.Equal(t, "/opt/cppcheck/bin/cppcheck", specs[0].Binary)
	assert.Equal(t, "--std=c99", specs[0].Args[len(specs[0].Args)-1])
	assert.Equal(t, "clang_tidy", specs[1].Name)
	assert.Equal(t, "flawfinder", specs[2].Name)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, `{"probe_timeout": "2s", "tools": {"flawfinder": {"enabled": true}}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.ProbeTimeout)
	assert.Len(t, cfg.Specs(order), 4)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(write(t, "tools: [unclosed"))
	assert.Error(t, err)

	_, err = Load(write(t, "tools:\n  pclint: {}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clang_tidy, cppcheck, flawfinder, splint")

	_, err = Load(write(t, "run_timeout: 0s\n"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	_, err = Resolve("nope.yaml")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(DefaultPath, []byte("concurrent: false\n"), 0o644))
	cfg, err = Resolve("")
	require.NoError(t, err)
	assert.False(t, cfg.Concurrent)
}
