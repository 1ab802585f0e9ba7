package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestResolveDefaultsWithoutFile(t *testing.T) {
	cfg, err := Resolve("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "rust", cfg.Render.Dialect)
	assert.Equal(t, "strict", cfg.Errors.Policy)
	assert.True(t, cfg.Cache.Enabled)
}

func TestResolveFindsFileUpwards(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `
[render]
dialect = "neutral"
jobs = 4

[errors]
policy = "lenient"
degrade = ["missing-id"]
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Resolve("", nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), cfg.Path)
	assert.Equal(t, "neutral", cfg.Render.Dialect)
	assert.Equal(t, 4, cfg.Render.Jobs)
	assert.True(t, cfg.Render.ShowNames, "unset keys keep their defaults")
	assert.Equal(t, "lenient", cfg.Errors.Policy)
	assert.Equal(t, []string{"missing-id"}, cfg.Errors.Degrade)
	assert.Equal(t, 100, cfg.Errors.MaxDiagnostics)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[render]\ndialekt = \"rust\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render.dialekt")
}

func TestLoadValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[render]\njobs = -1\n[errors]\nmax_diagnostics = -5\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[render].jobs")
	assert.Contains(t, err.Error(), "[errors].max_diagnostics")
}

func TestLoadSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[render\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestResolveExplicitMissing(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope.toml"), "")
	assert.Error(t, err)
}
