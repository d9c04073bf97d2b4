package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.Run.Debug)
	assert.Equal(t, "./outputs", cfg.Run.OutputDir)
	assert.Equal(t, 10000, cfg.Run.MaxCallDepth)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jal.toml")
	content := `
[run]
debug = true
max_call_depth = 500
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Run.Debug)
	assert.Equal(t, 500, cfg.Run.MaxCallDepth)
	assert.Equal(t, "./outputs", cfg.Run.OutputDir, "unset fields keep their default")
}

func TestFindConfigFileWalksUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "jal.toml"), []byte(""), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found := FindConfigFile(nested)
	assert.Equal(t, filepath.Join(root, "jal.toml"), found)
}

func TestFindConfigFileReturnsEmptyWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", FindConfigFile(dir))
}
