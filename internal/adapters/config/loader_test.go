package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ship/internal/adapters/config"
	"go.trai.ch/ship/internal/core/domain"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	loader := &config.FileLoader{Filename: "ship.yaml"}

	settings, err := loader.Load(t.TempDir())
	require.NoError(t, err)

	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Cache.MaxSizeMB, settings.Cache.MaxSizeMB)
	assert.Equal(t, defaults.Cache.RetentionDays, settings.Cache.RetentionDays)
	assert.Equal(t, defaults.Discover.ScanDepth, settings.Discover.ScanDepth)
	assert.True(t, settings.Cache.Enabled)
	assert.True(t, settings.Discover.Enabled)
}

func TestLoad_OverridesAndBackfill(t *testing.T) {
	cwd := t.TempDir()
	content := `
cache:
  enabled: false
  max_size_mb: 256
imports:
  scan_depth: 5
engine:
  command: pyinstaller-custom
`
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "ship.yaml"), []byte(content), 0o644))

	loader := &config.FileLoader{Filename: "ship.yaml"}
	settings, err := loader.Load(cwd)
	require.NoError(t, err)

	assert.False(t, settings.Cache.Enabled)
	assert.Equal(t, 256.0, settings.Cache.MaxSizeMB)
	// Unset values keep their defaults.
	assert.Equal(t, domain.DefaultRetentionDays, settings.Cache.RetentionDays)
	assert.Equal(t, 5, settings.Discover.ScanDepth)
	assert.True(t, settings.Discover.Enabled)
	assert.Equal(t, "pyinstaller-custom", settings.Engine.Command)
	assert.Equal(t, domain.DefaultOutputDir, settings.Engine.OutputDir)
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	cwd := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "ship.yaml"), []byte("cache: ["), 0o644))

	loader := &config.FileLoader{Filename: "ship.yaml"}
	_, err := loader.Load(cwd)
	require.Error(t, err)
}
