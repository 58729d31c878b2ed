package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitishsanghi/robometrics/config"
)

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Framework.LogLevel)
	assert.Equal(t, "./out", cfg.Reporting.OutputDir)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("ROBOMETRICS_OUT", "/tmp/robometrics-out")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reporting:\n  output_dir: ${ROBOMETRICS_OUT}\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/robometrics-out", cfg.Reporting.OutputDir)
}

func TestValidateRejectsEmptyOutputDir(t *testing.T) {
	cfg := config.Default()
	cfg.Reporting.OutputDir = ""
	require.Error(t, cfg.Validate())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.SpeedLimitMPS = 2.5
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.5, loaded.Engine.SpeedLimitMPS)
}
