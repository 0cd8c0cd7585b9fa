package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/joelklabo/markdowntown/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		path := writeConfig(t, `
targets:
  - agents-md
  - cursor-rules
scan:
  maxFiles: 100
  ignoreDirs: [dist]
  includeOnly: ['\.md$']
simulate:
  largeTreeThreshold: 50
log:
  timestamps: false
`)

		cfg, err := NewLoader().Load(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"agents-md", "cursor-rules"}, cfg.Targets)
		assert.Equal(t, 100, cfg.Scan.MaxFiles)
		assert.Equal(t, []string{"dist"}, cfg.Scan.IgnoreDirs)
		assert.Equal(t, []string{`\.md$`}, cfg.Scan.IncludeOnly)
		assert.Equal(t, 50, cfg.Simulate.LargeTreeThreshold)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nonexistent.yaml")

		cfg, err := NewLoader().Load(path)

		require.NoError(t, err)
		assert.Equal(t, 5000, cfg.Scan.MaxFiles)
		assert.Equal(t, 200, cfg.Simulate.LargeTreeThreshold)
		assert.Contains(t, cfg.Scan.IgnoreDirs, "vendor")
	})

	t.Run("env vars override file values", func(t *testing.T) {
		t.Setenv("UAMC_SCAN_MAXFILES", "42")
		t.Setenv("UAMC_TARGETS", "github-copilot")
		path := writeConfig(t, "scan:\n  maxFiles: 100\n")

		cfg, err := NewLoader().Load(path)

		require.NoError(t, err)
		assert.Equal(t, 42, cfg.Scan.MaxFiles)
		assert.Equal(t, []string{"github-copilot"}, cfg.Targets)
	})

	t.Run("malformed file is a validation error", func(t *testing.T) {
		path := writeConfig(t, "scan: [unterminated\n")

		_, err := NewLoader().Load(path)

		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrValidation))
	})
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeConfig(t, "scan:\n  maxFiles: 0\n")

	cfg, err := NewLoader().LoadWithDefaults(path)

	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Scan.MaxFiles)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "UAMC_SCAN_MAXFILES", EnvName(KeyScanMaxFiles))
	assert.Equal(t, "UAMC_TARGETS", EnvName(KeyTargets))
	assert.Equal(t, "UAMC_SIMULATE_LARGETREETHRESHOLD", EnvName(KeySimulateLargeTreeThreshold))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is fine", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(dir))
	})

	t.Run("existing variables win", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
			[]byte("UAMC_DOTENV_NEW=from-file\nUAMC_DOTENV_SET=from-file\n"), 0o600))
		t.Setenv("UAMC_DOTENV_SET", "from-env")
		t.Setenv("UAMC_DOTENV_NEW", "")
		require.NoError(t, os.Unsetenv("UAMC_DOTENV_NEW"))

		require.NoError(t, LoadDotEnv(dir))

		assert.Equal(t, "from-file", os.Getenv("UAMC_DOTENV_NEW"))
		assert.Equal(t, "from-env", os.Getenv("UAMC_DOTENV_SET"))
	})
}

func TestConfigFileExists(t *testing.T) {
	path := writeConfig(t, "")

	exists, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ConfigFileExists(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.False(t, exists)
}
