package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/joelklabo/markdowntown/internal/errors"
)

func TestConfigInit_CreatesFile(t *testing.T) {
	home := isolateHome(t)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized")

	dir := filepath.Join(home, ".uamc")
	dirInfo, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	fileInfo, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fileInfo.Mode().Perm())
}

func TestConfigInit_ExistingConfig(t *testing.T) {
	isolateHome(t)

	_, err := execute(t, "config", "init")
	require.NoError(t, err)

	_, err = execute(t, "config", "init")
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))

	_, err = execute(t, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigVet(t *testing.T) {
	t.Run("freshly initialized config is valid", func(t *testing.T) {
		isolateHome(t)
		_, err := execute(t, "config", "init")
		require.NoError(t, err)

		out, err := execute(t, "config", "vet")
		require.NoError(t, err)
		assert.Contains(t, out, "Config file is valid")
	})

	t.Run("missing file", func(t *testing.T) {
		isolateHome(t)

		_, err := execute(t, "config", "vet")
		assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
	})

	t.Run("unknown key", func(t *testing.T) {
		home := isolateHome(t)
		path := writeFile(t, home, "custom.yaml", "registry: example.com\n")

		_, err := execute(t, "config", "vet", "--config", path)
		assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
	})
}
