package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joelklabo/markdowntown/internal/config"
	oerrors "github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *config.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the uamc configuration.

Writes a commented default config to ~/.uamc/config.yaml, or to the path
given by --config / UAMC_CONFIG.

Examples:
  # Initialize configuration
  uamc config init

  # Overwrite existing configuration
  uamc config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return c
}

func runConfigInit(c *cobra.Command, cfg *config.GlobalConfig, force bool) error {
	path := cfg.ConfigPath
	if path == "" {
		paths, err := config.DefaultPaths()
		if err != nil {
			return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
		}
		path = paths.ConfigFile
	}
	path, err := config.ExpandPath(path)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	if _, err := os.Stat(path); err == nil && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.NewPermissionError("could not create config directory",
			map[string]string{"Path": filepath.Dir(path)}, "")
	}
	if err := os.WriteFile(path, []byte(config.DefaultConfigTemplate), 0o600); err != nil {
		return oerrors.NewPermissionError("could not write config file",
			map[string]string{"Path": path}, "")
	}

	out := c.OutOrStdout()
	output.Fprintln(out, output.FormatCheckmark("Configuration initialized at "+path))
	output.Fprintln(out, "Validate with: uamc config vet")

	return nil
}
