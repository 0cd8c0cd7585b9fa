package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joelklabo/markdowntown/internal/cmdutil"
	"github.com/joelklabo/markdowntown/internal/config"
	oerrors "github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the uamc configuration file",
		Long: `Validate the uamc configuration file against the internal schema.

The command validates ~/.uamc/config.yaml by default.
Use --config or UAMC_CONFIG to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *config.GlobalConfig) error {
	path := cfg.ConfigPath
	if path == "" {
		var err error
		path, err = config.GetConfigFile()
		if err != nil {
			return oerrors.Wrap(oerrors.ErrNotFound, "could not determine config file path")
		}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return err
	}

	if err := validator.ValidateFile(path); err != nil {
		cmdutil.PrintValidationError("config validation failed", err)
		return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}

	output.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file is valid: "+path))
	return nil
}
