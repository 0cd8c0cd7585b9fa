package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joelklabo/markdowntown/internal/cmdutil"
	"github.com/joelklabo/markdowntown/internal/config"
	oerrors "github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/output"
	"github.com/joelklabo/markdowntown/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *config.GlobalConfig) *cobra.Command {
	var (
		out   cmdutil.OutputFlags
		short bool
	)

	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show uamc version information.

Displays:
  - uamc version, commit, and build date
  - Go, CUE SDK and mcp-go versions`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := out.Parse()
			if err != nil {
				return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err}
			}

			info := version.Get()
			switch {
			case format != output.FormatText:
				return cmdutil.WriteEncoded(c.OutOrStdout(), format, info)
			case short:
				output.Fprintln(c.OutOrStdout(), info.Short())
			default:
				output.Fprintln(c.OutOrStdout(), info.String())
			}
			return nil
		},
	}

	out.AddTo(c)
	c.Flags().BoolVar(&short, "short", false, "Print only the version")

	return c
}
