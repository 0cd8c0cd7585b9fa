package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joelklabo/markdowntown/internal/cmdutil"
	"github.com/joelklabo/markdowntown/internal/compiler"
	"github.com/joelklabo/markdowntown/internal/config"
	oerrors "github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/output"
)

// NewTargetsCmd creates the targets command.
func NewTargetsCmd(_ *config.GlobalConfig) *cobra.Command {
	var out cmdutil.OutputFlags

	c := &cobra.Command{
		Use:   "targets",
		Short: "List compile targets",
		Long:  `List the compile targets accepted by 'uamc compile --target'.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := out.Parse()
			if err != nil {
				return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err}
			}

			adapters := compiler.DefaultRegistry().List()
			if format != output.FormatText {
				return cmdutil.WriteEncoded(c.OutOrStdout(), format, adapters)
			}

			tbl := output.NewTable("TARGET", "TOOL", "OUTPUT")
			for _, a := range adapters {
				tbl.Row(a.ID, a.Name, a.Description)
			}
			fmt.Fprintln(c.OutOrStdout(), tbl.String())
			return nil
		},
	}

	out.AddTo(c)
	return c
}
