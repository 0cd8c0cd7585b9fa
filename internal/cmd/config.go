package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joelklabo/markdowntown/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the uamc CLI.`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))

	return c
}
