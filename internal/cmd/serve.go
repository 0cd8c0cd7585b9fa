package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joelklabo/markdowntown/internal/config"
	"github.com/joelklabo/markdowntown/internal/mcpserver"
	"github.com/joelklabo/markdowntown/internal/output"
)

// NewServeCmd creates the serve command.
func NewServeCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run an MCP server over stdio",
		Long: `Serve the compiler and the context simulator as MCP tools over stdio.

Tools:
  uam_compile       Compile a UAM document for one or more targets
  uam_simulate      Simulate which instruction files a tool loads
  uam_list_targets  List compile targets

Logs go to stderr; stdout carries the MCP protocol.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			s := mcpserver.New(mcpserver.Options{
				LargeTreeThreshold: cfg.Effective().Simulate.LargeTreeThreshold,
			})
			output.Debug("serving MCP over stdio")
			return mcpserver.ServeStdio(s)
		},
	}
}
