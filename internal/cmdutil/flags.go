// Package cmdutil provides shared command utilities for uamc subcommands.
// It centralizes flag group management, document loading and compilation,
// and output formatting helpers.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/joelklabo/markdowntown/internal/config"
	"github.com/joelklabo/markdowntown/internal/output"
	"github.com/joelklabo/markdowntown/internal/scan"
)

// TargetFlags holds the compile target selection (compile, diff).
type TargetFlags struct {
	Targets []string
}

// AddTo registers the target flags on the given cobra command.
func (f *TargetFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.Targets, "target", "t", nil,
		"Compile target id (can be repeated; default: document targets, then config)")
}

// ScanFlags holds flags for commands that scan a directory (scan, simulate).
type ScanFlags struct {
	MaxFiles    int
	IgnoreDirs  []string
	IncludeOnly []string
	NoIgnore    bool
}

// AddTo registers the scan flags on the given cobra command.
func (f *ScanFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.MaxFiles, "max-files", scan.DefaultMaxFiles,
		"Stop considering files after this many (env: UAMC_SCAN_MAXFILES)")
	cmd.Flags().StringArrayVar(&f.IgnoreDirs, "ignore", nil,
		"Directory name to skip (can be repeated; replaces the configured list)")
	cmd.Flags().StringArrayVar(&f.IncludeOnly, "include", nil,
		"Only keep paths matching this regular expression (can be repeated)")
	cmd.Flags().BoolVar(&f.NoIgnore, "no-ignore", false,
		"Do not skip any directories")
}

// Options resolves the scan options: flags override the loaded
// configuration, which already carries env and defaults.
func (f *ScanFlags) Options(cmd *cobra.Command, gc *config.GlobalConfig) (scan.Options, error) {
	cfg := *gc.Effective()

	resolved := []config.ResolvedValue{
		gc.ResolveFlag(config.KeyScanMaxFiles, config.FlagValue{Value: f.MaxFiles, Set: cmd.Flags().Changed("max-files")}),
		gc.ResolveFlag(config.KeyScanIgnoreDirs, config.FlagValue{Value: f.IgnoreDirs, Set: cmd.Flags().Changed("ignore")}),
		gc.ResolveFlag(config.KeyScanIncludeOnly, config.FlagValue{Value: f.IncludeOnly, Set: cmd.Flags().Changed("include")}),
	}
	config.LogResolvedValues(resolved)

	if cmd.Flags().Changed("max-files") {
		cfg.Scan.MaxFiles = f.MaxFiles
	}
	if cmd.Flags().Changed("ignore") {
		cfg.Scan.IgnoreDirs = f.IgnoreDirs
	}
	if f.NoIgnore {
		cfg.Scan.IgnoreDirs = []string{}
	}
	if cmd.Flags().Changed("include") {
		cfg.Scan.IncludeOnly = f.IncludeOnly
	}

	return cfg.ScanOptions()
}

// OutputFlags holds the --output flag.
type OutputFlags struct {
	Format string
}

// AddTo registers the output flag on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", string(output.FormatText),
		"Output format: text, json, yaml")
}

// Parse returns the selected format.
func (f *OutputFlags) Parse() (output.Format, error) {
	return output.ParseFormat(f.Format)
}

// ArgOrDefault returns args[i], or def when it is absent.
func ArgOrDefault(args []string, i int, def string) string {
	if len(args) > i && args[i] != "" {
		return args[i]
	}
	return def
}
