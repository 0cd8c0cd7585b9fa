package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joelklabo/markdowntown/internal/cmdutil"
	"github.com/joelklabo/markdowntown/internal/config"
	oerrors "github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/output"
	"github.com/joelklabo/markdowntown/internal/scan"
	"github.com/joelklabo/markdowntown/internal/simulate"
)

type simulateOptions struct {
	scan      cmdutil.ScanFlags
	out       cmdutil.OutputFlags
	tool      string
	cwd       string
	threshold int
}

// NewSimulateCmd creates the simulate command.
func NewSimulateCmd(cfg *config.GlobalConfig) *cobra.Command {
	opts := &simulateOptions{}

	c := &cobra.Command{
		Use:   "simulate [dir]",
		Short: "Show which instruction files a tool would load",
		Long: fmt.Sprintf(`Scan a repository and list the instruction files a coding tool would load
when started in --cwd, in the tool's precedence order.

Tools: %s

Cursor rule front matter (alwaysApply, globs) is read from disk to decide
which .cursor/rules/*.mdc files apply.

Examples:
  uamc simulate --tool codex-cli --cwd apps/web
  uamc simulate ../repo --tool cursor -o json`, strings.Join(simulate.Tools(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSimulate(c, cmdutil.ArgOrDefault(args, 0, "."), opts, cfg)
		},
	}

	opts.scan.AddTo(c)
	opts.out.AddTo(c)
	c.Flags().StringVar(&opts.tool, "tool", "", "Tool to simulate (required)")
	c.Flags().StringVar(&opts.cwd, "cwd", "", "Repo-relative directory the tool starts in (default: root)")
	c.Flags().IntVar(&opts.threshold, "large-tree-threshold", simulate.DefaultLargeTreeThreshold,
		"Warn when the tree has more files than this (env: UAMC_SIMULATE_LARGETREETHRESHOLD)")
	_ = c.MarkFlagRequired("tool")

	return c
}

func runSimulate(c *cobra.Command, dir string, opts *simulateOptions, cfg *config.GlobalConfig) error {
	format, err := opts.out.Parse()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err}
	}

	threshold := cfg.Effective().Simulate.LargeTreeThreshold
	thresholdSet := c.Flags().Changed("large-tree-threshold")
	if thresholdSet {
		threshold = opts.threshold
	}
	config.LogResolvedValues([]config.ResolvedValue{
		cfg.ResolveFlag(config.KeySimulateLargeTreeThreshold, config.FlagValue{Value: opts.threshold, Set: thresholdSet}),
	})

	scanned, err := scanDir(c, dir, &opts.scan, cfg)
	if err != nil {
		return err
	}
	tree := withRuleContent(dir, scanned.Tree)

	result, err := simulate.Simulate(simulate.Input{
		Tool:               opts.tool,
		Tree:               tree,
		Cwd:                opts.cwd,
		LargeTreeThreshold: threshold,
	})
	if err != nil {
		cmdutil.PrintValidationError("simulation failed", err)
		return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}

	toolLog := output.ToolLogger(opts.tool)
	for _, w := range result.Warnings {
		toolLog.Warn(w.Message, "code", w.Code)
	}

	if format != output.FormatText {
		return cmdutil.WriteEncoded(c.OutOrStdout(), format, result)
	}
	writeSimulation(c.OutOrStdout(), opts.tool, opts.cwd, result)
	return nil
}

// withRuleContent attaches file content to Cursor rule files so front
// matter can be evaluated. Unreadable files stay content-less.
func withRuleContent(dir string, tree scan.RepoTree) scan.RepoTree {
	files := make([]scan.RepoFile, len(tree.Files))
	copy(files, tree.Files)
	for i, f := range files {
		if !strings.HasPrefix(f.Path, ".cursor/rules/") && !strings.Contains(f.Path, "/.cursor/rules/") {
			continue
		}
		if !strings.HasSuffix(f.Path, ".mdc") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.Path)))
		if err != nil {
			output.Debug("cannot read rule file", "path", f.Path, "error", err)
			continue
		}
		files[i].Content = string(data)
	}
	return scan.RepoTree{Files: files}
}

func writeSimulation(w io.Writer, tool, cwd string, result simulate.Result) {
	if cwd == "" {
		cwd = "."
	}
	fmt.Fprintf(w, "%s loads from %s:\n", output.StyleNoun.Render(tool), output.StyleNoun.Render(cwd))
	if len(result.Loaded) == 0 {
		fmt.Fprintln(w, output.StyleDim.Render("  no instruction files"))
		return
	}
	for i, f := range result.Loaded {
		fmt.Fprintf(w, "  %d. %s\n", i+1, f.Path)
	}
}
