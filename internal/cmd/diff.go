package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joelklabo/markdowntown/internal/cmdutil"
	"github.com/joelklabo/markdowntown/internal/config"
	"github.com/joelklabo/markdowntown/internal/drift"
	oerrors "github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/output"
)

type diffOptions struct {
	targets cmdutil.TargetFlags
	out     cmdutil.OutputFlags
	noColor bool
}

// NewDiffCmd creates the diff command.
func NewDiffCmd(cfg *config.GlobalConfig) *cobra.Command {
	opts := &diffOptions{}

	c := &cobra.Command{
		Use:   "diff <document> [dir]",
		Short: "Show drift between compiled output and files on disk",
		Long: `Compile a UAM document and compare the result against the files in a
repository directory (default: current directory).

Reports files that would be added and files whose content differs, with a
structural diff of front matter and body. Files the compiler does not
produce are never reported.

Exit codes:
  0 - Repository matches the compiled output
  1 - Drift found or an error occurred
  2 - Validation error (invalid document or unknown target)`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(c, args[0], cmdutil.ArgOrDefault(args, 1, "."), opts, cfg)
		},
	}

	opts.targets.AddTo(c)
	opts.out.AddTo(c)
	c.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	return c
}

func runDiff(c *cobra.Command, docPath, dir string, opts *diffOptions, cfg *config.GlobalConfig) error {
	format, err := opts.out.Parse()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err}
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		err = oerrors.NewNotFoundError("repository directory not found", dir, "")
		cmdutil.PrintValidationError("diff failed", err)
		return &oerrors.ExitError{Code: oerrors.ExitNotFound, Err: err, Printed: true}
	}

	res, err := cmdutil.CompileDocument(cmdutil.CompileDocumentOpts{
		Path:       docPath,
		Targets:    opts.targets.Targets,
		TargetsSet: c.Flags().Changed("target"),
		Config:     cfg,
	})
	if err != nil {
		return err
	}
	cmdutil.WriteWarnings(res.TargetIDs, res.Results)

	files, err := cmdutil.AllFiles(res.TargetIDs, res.Results)
	if err != nil {
		cmdutil.PrintValidationError("cannot combine targets", err)
		return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
	}

	useColor := !opts.noColor && output.ColorEnabled() && format == output.FormatText
	result, err := drift.Compare(files, os.DirFS(dir), drift.Options{UseColor: useColor})
	if err != nil {
		return fmt.Errorf("computing diff: %w", err)
	}

	if format != output.FormatText {
		if err := cmdutil.WriteEncoded(c.OutOrStdout(), format, result); err != nil {
			return err
		}
	} else {
		modified := make([]output.ModifiedItem, len(result.Modified))
		for i, m := range result.Modified {
			modified[i] = output.ModifiedItem{Path: m.Path, Diff: m.Diff}
		}
		fmt.Fprint(c.OutOrStdout(), output.RenderDrift(result.Added, modified, len(result.Unchanged), output.GetStyles()))
	}

	if !result.HasChanges() {
		return nil
	}
	// Differences exit 1, following diff(1).
	return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: errors.New(result.Summary()), Printed: true}
}
