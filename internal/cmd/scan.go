package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/joelklabo/markdowntown/internal/cmdutil"
	"github.com/joelklabo/markdowntown/internal/config"
	oerrors "github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/output"
	"github.com/joelklabo/markdowntown/internal/scan"
)

type scanOptions struct {
	scan      cmdutil.ScanFlags
	out       cmdutil.OutputFlags
	showFiles bool
}

// NewScanCmd creates the scan command.
func NewScanCmd(cfg *config.GlobalConfig) *cobra.Command {
	opts := &scanOptions{}

	c := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Enumerate a repository the way the simulator sees it",
		Long: `Walk a directory and report how many files were considered and kept.

VCS, dependency and build directories are skipped (see --ignore, --no-ignore).
The walk stops after --max-files files; the result is then marked truncated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runScan(c, cmdutil.ArgOrDefault(args, 0, "."), opts, cfg)
		},
	}

	opts.scan.AddTo(c)
	opts.out.AddTo(c)
	c.Flags().BoolVar(&opts.showFiles, "files", false, "Print the kept files as a tree")

	return c
}

func runScan(c *cobra.Command, dir string, opts *scanOptions, cfg *config.GlobalConfig) error {
	format, err := opts.out.Parse()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err}
	}

	result, err := scanDir(c, dir, &opts.scan, cfg)
	if err != nil {
		return err
	}

	if format != output.FormatText {
		return cmdutil.WriteEncoded(c.OutOrStdout(), format, result)
	}
	writeScanSummary(c.OutOrStdout(), dir, result, opts.showFiles)
	return nil
}

// scanDir resolves scan options and walks dir behind a spinner.
func scanDir(c *cobra.Command, dir string, flags *cmdutil.ScanFlags, cfg *config.GlobalConfig) (scan.ScanResult, error) {
	scanOpts, err := flags.Options(c, cfg)
	if err != nil {
		wrapped := oerrors.NewValidationError(err.Error(), "", config.KeyScanIncludeOnly, "Patterns are Go regular expressions.")
		cmdutil.PrintValidationError("invalid scan options", wrapped)
		return scan.ScanResult{}, &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: wrapped, Printed: true}
	}

	output.Debug("scanning directory", "dir", dir, "max_files", scanOpts.MaxFiles, "ignore", scanOpts.IgnoreDirs)

	var result scan.ScanResult
	err = output.RunWithSpinner(c.Context(), func(ctx context.Context) error {
		var scanErr error
		result, scanErr = scan.ScanDir(ctx, dir, scanOpts)
		return scanErr
	}, output.WithTitle("Scanning "+dir))
	if err != nil {
		cmdutil.PrintValidationError("scan failed", err)
		return scan.ScanResult{}, &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}

	if result.Truncated {
		output.Warn("scan stopped at the file limit; results are partial",
			"max_files", scanOpts.MaxFiles)
	}
	return result, nil
}

func writeScanSummary(w io.Writer, dir string, result scan.ScanResult, showFiles bool) {
	if showFiles && len(result.Tree.Files) > 0 {
		fmt.Fprint(w, output.RenderPathTree(dir, result.Tree.Paths()))
	}

	tbl := output.NewTable("CONSIDERED", "KEPT", "TRUNCATED")
	tbl.Row(fmt.Sprint(result.TotalFiles), fmt.Sprint(result.MatchedFiles), fmt.Sprint(result.Truncated))
	fmt.Fprintln(w, tbl.String())
}
