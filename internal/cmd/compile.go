package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/joelklabo/markdowntown/internal/archive"
	"github.com/joelklabo/markdowntown/internal/cmdutil"
	"github.com/joelklabo/markdowntown/internal/config"
	oerrors "github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/output"
	"github.com/joelklabo/markdowntown/internal/uam"
)

type compileOptions struct {
	targets cmdutil.TargetFlags
	out     cmdutil.OutputFlags
	outDir  string
	zipPath string
}

// NewCompileCmd creates the compile command.
func NewCompileCmd(cfg *config.GlobalConfig) *cobra.Command {
	opts := &compileOptions{}

	c := &cobra.Command{
		Use:   "compile <document>",
		Short: "Compile a UAM document into tool instruction files",
		Long: `Compile a UAM document (YAML or JSON) into the instruction files of one or
more coding tools.

Targets come from --target, then the document's targets, then the configured
default targets. Without --out-dir or --zip the result is only printed.

Examples:
  # Preview AGENTS.md output
  uamc compile agents.uam.yaml -t agents-md

  # Write every target of the document into the repository
  uamc compile agents.uam.yaml --out-dir .

  # Package the output as a zip
  uamc compile agents.uam.yaml -t cursor-rules -t windsurf-rules --zip rules.zip

  # Machine-readable result, keyed by target id
  uamc compile agents.uam.yaml -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCompile(c, args[0], opts, cfg)
		},
	}

	opts.targets.AddTo(c)
	opts.out.AddTo(c)
	c.Flags().StringVar(&opts.outDir, "out-dir", "", "Write compiled files under this directory")
	c.Flags().StringVar(&opts.zipPath, "zip", "", "Write compiled files into this zip archive")
	c.MarkFlagsMutuallyExclusive("out-dir", "zip")

	return c
}

func runCompile(c *cobra.Command, path string, opts *compileOptions, cfg *config.GlobalConfig) error {
	format, err := opts.out.Parse()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err}
	}

	res, err := cmdutil.CompileDocument(cmdutil.CompileDocumentOpts{
		Path:       path,
		Targets:    opts.targets.Targets,
		TargetsSet: c.Flags().Changed("target"),
		Config:     cfg,
	})
	if err != nil {
		return err
	}

	cmdutil.WriteWarnings(res.TargetIDs, res.Results)

	if format != output.FormatText {
		if err := cmdutil.WriteEncoded(c.OutOrStdout(), format, res.Results); err != nil {
			return err
		}
	} else {
		writeCompileSummary(c.OutOrStdout(), res)
	}

	if opts.outDir == "" && opts.zipPath == "" {
		return nil
	}

	files, err := cmdutil.AllFiles(res.TargetIDs, res.Results)
	if err != nil {
		cmdutil.PrintValidationError("cannot combine targets", err)
		return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
	}

	if opts.zipPath != "" {
		return writeZip(opts.zipPath, files)
	}
	return writeOutDir(opts.outDir, files)
}

// writeCompileSummary prints one file tree per target.
func writeCompileSummary(w io.Writer, res *cmdutil.CompileDocumentResult) {
	title := res.Document.Meta.Title
	if title == "" {
		title = "document"
	}
	total := 0
	for _, id := range res.TargetIDs {
		result := res.Results[id]
		total += len(result.Files)

		fmt.Fprintf(w, "%s %s\n", output.StyleDim.Render("t:"), output.StyleNoun.Render(id))
		if len(result.Files) == 0 {
			fmt.Fprintln(w, output.StyleDim.Render("  (no files)"))
			continue
		}
		files := make(map[string]string, len(result.Files))
		for _, f := range result.Files {
			files[f.Path] = fmt.Sprintf("%d bytes", len(f.Content))
		}
		fmt.Fprint(w, output.RenderFileTree(".", files))
	}
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Compiled %s into %s for %s",
		title, output.FormatCount(total, "file"), output.FormatCount(len(res.TargetIDs), "target"))))
}

func writeZip(path string, files []uam.CompiledFile) error {
	f, err := os.Create(path)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitPermissionDenied, Err: fmt.Errorf("creating %s: %w", path, err)}
	}
	if err := archive.CreateZip(f, files); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	output.Info(output.FormatCheckmark("wrote " + path), "files", len(files))
	return nil
}

func writeOutDir(dir string, files []uam.CompiledFile) error {
	statuses, err := cmdutil.WriteFiles(dir, files)
	sort.SliceStable(statuses, func(i, j int) bool { return statuses[i].Path < statuses[j].Path })
	for _, s := range statuses {
		output.Info(output.FormatFileLine(s.Path, s.Status))
	}
	if err != nil {
		cmdutil.PrintValidationError("writing compiled files failed", err)
		return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}
	return nil
}
