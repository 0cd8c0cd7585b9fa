package cmdutil

import (
	"errors"
	"fmt"

	"github.com/joelklabo/markdowntown/internal/compiler"
	"github.com/joelklabo/markdowntown/internal/config"
	oerrors "github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/output"
	"github.com/joelklabo/markdowntown/internal/uam"
)

// CompileDocumentOpts holds the inputs for CompileDocument.
type CompileDocumentOpts struct {
	// Path is the UAM document to load.
	Path string
	// Targets are the --target flag values.
	Targets []string
	// TargetsSet is true when --target was given.
	TargetsSet bool
	// Config is the global configuration.
	Config *config.GlobalConfig
	// Registry overrides compiler.DefaultRegistry.
	Registry *compiler.Registry
}

// CompileDocumentResult is a loaded document with its compile results.
type CompileDocumentResult struct {
	Document *uam.Document
	// TargetIDs are the targets that ran, in request order.
	TargetIDs []string
	Results   map[string]uam.CompileResult
}

// LoadDocument loads and validates a UAM document. On failure it reports
// the error and returns an *ExitError with Printed set.
func LoadDocument(path string) (*uam.Document, error) {
	output.Debug("loading document", "path", path)

	doc, err := uam.LoadFile(path)
	if err != nil {
		PrintValidationError("loading document failed", err)
		return nil, &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}
	return doc, nil
}

// ResolveTargets picks compile targets with precedence:
// (1) --target flags, (2) the document's targets, (3) config targets.
func ResolveTargets(opts CompileDocumentOpts, doc *uam.Document) []string {
	if opts.TargetsSet && len(opts.Targets) > 0 {
		return opts.Targets
	}
	if ids := doc.TargetIDs(); len(ids) > 0 {
		return ids
	}
	return opts.Config.Effective().Targets
}

// CompileDocument loads the document at opts.Path and compiles it for the
// resolved targets. Every failure is reported before an *ExitError with
// Printed set is returned.
func CompileDocument(opts CompileDocumentOpts) (*CompileDocumentResult, error) {
	doc, err := LoadDocument(opts.Path)
	if err != nil {
		return nil, err
	}

	reg := opts.Registry
	if reg == nil {
		reg = compiler.DefaultRegistry()
	}

	ids := ResolveTargets(opts, doc)
	output.Debug("compiling document",
		"path", opts.Path,
		"scopes", len(doc.Scopes),
		"blocks", len(doc.Blocks),
		"targets", ids,
	)

	results, err := compiler.Compile(reg, doc, ids)
	if err != nil {
		PrintValidationError("compile failed", err)
		return nil, &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}

	return &CompileDocumentResult{
		Document:  doc,
		TargetIDs: orderedTargets(ids, results),
		Results:   results,
	}, nil
}

// orderedTargets returns the distinct requested ids that produced a result.
func orderedTargets(ids []string, results map[string]uam.CompileResult) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(results))
	for _, id := range ids {
		if _, ok := results[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// PrintValidationError prints an error in a user-friendly format. Detail
// errors are printed in full below a one-line summary.
func PrintValidationError(msg string, err error) {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(msg)
		output.Details(detail.Error())
		return
	}
	output.Error(msg, "error", err)
}

// WriteWarnings logs every compile warning under its target's logger.
func WriteWarnings(ids []string, results map[string]uam.CompileResult) int {
	count := 0
	for _, id := range ids {
		targetLog := output.TargetLogger(id)
		for _, w := range results[id].Warnings {
			targetLog.Warn(w)
			count++
		}
	}
	return count
}

// AllFiles flattens results into one file list in target order.
// It fails when two targets write the same path with different content.
func AllFiles(ids []string, results map[string]uam.CompileResult) ([]uam.CompiledFile, error) {
	owner := make(map[string]string)
	content := make(map[string]string)
	var files []uam.CompiledFile
	for _, id := range ids {
		for _, f := range results[id].Files {
			if prev, ok := owner[f.Path]; ok {
				if content[f.Path] != f.Content {
					return nil, oerrors.NewValidationError(
						fmt.Sprintf("targets %s and %s both write %s with different content", prev, id, f.Path),
						f.Path, "", "Compile these targets separately.")
				}
				continue
			}
			owner[f.Path] = id
			content[f.Path] = f.Content
			files = append(files, f)
		}
	}
	return files, nil
}
