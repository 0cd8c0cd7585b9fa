// Package drift compares compiled instruction files with the copies already
// present in a repository.
package drift

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"

	"github.com/joelklabo/markdowntown/internal/uam"
)

// Result is a drift report. Files present in the repository but not
// produced by the compiler are not reported.
type Result struct {
	// Added files do not exist in the repository yet.
	Added []string `json:"added"`

	// Modified files exist with different content.
	Modified []ModifiedFile `json:"modified"`

	// Unchanged files match the compiled output byte for byte.
	Unchanged []string `json:"unchanged"`
}

// ModifiedFile is a file whose repository copy differs.
type ModifiedFile struct {
	Path string `json:"path"`

	// Diff is a rendered structural diff of front matter and body. It is
	// empty when the files differ only in front matter formatting.
	Diff string `json:"diff,omitempty"`
}

// HasChanges reports whether any file would be created or rewritten.
func (r *Result) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Modified) > 0
}

// Summary returns a one-line summary of the report.
func (r *Result) Summary() string {
	if !r.HasChanges() {
		return "No changes"
	}
	parts := make([]string, 0, 3)
	if len(r.Added) > 0 {
		parts = append(parts, fmt.Sprintf("%d added", len(r.Added)))
	}
	if len(r.Modified) > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", len(r.Modified)))
	}
	if len(r.Unchanged) > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", len(r.Unchanged)))
	}
	return strings.Join(parts, ", ")
}

// Options configures Compare.
type Options struct {
	// UseColor enables colorized diff output.
	UseColor bool
}

// Compare checks each compiled file against repo, in the order given.
func Compare(files []uam.CompiledFile, repo fs.FS, opts Options) (*Result, error) {
	result := &Result{
		Added:     []string{},
		Modified:  []ModifiedFile{},
		Unchanged: []string{},
	}

	for _, f := range files {
		current, err := fs.ReadFile(repo, f.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				result.Added = append(result.Added, f.Path)
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", f.Path, err)
		}

		if string(current) == f.Content {
			result.Unchanged = append(result.Unchanged, f.Path)
			continue
		}

		diff, err := diffDocuments(string(current), f.Content, opts.UseColor)
		if err != nil {
			return nil, fmt.Errorf("comparing %s: %w", f.Path, err)
		}
		result.Modified = append(result.Modified, ModifiedFile{Path: f.Path, Diff: diff})
	}
	return result, nil
}

// document is the structural view of an instruction file used for diffing.
type document struct {
	FrontMatter any    `json:"frontMatter,omitempty"`
	Body        string `json:"body"`
}

// splitDocument separates leading "---" front matter from the body. Front
// matter that does not parse as YAML is kept as raw text.
func splitDocument(content string) document {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return document{Body: normalized}
	}
	rest := normalized[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return document{Body: normalized}
	}

	raw := rest[:end]
	body := strings.TrimPrefix(rest[end+len("\n---\n"):], "\n")

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return document{FrontMatter: raw, Body: body}
	}
	return document{FrontMatter: fm, Body: body}
}

// diffDocuments renders a dyff report from the repository copy to the
// compiled copy.
func diffDocuments(current, compiled string, useColor bool) (string, error) {
	from, err := toInputFile("repository", splitDocument(current))
	if err != nil {
		return "", err
	}
	to, err := toInputFile("compiled", splitDocument(compiled))
	if err != nil {
		return "", err
	}

	report, err := dyff.CompareInputFiles(from, to)
	if err != nil {
		return "", fmt.Errorf("comparing documents: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}
	return renderReport(report, useColor)
}

func toInputFile(location string, doc document) (ytbx.InputFile, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return ytbx.InputFile{}, fmt.Errorf("serializing %s: %w", location, err)
	}
	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, fmt.Errorf("parsing %s: %w", location, err)
	}
	return ytbx.InputFile{Location: location, Documents: docs}, nil
}

func renderReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	writer := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := writer.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
