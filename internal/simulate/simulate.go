// Package simulate answers which instruction files a coding tool would load
// from a repository tree when started in a given working directory.
//
// Simulate is a pure function over its Input: it never touches the
// filesystem and keeps no state between calls.
package simulate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/pathutil"
	"github.com/joelklabo/markdowntown/internal/scan"
)

// Tool ids understood by Simulate.
const (
	ToolGitHubCopilot = "github-copilot"
	ToolClaudeCode    = "claude-code"
	ToolGeminiCLI     = "gemini-cli"
	ToolCodexCLI      = "codex-cli"
	ToolCursor        = "cursor"
	ToolWindsurf      = "windsurf"
)

// Warning codes.
const (
	CodeLargeTree         = "scan-risk.large-tree"
	CodeCursorRules       = "scan-risk.cursor-rules"
	CodeCursorLegacy      = "cursor.legacy-rules"
	CodeCursorFrontMatter = "cursor.front-matter"
)

// DefaultLargeTreeThreshold is the file count above which a tree is
// reported as large.
const DefaultLargeTreeThreshold = 200

// Input is one simulation request.
type Input struct {
	// Tool is the tool id to simulate.
	Tool string

	// Tree is the enumerated repository. File content is optional; when
	// present it refines tools that read front matter.
	Tree scan.RepoTree

	// Cwd is the repo-relative directory the tool starts in.
	Cwd string

	// LargeTreeThreshold overrides DefaultLargeTreeThreshold when positive.
	LargeTreeThreshold int
}

// LoadedFile is one file the tool would load.
type LoadedFile struct {
	Path string `json:"path"`
}

// Warning is an advisory about the simulated setup. Warnings never remove
// files from Result.Loaded.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// Result lists loaded files in the tool's precedence order.
type Result struct {
	Loaded   []LoadedFile `json:"loaded"`
	Warnings []Warning    `json:"warnings"`
}

// resolver applies one tool's discovery rules.
type resolver func(t *treeIndex, cwd string) ([]string, []Warning)

var tools = map[string]resolver{
	ToolGitHubCopilot: rootFile(".github/copilot-instructions.md"),
	ToolClaudeCode:    rootFile("CLAUDE.md"),
	ToolGeminiCLI:     rootFile("GEMINI.md"),
	ToolCodexCLI:      resolveCodex,
	ToolCursor:        resolveCursor,
	ToolWindsurf:      resolveWindsurf,
}

// Tools returns the supported tool ids, sorted.
func Tools() []string {
	ids := make([]string, 0, len(tools))
	for id := range tools {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Simulate resolves the files in.Tool would load from in.Tree at in.Cwd.
//
// An unknown tool fails with errors.ErrUnknownTool and a cwd that leaves the
// repository with errors.ErrValidation.
func Simulate(in Input) (Result, error) {
	resolve, ok := tools[in.Tool]
	if !ok {
		return Result{}, errors.NewUnknownToolError(in.Tool, Tools())
	}

	cwd := pathutil.NormalizeDirPath(in.Cwd)
	if pathutil.Escapes(cwd) {
		return Result{}, errors.NewValidationError(
			fmt.Sprintf("cwd %q escapes the repository root", in.Cwd), "", "cwd",
			"Use a path relative to the repository root.")
	}

	idx := newTreeIndex(in.Tree)
	paths, warnings := resolve(idx, cwd)

	res := Result{Loaded: make([]LoadedFile, 0, len(paths)), Warnings: []Warning{}}
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			res.Loaded = append(res.Loaded, LoadedFile{Path: p})
		}
	}

	threshold := in.LargeTreeThreshold
	if threshold <= 0 {
		threshold = DefaultLargeTreeThreshold
	}
	if n := len(in.Tree.Files); n > threshold {
		res.Warnings = append(res.Warnings, Warning{
			Code:    CodeLargeTree,
			Message: fmt.Sprintf("tree has %d files (threshold %d); narrow the scan for faster, more reliable results", n, threshold),
		})
	}
	if in.Tool != ToolCursor {
		if rules := idx.cursorRuleFiles(); len(rules) > 0 {
			res.Warnings = append(res.Warnings, Warning{
				Code:    CodeCursorRules,
				Message: fmt.Sprintf("%d Cursor rule file(s) such as %s are not loaded by %s", len(rules), rules[0], in.Tool),
			})
		}
	}
	res.Warnings = append(res.Warnings, warnings...)
	return res, nil
}

// treeIndex is a lookup view over a RepoTree.
type treeIndex struct {
	paths   []string
	present map[string]bool
	content map[string]string
}

func newTreeIndex(tree scan.RepoTree) *treeIndex {
	idx := &treeIndex{
		present: make(map[string]bool, len(tree.Files)),
		content: make(map[string]string),
	}
	for _, f := range tree.Files {
		p := pathutil.NormalizeDirPath(f.Path)
		if p == "" || idx.present[p] {
			continue
		}
		idx.present[p] = true
		idx.paths = append(idx.paths, p)
		if f.Content != "" {
			idx.content[p] = f.Content
		}
	}
	sort.Strings(idx.paths)
	return idx
}

func (t *treeIndex) has(p string) bool {
	return t.present[p]
}

// under returns files below dir whose path relative to dir has the given
// prefix, sorted.
func (t *treeIndex) under(dir, prefix string) []string {
	full := prefix
	if dir != "" {
		full = dir + "/" + prefix
	}
	var out []string
	for _, p := range t.paths {
		if strings.HasPrefix(p, full) {
			out = append(out, p)
		}
	}
	return out
}

// cursorRuleFiles returns every .mdc file inside a .cursor/rules directory.
func (t *treeIndex) cursorRuleFiles() []string {
	var out []string
	for _, p := range t.paths {
		if strings.HasSuffix(p, ".mdc") && (strings.HasPrefix(p, ".cursor/rules/") || strings.Contains(p, "/.cursor/rules/")) {
			out = append(out, p)
		}
	}
	return out
}

func rootFile(name string) resolver {
	return func(t *treeIndex, _ string) ([]string, []Warning) {
		if t.has(name) {
			return []string{name}, nil
		}
		return nil, nil
	}
}

// codexFileNames are checked in order at each directory level; the first
// present file wins for that level.
var codexFileNames = []string{"AGENTS.override.md", "AGENTS.md"}

// resolveCodex walks from the root down to cwd, loading at most one
// AGENTS file per level.
func resolveCodex(t *treeIndex, cwd string) ([]string, []Warning) {
	var out []string
	for _, dir := range pathutil.Ancestors(cwd) {
		for _, name := range codexFileNames {
			p := pathutil.MustJoinRepoPath(dir, name)
			if t.has(p) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

// resolveWindsurf loads the global rules, the legacy .windsurfrules file,
// then the direct children of .windsurf/rules at every level from the root
// to cwd.
func resolveWindsurf(t *treeIndex, cwd string) ([]string, []Warning) {
	var out []string
	for _, name := range []string{"global_rules.md", ".windsurfrules"} {
		if t.has(name) {
			out = append(out, name)
		}
	}
	for _, dir := range pathutil.Ancestors(cwd) {
		for _, p := range t.under(dir, ".windsurf/rules/") {
			if strings.HasSuffix(p, ".md") && pathutil.Dir(p) == pathutil.MustJoinRepoPath(dir, ".windsurf/rules") {
				out = append(out, p)
			}
		}
	}
	return out, nil
}
