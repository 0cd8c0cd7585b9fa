package compiler

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joelklabo/markdowntown/internal/pathutil"
	"github.com/joelklabo/markdowntown/internal/uam"
)

const cursorRulesDir = ".cursor/rules"

// CursorRulesAdapter compiles every scope to a .mdc rule file under
// .cursor/rules with description/globs/alwaysApply front matter.
func CursorRulesAdapter() Adapter {
	return Adapter{
		ID:          TargetCursorRules,
		Name:        "Cursor",
		Description: "One .cursor/rules/*.mdc file per scope with YAML front matter",
		Compile:     compileCursor,
	}
}

func compileCursor(doc *uam.Document) uam.CompileResult {
	place := func(s uam.Scope) placement {
		slug, warning := ruleSlug(s, "Cursor rules")
		if slug == "" {
			return placement{warning: warning}
		}
		return placement{path: cursorRulesDir + "/" + slug + ".mdc"}
	}

	groups, warnings := groupScopes(doc, place)
	files := make([]uam.CompiledFile, 0, len(groups))
	for _, g := range groups {
		fm := cursorFrontMatterFor(g.scopes)
		header, err := fm.render()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: rendering front matter: %v", g.path, err))
			continue
		}
		files = append(files, uam.CompiledFile{
			Path:    g.path,
			Content: header + "\n" + strings.Join(g.bodies(), "\n\n") + "\n",
		})
	}
	return uam.CompileResult{Files: files, Warnings: warnings}
}

// ruleSlug derives the rule file name (without extension) shared by the
// Cursor and Windsurf layouts. An empty slug means the scope is skipped and
// the returned warning says why.
func ruleSlug(s uam.Scope, target string) (string, string) {
	switch s.Kind {
	case uam.KindGlobal:
		return "global", ""
	case uam.KindDir:
		dir := pathutil.NormalizeDirPath(s.Dir)
		if pathutil.Escapes(dir) {
			return "", escapeWarning(s)
		}
		if dir == "" {
			return "root", ""
		}
		return pathutil.Slugify(dir), ""
	case uam.KindGlob:
		if len(s.Patterns) == 0 {
			return "", fmt.Sprintf("scope %q is a glob scope without patterns; skipped", s.ID)
		}
		if slug := pathutil.Slugify(s.Name); slug != "" {
			return slug, ""
		}
		if slug := pathutil.Slugify(strings.Join(s.Patterns, "-")); slug != "" {
			return slug, ""
		}
		return "glob", ""
	default:
		return "", unsupportedKindWarning(s, target)
	}
}

// cursorFrontMatter is the header of a .mdc rule file.
type cursorFrontMatter struct {
	Description string
	Globs       []string
	AlwaysApply bool
}

// cursorFrontMatterFor derives the header for the scopes merged into one file.
// The first scope names the file; globs are the union of every scope's globs.
func cursorFrontMatterFor(scopes []uam.Scope) cursorFrontMatter {
	fm := cursorFrontMatter{Description: cursorDescription(scopes[0])}
	seen := make(map[string]bool)
	for _, s := range scopes {
		if s.Kind == uam.KindGlobal {
			fm.AlwaysApply = true
		}
		for _, g := range cursorGlobs(s) {
			if !seen[g] {
				seen[g] = true
				fm.Globs = append(fm.Globs, g)
			}
		}
	}
	return fm
}

func cursorDescription(s uam.Scope) string {
	switch s.Kind {
	case uam.KindGlobal:
		return "Global rules"
	case uam.KindDir:
		dir := pathutil.NormalizeDirPath(s.Dir)
		if dir == "" {
			return "Rules for repository root"
		}
		return "Rules for " + dir
	default:
		if s.Name != "" {
			return s.Name
		}
		return "Rules for " + strings.Join(s.Patterns, ", ")
	}
}

func cursorGlobs(s uam.Scope) []string {
	switch s.Kind {
	case uam.KindGlobal:
		return []string{"**/*"}
	case uam.KindDir:
		dir := pathutil.NormalizeDirPath(s.Dir)
		if dir == "" {
			return []string{"**/*"}
		}
		return []string{dir + "/**"}
	default:
		return s.Patterns
	}
}

// render emits the front matter block, delimiters included:
//
//	---
//	description: "Rules for src"
//	globs:
//	  - "src/**"
//	alwaysApply: false
//	---
func (fm cursorFrontMatter) render() (string, error) {
	globs := &yaml.Node{Kind: yaml.SequenceNode}
	for _, g := range fm.Globs {
		globs.Content = append(globs.Content, quoted(g))
	}

	root := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			key("description"), quoted(fm.Description),
			key("globs"), globs,
			key("alwaysApply"), {Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(fm.AlwaysApply)},
		},
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return "---\n" + buf.String() + "---\n", nil
}

func key(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func quoted(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.DoubleQuotedStyle}
}
