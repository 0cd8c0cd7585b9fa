package compiler

import (
	"strings"

	"github.com/joelklabo/markdowntown/internal/pathutil"
	"github.com/joelklabo/markdowntown/internal/uam"
)

const (
	windsurfGlobalFile = "global_rules.md"
	windsurfRulesDir   = ".windsurf/rules"
)

// WindsurfRulesAdapter compiles the global scope to global_rules.md and every
// other scope to a .windsurf/rules/*.md file headed by the scope it covers.
func WindsurfRulesAdapter() Adapter {
	return Adapter{
		ID:          TargetWindsurfRules,
		Name:        "Windsurf",
		Description: "global_rules.md plus one .windsurf/rules/*.md file per scoped rule set",
		Compile:     compileWindsurf,
	}
}

func compileWindsurf(doc *uam.Document) uam.CompileResult {
	place := func(s uam.Scope) placement {
		if s.Kind == uam.KindGlobal {
			return placement{path: windsurfGlobalFile}
		}
		slug, warning := ruleSlug(s, "Windsurf rules")
		if slug == "" {
			return placement{warning: warning}
		}
		return placement{path: windsurfRulesDir + "/" + slug + ".md"}
	}

	groups, warnings := groupScopes(doc, place)
	files := make([]uam.CompiledFile, 0, len(groups))
	for _, g := range groups {
		body := strings.Join(g.bodies(), "\n\n")
		if g.path != windsurfGlobalFile {
			body = "# Rules for " + windsurfSubject(g.scopes[0]) + "\n\n" + body
		}
		files = append(files, uam.CompiledFile{Path: g.path, Content: body + "\n"})
	}
	return uam.CompileResult{Files: files, Warnings: warnings}
}

func windsurfSubject(s uam.Scope) string {
	if s.Kind == uam.KindDir {
		if dir := pathutil.NormalizeDirPath(s.Dir); dir != "" {
			return dir
		}
		return "repository root"
	}
	return strings.Join(s.Patterns, ", ")
}
