package compiler

import (
	"fmt"
	"strings"

	"github.com/joelklabo/markdowntown/internal/pathutil"
	"github.com/joelklabo/markdowntown/internal/uam"
)

const copilotFile = ".github/copilot-instructions.md"

// CopilotAdapter compiles every block into the single
// .github/copilot-instructions.md file.
func CopilotAdapter() Adapter {
	return Adapter{
		ID:          TargetCopilot,
		Name:        "GitHub Copilot",
		Description: "A single .github/copilot-instructions.md with scoped sections",
		Compile:     compileCopilot,
	}
}

// compileCopilot concatenates blocks in document order. Root-scoped blocks
// contribute their body as is; any other scope is wrapped in a
// "For files matching" section. A scope string that is not a glob pattern is
// still included but produces a warning.
func compileCopilot(doc *uam.Document) uam.CompileResult {
	var (
		parts    []string
		warnings []string
	)

	for _, b := range doc.Blocks {
		s, ok := doc.ScopeByID(b.ScopeID)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("block %q references unknown scope %q", b.ID, b.ScopeID))
			continue
		}

		scope := copilotScopeString(s)
		if isRootScopeString(scope) {
			parts = append(parts, b.Body)
			continue
		}

		if !pathutil.IsGlobPattern(scope) {
			warnings = append(warnings, fmt.Sprintf(
				"block %q: scope %q is not a glob pattern; Copilot may not apply it as intended", b.ID, scope))
		}
		parts = append(parts, fmt.Sprintf("For files matching `%s`:\n\n%s", scope, b.Body))
	}

	files := []uam.CompiledFile{}
	if len(parts) > 0 {
		files = append(files, uam.CompiledFile{
			Path:    copilotFile,
			Content: strings.Join(parts, "\n\n---\n\n"),
		})
	}
	return uam.CompileResult{Files: files, Warnings: warnings}
}

func copilotScopeString(s uam.Scope) string {
	switch s.Kind {
	case uam.KindGlobal:
		return ""
	case uam.KindDir:
		return pathutil.NormalizeDirPath(s.Dir)
	case uam.KindGlob:
		return strings.Join(s.Patterns, ", ")
	default:
		return s.ID
	}
}

func isRootScopeString(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "root", ".", "/":
		return true
	}
	return false
}
