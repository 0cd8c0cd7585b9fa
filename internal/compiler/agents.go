package compiler

import (
	"fmt"
	"strings"

	"github.com/joelklabo/markdowntown/internal/pathutil"
	"github.com/joelklabo/markdowntown/internal/uam"
)

// AgentsMDAdapter compiles to AGENTS.md files, one per directory, as read by
// Codex and other AGENTS.md-aware tools.
func AgentsMDAdapter() Adapter {
	return markdownTreeAdapter(TargetAgentsMD, "AGENTS.md (Codex)", "AGENTS.md")
}

// ClaudeCodeAdapter compiles to CLAUDE.md files, one per directory.
func ClaudeCodeAdapter() Adapter {
	return markdownTreeAdapter(TargetClaudeCode, "Claude Code", "CLAUDE.md")
}

// GeminiCLIAdapter compiles to GEMINI.md files, one per directory.
func GeminiCLIAdapter() Adapter {
	return markdownTreeAdapter(TargetGeminiCLI, "Gemini CLI", "GEMINI.md")
}

// markdownTreeAdapter builds an adapter that writes fileName at the root for
// the global scope and under each dir scope's directory. Glob scopes have no
// equivalent in this layout and are skipped with a warning.
func markdownTreeAdapter(id, name, fileName string) Adapter {
	place := func(s uam.Scope) placement {
		switch s.Kind {
		case uam.KindGlobal:
			return placement{path: fileName}
		case uam.KindDir:
			p, err := pathutil.JoinRepoPath(s.Dir, fileName)
			if err != nil {
				return placement{warning: escapeWarning(s)}
			}
			return placement{path: p}
		case uam.KindGlob:
			return placement{warning: fmt.Sprintf(
				"scope %q is a glob scope; %s has no per-pattern files, skipped", s.ID, fileName)}
		default:
			return placement{warning: unsupportedKindWarning(s, fileName)}
		}
	}

	return Adapter{
		ID:          id,
		Name:        name,
		Description: fmt.Sprintf("%s at the repo root and in each scoped directory", fileName),
		Compile: func(doc *uam.Document) uam.CompileResult {
			groups, warnings := groupScopes(doc, place)
			files := make([]uam.CompiledFile, 0, len(groups))
			for _, g := range groups {
				files = append(files, uam.CompiledFile{
					Path:    g.path,
					Content: strings.Join(g.bodies(), "\n\n"),
				})
			}
			return uam.CompileResult{Files: files, Warnings: warnings}
		},
	}
}
