package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelklabo/markdowntown/internal/uam"
)

func paths(files []uam.CompiledFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func hasWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestAgentsMD(t *testing.T) {
	tests := []struct {
		name      string
		doc       *uam.Document
		wantFiles []uam.CompiledFile
		wantWarn  []string
	}{
		{
			name: "global and dir",
			doc: &uam.Document{
				Scopes: []uam.Scope{uam.GlobalScope("g"), uam.DirScope("d", "src")},
				Blocks: []uam.Block{
					uam.MarkdownBlock("1", "g", "one"),
					uam.MarkdownBlock("2", "d", "two"),
					uam.MarkdownBlock("3", "g", "three"),
				},
			},
			wantFiles: []uam.CompiledFile{
				{Path: "AGENTS.md", Content: "one\n\nthree"},
				{Path: "src/AGENTS.md", Content: "two"},
			},
		},
		{
			name: "trailing slash merges",
			doc: &uam.Document{
				Scopes: []uam.Scope{uam.DirScope("a", "src"), uam.DirScope("b", "src/")},
				Blocks: []uam.Block{
					uam.MarkdownBlock("1", "b", "from b"),
					uam.MarkdownBlock("2", "a", "from a"),
				},
			},
			wantFiles: []uam.CompiledFile{{Path: "src/AGENTS.md", Content: "from a\n\nfrom b"}},
			wantWarn:  []string{"Multiple scopes map"},
		},
		{
			name: "glob scope is skipped",
			doc: &uam.Document{
				Scopes: []uam.Scope{uam.GlobalScope("g"), uam.GlobScope("ts", "", "**/*.ts")},
				Blocks: []uam.Block{
					uam.MarkdownBlock("1", "g", "root"),
					uam.MarkdownBlock("2", "ts", "typescript"),
				},
			},
			wantFiles: []uam.CompiledFile{{Path: "AGENTS.md", Content: "root"}},
			wantWarn:  []string{"glob scope"},
		},
		{
			name: "dangling block is dropped",
			doc: &uam.Document{
				Scopes: []uam.Scope{uam.GlobalScope("g")},
				Blocks: []uam.Block{
					uam.MarkdownBlock("1", "g", "root"),
					uam.MarkdownBlock("2", "ghost", "lost"),
				},
			},
			wantFiles: []uam.CompiledFile{{Path: "AGENTS.md", Content: "root"}},
			wantWarn:  []string{`block "2" references unknown scope "ghost"`},
		},
		{
			name: "escaping dir is skipped",
			doc: &uam.Document{
				Scopes: []uam.Scope{uam.DirScope("up", "../outside")},
				Blocks: []uam.Block{uam.MarkdownBlock("1", "up", "x")},
			},
			wantFiles: []uam.CompiledFile{},
			wantWarn:  []string{"escapes the repository root"},
		},
		{
			name: "empty scope emits nothing",
			doc: &uam.Document{
				Scopes: []uam.Scope{uam.GlobalScope("g"), uam.DirScope("d", "docs")},
				Blocks: []uam.Block{uam.MarkdownBlock("1", "g", "root")},
			},
			wantFiles: []uam.CompiledFile{{Path: "AGENTS.md", Content: "root"}},
		},
		{
			name: "malformed kind",
			doc: &uam.Document{
				Scopes: []uam.Scope{{ID: "weird", Kind: "repo"}},
				Blocks: []uam.Block{uam.MarkdownBlock("1", "weird", "x")},
			},
			wantFiles: []uam.CompiledFile{},
			wantWarn:  []string{`unsupported kind "repo"`},
		},
	}

	adapter := AgentsMDAdapter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := adapter.Compile(tt.doc)
			assert.Equal(t, tt.wantFiles, res.Files)
			for _, w := range tt.wantWarn {
				assert.True(t, hasWarning(res.Warnings, w), "missing warning %q in %v", w, res.Warnings)
			}
			if len(tt.wantWarn) == 0 {
				assert.Empty(t, res.Warnings)
			}
		})
	}
}

func TestAgentsMD_FileCountEqualsDistinctScopePaths(t *testing.T) {
	doc := &uam.Document{
		Scopes: []uam.Scope{
			uam.GlobalScope("g"),
			uam.DirScope("a", "apps/web"),
			uam.DirScope("b", "./apps/web/"),
			uam.DirScope("c", "lib"),
		},
		Blocks: []uam.Block{
			uam.MarkdownBlock("1", "g", "G"),
			uam.MarkdownBlock("2", "a", "A"),
			uam.MarkdownBlock("3", "b", "B"),
			uam.MarkdownBlock("4", "c", "C"),
		},
	}

	res := AgentsMDAdapter().Compile(doc)
	assert.Equal(t, []string{"AGENTS.md", "apps/web/AGENTS.md", "lib/AGENTS.md"}, paths(res.Files))
	assert.Equal(t, "A\n\nB", res.Files[1].Content)
}

func TestClaudeAndGeminiUseTheirOwnFileNames(t *testing.T) {
	doc := sampleDoc()

	claude := ClaudeCodeAdapter().Compile(doc)
	assert.Equal(t, []string{"CLAUDE.md", "src/CLAUDE.md"}, paths(claude.Files))

	gemini := GeminiCLIAdapter().Compile(doc)
	assert.Equal(t, []string{"GEMINI.md", "src/GEMINI.md"}, paths(gemini.Files))
	assert.True(t, hasWarning(gemini.Warnings, "glob scope"))
}

func TestCursorRules(t *testing.T) {
	res := CursorRulesAdapter().Compile(sampleDoc())
	require.Empty(t, res.Warnings)

	assert.Equal(t, []uam.CompiledFile{
		{
			Path: ".cursor/rules/global.mdc",
			Content: "---\n" +
				"description: \"Global rules\"\n" +
				"globs:\n" +
				"  - \"**/*\"\n" +
				"alwaysApply: true\n" +
				"---\n\n" +
				"Be concise.\n",
		},
		{
			Path: ".cursor/rules/src.mdc",
			Content: "---\n" +
				"description: \"Rules for src\"\n" +
				"globs:\n" +
				"  - \"src/**\"\n" +
				"alwaysApply: false\n" +
				"---\n\n" +
				"Prefer small functions.\n",
		},
		{
			Path: ".cursor/rules/typescript.mdc",
			Content: "---\n" +
				"description: \"TypeScript\"\n" +
				"globs:\n" +
				"  - \"**/*.ts\"\n" +
				"alwaysApply: false\n" +
				"---\n\n" +
				"Use strict mode.\n",
		},
	}, res.Files)
}

func TestCursorRules_SlugsAndMerges(t *testing.T) {
	doc := &uam.Document{
		Scopes: []uam.Scope{
			uam.DirScope("web", "apps/web/"),
			uam.GlobScope("unnamed", "", "**/*.go"),
			uam.DirScope("web2", "apps/web"),
		},
		Blocks: []uam.Block{
			uam.MarkdownBlock("1", "web", "A"),
			uam.MarkdownBlock("2", "unnamed", "B"),
			uam.MarkdownBlock("3", "web2", "C"),
		},
	}

	res := CursorRulesAdapter().Compile(doc)
	assert.Equal(t, []string{".cursor/rules/apps-web.mdc", ".cursor/rules/go.mdc"}, paths(res.Files))
	assert.Contains(t, res.Files[0].Content, "description: \"Rules for apps/web\"")
	assert.Contains(t, res.Files[0].Content, "\n\nA\n\nC\n")
	assert.Contains(t, res.Files[1].Content, "description: \"Rules for **/*.go\"")
	assert.True(t, hasWarning(res.Warnings, "Multiple scopes map"))
}

func TestCursorRules_AlwaysApplyOnlyForGlobal(t *testing.T) {
	res := CursorRulesAdapter().Compile(sampleDoc())
	for _, f := range res.Files {
		if f.Path == ".cursor/rules/global.mdc" {
			assert.Contains(t, f.Content, "alwaysApply: true\n")
			assert.Contains(t, f.Content, "  - \"**/*\"\n")
			continue
		}
		assert.Contains(t, f.Content, "alwaysApply: false\n", f.Path)
	}
}

func TestWindsurfRules(t *testing.T) {
	res := WindsurfRulesAdapter().Compile(sampleDoc())
	require.Empty(t, res.Warnings)

	assert.Equal(t, []string{
		".windsurf/rules/src.md",
		".windsurf/rules/typescript.md",
		"global_rules.md",
	}, paths(res.Files))

	assert.Equal(t, "# Rules for src\n\nPrefer small functions.\n", res.Files[0].Content)
	assert.Equal(t, "# Rules for **/*.ts\n\nUse strict mode.\n", res.Files[1].Content)
	assert.Equal(t, "Be concise.\n", res.Files[2].Content)
}

func TestCopilot(t *testing.T) {
	res := CopilotAdapter().Compile(sampleDoc())

	require.Len(t, res.Files, 1)
	assert.Equal(t, ".github/copilot-instructions.md", res.Files[0].Path)
	assert.Equal(t,
		"Be concise.\n\n---\n\n"+
			"For files matching `src`:\n\nPrefer small functions.\n\n---\n\n"+
			"For files matching `**/*.ts`:\n\nUse strict mode.",
		res.Files[0].Content)

	// The dir scope is included but flagged; the glob scope is not.
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], `"b2"`)
	assert.Contains(t, res.Warnings[0], `"src"`)
}

func TestCopilot_EmptyDocument(t *testing.T) {
	res := CopilotAdapter().Compile(&uam.Document{})
	assert.Empty(t, res.Files)
	assert.Empty(t, res.Warnings)
}

func TestCopilot_RootLikeScopes(t *testing.T) {
	doc := &uam.Document{
		Scopes: []uam.Scope{uam.DirScope("dot", "."), {ID: "root", Kind: "custom"}},
		Blocks: []uam.Block{
			uam.MarkdownBlock("1", "dot", "A"),
			uam.MarkdownBlock("2", "root", "B"),
		},
	}
	res := CopilotAdapter().Compile(doc)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "A\n\n---\n\nB", res.Files[0].Content)
	assert.Empty(t, res.Warnings)
}
