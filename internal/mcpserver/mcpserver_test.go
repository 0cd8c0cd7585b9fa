package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelklabo/markdowntown/internal/compiler"
	"github.com/joelklabo/markdowntown/internal/simulate"
	"github.com/joelklabo/markdowntown/internal/uam"
)

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

const sampleDoc = `
schemaVersion: 1
meta:
  title: Sample
scopes:
  - id: root
    kind: global
  - id: src
    kind: dir
    dir: src
blocks:
  - id: b1
    scopeId: root
    body: Be concise.
  - id: b2
    scopeId: src
    body: Use strict types.
targets:
  - targetId: agents-md
`

func TestNew_RegistersTools(t *testing.T) {
	s := New(Options{})

	tools := s.ListTools()
	assert.Len(t, tools, 3)
	for _, name := range []string{"uam_compile", "uam_simulate", "uam_list_targets"} {
		assert.NotNil(t, s.GetTool(name), name)
	}
}

func TestCompileTool_Definition(t *testing.T) {
	def := NewCompileTool(compiler.DefaultRegistry()).Definition()

	assert.Equal(t, "uam_compile", def.Name)
	assert.Contains(t, def.InputSchema.Properties, "document")
	assert.Contains(t, def.InputSchema.Properties, "targets")
	assert.Equal(t, []string{"document"}, def.InputSchema.Required)
}

func TestCompileTool_Handle(t *testing.T) {
	tool := NewCompileTool(compiler.DefaultRegistry())

	t.Run("uses document targets by default", func(t *testing.T) {
		res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
			"document": sampleDoc,
		}))
		require.NoError(t, err)
		require.False(t, res.IsError, resultText(res))

		var got map[string]uam.CompileResult
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
		require.Contains(t, got, compiler.TargetAgentsMD)
		assert.Equal(t, []uam.CompiledFile{
			{Path: "AGENTS.md", Content: "Be concise."},
			{Path: "src/AGENTS.md", Content: "Use strict types."},
		}, got[compiler.TargetAgentsMD].Files)
	})

	t.Run("explicit targets", func(t *testing.T) {
		res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
			"document": sampleDoc,
			"targets":  []interface{}{"github-copilot", "claude-code"},
		}))
		require.NoError(t, err)
		require.False(t, res.IsError, resultText(res))

		var got map[string]uam.CompileResult
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
		assert.Len(t, got, 2)
		assert.Contains(t, got, "github-copilot")
		assert.Contains(t, got, "claude-code")
	})

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing document", map[string]interface{}{}, "document"},
		{"invalid document", map[string]interface{}{"document": "schemaVersion: 2\n"}, "schema"},
		{"unknown target", map[string]interface{}{"document": sampleDoc, "targets": []interface{}{"emacs"}}, "emacs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tool.Handle(context.Background(), makeReq(tt.args))
			require.NoError(t, err, "input errors are tool errors")
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(res), tt.want)
		})
	}
}

func TestSimulateTool_Handle(t *testing.T) {
	tool := NewSimulateTool(0)

	t.Run("codex nested agents", func(t *testing.T) {
		res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
			"tool":  "codex-cli",
			"cwd":   "apps/web",
			"paths": []interface{}{"AGENTS.md", "apps/web/AGENTS.md", "apps/web/main.go"},
		}))
		require.NoError(t, err)
		require.False(t, res.IsError, resultText(res))

		var got simulate.Result
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
		assert.Equal(t, []simulate.LoadedFile{{Path: "AGENTS.md"}, {Path: "apps/web/AGENTS.md"}}, got.Loaded)
	})

	t.Run("unknown tool", func(t *testing.T) {
		res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
			"tool":  "vim",
			"paths": []interface{}{"AGENTS.md"},
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "vim")
	})

	t.Run("missing paths", func(t *testing.T) {
		res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
			"tool": "cursor",
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestListTargetsTool_Handle(t *testing.T) {
	tool := NewListTargetsTool(compiler.DefaultRegistry())

	res, err := tool.Handle(context.Background(), makeReq(nil))
	require.NoError(t, err)

	var got []compiler.Adapter
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	ids := make([]string, 0, len(got))
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, compiler.DefaultRegistry().IDs(), ids)
}
