package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/joelklabo/markdowntown/internal/compiler"
	"github.com/joelklabo/markdowntown/internal/uam"
)

// CompileTool handles the uam_compile MCP tool.
type CompileTool struct {
	registry *compiler.Registry
}

// NewCompileTool creates a CompileTool backed by reg.
func NewCompileTool(reg *compiler.Registry) *CompileTool {
	return &CompileTool{registry: reg}
}

// Definition returns the MCP tool definition for uam_compile.
func (t *CompileTool) Definition() mcp.Tool {
	return mcp.NewTool("uam_compile",
		mcp.WithDescription(
			"Compile a UAM document into the instruction files of one or more coding tools. "+
				"Returns a JSON object keyed by target id, each with files (path, content) and warnings.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("document",
			mcp.Required(),
			mcp.Description("The UAM document as JSON or YAML text"),
		),
		mcp.WithArray("targets",
			mcp.Description("Target ids to compile for. Defaults to the document's targets."),
			mcp.WithStringItems(),
		),
	)
}

// Handle processes the uam_compile tool call.
func (t *CompileTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data := []byte(raw)
	if err := uam.Validate(data); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := uam.Parse(data)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, err := compiler.Compile(t.registry, doc, req.GetStringSlice("targets", nil))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(results)
}
