package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/joelklabo/markdowntown/internal/compiler"
)

// ListTargetsTool handles the uam_list_targets MCP tool.
type ListTargetsTool struct {
	registry *compiler.Registry
}

// NewListTargetsTool creates a ListTargetsTool backed by reg.
func NewListTargetsTool(reg *compiler.Registry) *ListTargetsTool {
	return &ListTargetsTool{registry: reg}
}

// Definition returns the MCP tool definition for uam_list_targets.
func (t *ListTargetsTool) Definition() mcp.Tool {
	return mcp.NewTool("uam_list_targets",
		mcp.WithDescription("List the compile targets accepted by uam_compile."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the uam_list_targets tool call.
func (t *ListTargetsTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.registry.List())
}
