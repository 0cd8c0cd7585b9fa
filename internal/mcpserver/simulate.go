package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/joelklabo/markdowntown/internal/scan"
	"github.com/joelklabo/markdowntown/internal/simulate"
)

// SimulateTool handles the uam_simulate MCP tool.
type SimulateTool struct {
	largeTreeThreshold int
}

// NewSimulateTool creates a SimulateTool. threshold overrides the large tree
// warning threshold when positive.
func NewSimulateTool(threshold int) *SimulateTool {
	return &SimulateTool{largeTreeThreshold: threshold}
}

// Definition returns the MCP tool definition for uam_simulate.
func (t *SimulateTool) Definition() mcp.Tool {
	return mcp.NewTool("uam_simulate",
		mcp.WithDescription(
			"Simulate which instruction files a coding tool loads from a repository when started in a directory. "+
				"Returns the loaded files in precedence order plus warnings.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("tool",
			mcp.Required(),
			mcp.Description("Tool to simulate"),
			mcp.Enum(simulate.Tools()...),
		),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.Description("Repo-relative file paths of the repository, forward-slash separated"),
			mcp.WithStringItems(),
		),
		mcp.WithString("cwd",
			mcp.Description("Repo-relative directory the tool starts in. Defaults to the root."),
		),
	)
}

// Handle processes the uam_simulate tool call.
func (t *SimulateTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tool, err := req.RequireString("tool")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	paths, err := req.RequireStringSlice("paths")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := simulate.Simulate(simulate.Input{
		Tool:               tool,
		Tree:               scan.TreeFromPaths(paths...),
		Cwd:                req.GetString("cwd", ""),
		LargeTreeThreshold: t.largeTreeThreshold,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(result)
}
