// Package mcpserver exposes the compiler and the context simulator as MCP
// tools so coding agents can call them directly.
//
// Each tool is a struct with its dependencies injected via constructor,
// a Definition returning the mcp.Tool schema and a Handle method. Input
// problems are reported as tool errors, never as protocol errors.
package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/joelklabo/markdowntown/internal/compiler"
	"github.com/joelklabo/markdowntown/internal/version"
)

const instructions = `uamc compiles Universal Agent Model (UAM) documents into the instruction
files of coding tools (AGENTS.md, Cursor rules, Windsurf rules, GitHub Copilot
instructions, CLAUDE.md, GEMINI.md) and simulates which instruction files a tool
would load from a repository.

Call uam_list_targets to see the compile targets, uam_compile to produce files,
and uam_simulate to check what a tool picks up from a given directory.`

// Options configures the server.
type Options struct {
	// Registry holds the compile targets. Nil means compiler.DefaultRegistry.
	Registry *compiler.Registry

	// LargeTreeThreshold is passed to every simulation. Zero keeps the
	// simulator default.
	LargeTreeThreshold int
}

// New creates the MCP server with every tool registered.
func New(opts Options) *server.MCPServer {
	reg := opts.Registry
	if reg == nil {
		reg = compiler.DefaultRegistry()
	}

	s := server.NewMCPServer(
		"uamc",
		version.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	compileTool := NewCompileTool(reg)
	s.AddTool(compileTool.Definition(), compileTool.Handle)

	simulateTool := NewSimulateTool(opts.LargeTreeThreshold)
	s.AddTool(simulateTool.Definition(), simulateTool.Handle)

	targetsTool := NewListTargetsTool(reg)
	s.AddTool(targetsTool.Definition(), targetsTool.Handle)

	return s
}

// ServeStdio runs the server on stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// jsonResult encodes v as indented JSON text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
