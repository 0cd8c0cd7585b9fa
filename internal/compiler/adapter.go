// Package compiler turns UAM documents into the native instruction files of
// each supported coding tool.
//
// Every target is an Adapter: a pure function from a document to a
// CompileResult. Adapters are collected in a caller-owned Registry and run by
// Compile.
package compiler

import "github.com/joelklabo/markdowntown/internal/uam"

// Target ids of the built-in adapters.
const (
	TargetAgentsMD      = "agents-md"
	TargetCursorRules   = "cursor-rules"
	TargetWindsurfRules = "windsurf-rules"
	TargetCopilot       = "github-copilot"
	TargetClaudeCode    = "claude-code"
	TargetGeminiCLI     = "gemini-cli"
)

// CompileFunc compiles a document for one target.
// Implementations must not mutate the document.
type CompileFunc func(doc *uam.Document) uam.CompileResult

// Adapter describes one compile target.
type Adapter struct {
	// ID is the stable target id used on the command line and in documents.
	ID string `json:"id"`

	// Name is the human-readable tool name.
	Name string `json:"name"`

	// Description says what the adapter emits.
	Description string `json:"description"`

	// Compile produces the target's files and warnings.
	Compile CompileFunc `json:"-"`
}
