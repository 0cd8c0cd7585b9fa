// Package version provides version information for the uamc CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Module paths whose versions are reported alongside the CLI version.
const (
	cueModule = "cuelang.org/go"
	mcpModule = "github.com/mark3labs/mcp-go"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// CUESDKVersion is the CUE SDK used for schema validation.
	CUESDKVersion string `json:"cueSDKVersion"`

	// MCPVersion is the mcp-go version behind `uamc serve`.
	MCPVersion string `json:"mcpVersion"`
}

// Get returns the current version information.
func Get() Info {
	info := Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		CUESDKVersion: "unknown",
		MCPVersion:    "unknown",
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, dep := range bi.Deps {
		switch dep.Path {
		case cueModule:
			info.CUESDKVersion = dep.Version
		case mcpModule:
			info.MCPVersion = dep.Version
		}
	}
	return info
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("uamc version %s\n  Commit:    %s\n  Built:     %s\n  Go:        %s\n  CUE SDK:   %s\n  MCP:       %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.CUESDKVersion, i.MCPVersion)
}

// Short returns "uamc <version>" with the commit appended when known.
func (i Info) Short() string {
	if i.GitCommit == "" || i.GitCommit == "unknown" {
		return "uamc " + i.Version
	}
	return fmt.Sprintf("uamc %s (%s)", i.Version, shortCommit(i.GitCommit))
}

func shortCommit(commit string) string {
	commit = strings.TrimSpace(commit)
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
