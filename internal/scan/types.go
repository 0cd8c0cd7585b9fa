// Package scan enumerates repository files into an in-memory RepoTree.
//
// Two entry points share one contract: ScanFileList for flat file lists
// (such as a browser folder upload) and ScanRepoTree for a directory-handle
// walk. Both apply the same ignore, include and cap rules and neither reads
// file contents.
package scan

import "regexp"

// DefaultMaxFiles caps the number of considered files per scan.
const DefaultMaxFiles = 5000

// defaultIgnoreDirs are VCS, dependency and build output directories.
var defaultIgnoreDirs = []string{".git", ".hg", ".svn", "node_modules", "vendor", "target", "build", ".next", ".cache"}

// DefaultIgnoreDirs returns a copy of the directory names skipped by default.
func DefaultIgnoreDirs() []string {
	return append([]string(nil), defaultIgnoreDirs...)
}

// RepoFile is one file in a RepoTree. Path is repo-relative, forward-slash
// separated and has no leading slash. Content is empty for scanner output.
type RepoFile struct {
	Path    string `json:"path"`
	Content string `json:"content,omitempty"`
}

// RepoTree is a flat, enumerated view of a repository.
type RepoTree struct {
	Files []RepoFile `json:"files"`
}

// Paths returns the tree's file paths in tree order.
func (t RepoTree) Paths() []string {
	out := make([]string, 0, len(t.Files))
	for _, f := range t.Files {
		out = append(out, f.Path)
	}
	return out
}

// Lookup returns the file at path.
func (t RepoTree) Lookup(path string) (RepoFile, bool) {
	for _, f := range t.Files {
		if f.Path == path {
			return f, true
		}
	}
	return RepoFile{}, false
}

// TreeFromPaths builds a tree of content-less files.
func TreeFromPaths(paths ...string) RepoTree {
	files := make([]RepoFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, RepoFile{Path: p})
	}
	return RepoTree{Files: files}
}

// ScanResult is the outcome of a scan.
//
// MatchedFiles never exceeds TotalFiles. Truncated is set only when the scan
// stopped because TotalFiles reached the cap; the tree is then a lower bound.
type ScanResult struct {
	Tree         RepoTree `json:"tree"`
	TotalFiles   int      `json:"totalFiles"`
	MatchedFiles int      `json:"matchedFiles"`
	Truncated    bool     `json:"truncated"`
}

// Options controls which files a scan considers.
type Options struct {
	// IgnoreDirs lists directory names whose subtrees are excluded entirely.
	// Ignored files do not count toward TotalFiles. A nil slice means
	// DefaultIgnoreDirs; an empty non-nil slice ignores nothing.
	IgnoreDirs []string

	// IncludeOnly, when non-empty, restricts the tree to files whose
	// repo-relative path matches at least one pattern. Non-matching files
	// still count toward TotalFiles.
	IncludeOnly []*regexp.Regexp

	// MaxFiles caps TotalFiles. Zero or negative means DefaultMaxFiles.
	MaxFiles int
}

// CompileIncludePatterns compiles regular expressions for Options.IncludeOnly.
func CompileIncludePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}
