package scan

import (
	"regexp"
	"strings"
)

// collector applies Options to a stream of repo-relative file paths.
// Each scan gets its own collector, so no counters survive between calls.
type collector struct {
	ignore   map[string]bool
	include  []*regexp.Regexp
	maxFiles int
	result   ScanResult
}

func newCollector(opts Options) *collector {
	ignoreDirs := opts.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = defaultIgnoreDirs
	}
	ignore := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignore[d] = true
	}

	maxFiles := opts.MaxFiles
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}

	c := &collector{ignore: ignore, maxFiles: maxFiles}
	for _, re := range opts.IncludeOnly {
		if re != nil {
			c.include = append(c.include, re)
		}
	}
	c.result.Tree.Files = []RepoFile{}
	return c
}

// ignoredDir reports whether a directory name is excluded.
func (c *collector) ignoredDir(name string) bool {
	return c.ignore[name]
}

// ignoredPath reports whether any directory segment of path is excluded.
func (c *collector) ignoredPath(path string) bool {
	segments := strings.Split(path, "/")
	for _, seg := range segments[:len(segments)-1] {
		if c.ignore[seg] {
			return true
		}
	}
	return false
}

// add records one non-ignored file. It returns false once the cap has been
// reached; the file is then not counted and the scan must stop.
func (c *collector) add(path string) bool {
	if c.result.TotalFiles >= c.maxFiles {
		c.result.Truncated = true
		return false
	}
	c.result.TotalFiles++

	if c.matches(path) {
		c.result.MatchedFiles++
		c.result.Tree.Files = append(c.result.Tree.Files, RepoFile{Path: path})
	}
	return true
}

func (c *collector) matches(path string) bool {
	if len(c.include) == 0 {
		return true
	}
	for _, re := range c.include {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
