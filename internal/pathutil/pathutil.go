// Package pathutil normalizes and orders repo-relative paths.
//
// Every compiler adapter, the scanner and the simulator go through these
// helpers so that "src", "src/" and "./src" always mean the same directory.
// Paths handled here are always forward-slash separated and relative to the
// repository root; the empty string is the root itself.
package pathutil

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrPathEscape is returned when a path would leave the repository root.
var ErrPathEscape = errors.New("path escapes repository root")

// NormalizeDirPath normalizes a repo-relative directory path.
//
// It trims surrounding whitespace, removes leading "./" and "/" prefixes,
// strips trailing slashes and collapses "", "." and "/" to "" (the root).
// The steps repeat until the value is stable, which makes the function
// idempotent for any input.
func NormalizeDirPath(input string) string {
	p := input
	for {
		next := normalizeOnce(p)
		if next == p {
			return next
		}
		p = next
	}
}

func normalizeOnce(p string) string {
	p = strings.TrimSpace(p)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	p = strings.TrimLeft(p, "/")
	p = strings.TrimRight(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// JoinRepoPath joins path segments with "/".
//
// Empty segments are skipped and each segment is normalized first, so the
// result never carries a leading slash. A ".." segment anywhere in the input
// yields ErrPathEscape instead of a path.
func JoinRepoPath(segments ...string) (string, error) {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = NormalizeDirPath(seg)
		if seg == "" {
			continue
		}
		for _, part := range strings.Split(seg, "/") {
			switch part {
			case "", ".":
				continue
			case "..":
				return "", fmt.Errorf("joining %q: %w", strings.Join(segments, "/"), ErrPathEscape)
			}
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "/"), nil
}

// MustJoinRepoPath is JoinRepoPath for segments known to be safe.
// It panics on traversal.
func MustJoinRepoPath(segments ...string) string {
	p, err := JoinRepoPath(segments...)
	if err != nil {
		panic(err)
	}
	return p
}

// IsGlobPattern reports whether s contains any of the glob metacharacters
// '*', '?' or '['.
func IsGlobPattern(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// Escapes reports whether a normalized path contains a ".." segment.
func Escapes(p string) bool {
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return true
		}
	}
	return false
}

// SortPaths sorts paths lexicographically on their forward-slash form.
func SortPaths(paths []string) {
	sort.Strings(paths)
}

// Ancestors returns every directory from the root down to dir, inclusive,
// in root-to-leaf order. The root is represented by "".
//
//	Ancestors("apps/web") == []string{"", "apps", "apps/web"}
func Ancestors(dir string) []string {
	dir = NormalizeDirPath(dir)
	out := []string{""}
	if dir == "" {
		return out
	}
	parts := strings.Split(dir, "/")
	for i := range parts {
		out = append(out, strings.Join(parts[:i+1], "/"))
	}
	return out
}

// Dir returns the directory portion of a repo-relative file path, or "" for
// files at the root.
func Dir(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// Base returns the last segment of a repo-relative path.
func Base(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

// IsWithin reports whether p is dir itself or lies underneath it.
// The root ("") contains every path.
func IsWithin(p, dir string) bool {
	if dir == "" {
		return true
	}
	return p == dir || strings.HasPrefix(p, dir+"/")
}

var (
	slugUnsafe = regexp.MustCompile(`[^a-z0-9._-]+`)
	slugDashes = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a directory path or display name into a file-name-safe slug.
// Slashes become dashes, everything outside [a-z0-9._-] collapses to a single
// dash and leading/trailing dashes and dots are dropped.
//
//	Slugify("apps/web") == "apps-web"
//	Slugify("**/*.ts")  == "ts"
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "/", "-")
	s = slugUnsafe.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-.")
}
