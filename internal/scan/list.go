package scan

import (
	"errors"
	"strings"

	"github.com/joelklabo/markdowntown/internal/pathutil"
)

// FileEntry is one record of a flat file list, shaped like a browser File
// from a folder picker.
type FileEntry interface {
	// Name is the file's base name.
	Name() string

	// RelativePath is the path including the picked root folder,
	// e.g. "my-repo/src/main.go".
	RelativePath() string

	// Content reads the file. Scans never call it.
	Content() ([]byte, error)
}

// ListedFile is a FileEntry backed by plain strings.
type ListedFile struct {
	FileName           string
	WebkitRelativePath string

	// Read, if set, supplies the file content on demand.
	Read func() ([]byte, error)
}

var errNoContent = errors.New("listed file has no content reader")

func (f ListedFile) Name() string         { return f.FileName }
func (f ListedFile) RelativePath() string { return f.WebkitRelativePath }

func (f ListedFile) Content() ([]byte, error) {
	if f.Read == nil {
		return nil, errNoContent
	}
	return f.Read()
}

// ListedFiles builds entries for repo-relative paths, placing them under a
// synthetic root folder named root.
func ListedFiles(root string, paths ...string) []FileEntry {
	out := make([]FileEntry, 0, len(paths))
	for _, p := range paths {
		p = pathutil.NormalizeDirPath(p)
		out = append(out, ListedFile{FileName: pathutil.Base(p), WebkitRelativePath: root + "/" + p})
	}
	return out
}

// ScanFileList builds a ScanResult from a flat file list.
//
// The first segment of each entry's relative path is the picked root folder
// and is stripped; entries without a folder segment use their name. Entries
// are processed in input order and file contents are never read.
func ScanFileList(files []FileEntry, opts Options) ScanResult {
	c := newCollector(opts)
	for _, f := range files {
		path := listedPath(f)
		if path == "" || pathutil.Escapes(path) || c.ignoredPath(path) {
			continue
		}
		if !c.add(path) {
			break
		}
	}
	return c.result
}

func listedPath(f FileEntry) string {
	rel := strings.ReplaceAll(f.RelativePath(), "\\", "/")
	rel = pathutil.NormalizeDirPath(rel)
	if i := strings.Index(rel, "/"); i >= 0 {
		return pathutil.NormalizeDirPath(rel[i+1:])
	}
	return pathutil.NormalizeDirPath(f.Name())
}
