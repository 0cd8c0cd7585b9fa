package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/output"
)

// DirEntry is one child of a directory handle. Dir is nil for files.
type DirEntry struct {
	Name string
	Dir  DirHandle
}

// DirHandle is a readable directory, such as a browser directory handle or
// a directory in an fs.FS.
type DirHandle interface {
	Name() string
	Entries(ctx context.Context) ([]DirEntry, error)
}

// fsDir is a DirHandle over a directory of an fs.FS.
type fsDir struct {
	fsys fs.FS
	dir  string
}

// NewFSHandle returns a DirHandle for dir inside fsys. Use "." for the root.
func NewFSHandle(fsys fs.FS, dir string) DirHandle {
	return &fsDir{fsys: fsys, dir: dir}
}

func (d *fsDir) Name() string {
	return path.Base(d.dir)
}

func (d *fsDir) Entries(ctx context.Context) ([]DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(d.fsys, d.dir)
	if err != nil {
		return nil, err
	}

	out := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		entry := DirEntry{Name: e.Name()}
		if e.IsDir() {
			entry.Dir = &fsDir{fsys: d.fsys, dir: path.Join(d.dir, e.Name())}
		} else if !e.Type().IsRegular() {
			// Symlinks, sockets and devices are not instruction files.
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// ScanRepoTree walks root depth-first and builds a ScanResult.
//
// Ignored directories are not descended into. A subdirectory that cannot be
// read is skipped; only a failure to read root itself is returned. The walk
// stops as soon as the cap is reached or ctx is done.
func ScanRepoTree(ctx context.Context, root DirHandle, opts Options) (ScanResult, error) {
	c := newCollector(opts)

	entries, err := root.Entries(ctx)
	if err != nil {
		return ScanResult{}, fmt.Errorf("reading %s: %w", root.Name(), err)
	}
	if _, err := c.walk(ctx, "", entries); err != nil {
		return ScanResult{}, err
	}
	return c.result, nil
}

// walk returns false once the cap has been reached.
func (c *collector) walk(ctx context.Context, prefix string, entries []DirEntry) (bool, error) {
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		rel := e.Name
		if prefix != "" {
			rel = prefix + "/" + e.Name
		}

		if e.Dir == nil {
			if !c.add(rel) {
				return false, nil
			}
			continue
		}

		if c.ignoredDir(e.Name) {
			continue
		}
		children, err := e.Dir.Entries(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return false, ctxErr
			}
			output.Debug("skipping unreadable directory", "dir", rel, "err", err)
			continue
		}
		more, err := c.walk(ctx, rel, children)
		if err != nil || !more {
			return more, err
		}
	}
	return true, nil
}

// ScanDir scans a directory on the local filesystem.
func ScanDir(ctx context.Context, dir string, opts Options) (ScanResult, error) {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return ScanResult{}, errors.NewNotFoundError("directory not found", dir, "")
	case os.IsPermission(err):
		return ScanResult{}, errors.NewPermissionError("cannot read directory", map[string]string{"Dir": dir}, "")
	case err != nil:
		return ScanResult{}, fmt.Errorf("scanning %s: %w", dir, err)
	case !info.IsDir():
		return ScanResult{}, errors.NewValidationError("not a directory", dir, "", "Pass the repository root directory.")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	output.Debug("scanning directory", "dir", abs)
	return ScanRepoTree(ctx, NewFSHandle(os.DirFS(dir), "."), opts)
}
