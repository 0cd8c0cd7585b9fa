// Package archive bundles compiled instruction files into a zip archive.
package archive

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"

	"github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/pathutil"
	"github.com/joelklabo/markdowntown/internal/uam"
)

// CreateZip writes files to w as a deflated zip archive. Each file's path
// becomes its entry name. Paths that escape the archive root or repeat an
// earlier entry are rejected before anything is written.
func CreateZip(w io.Writer, files []uam.CompiledFile) error {
	names := make([]string, 0, len(files))
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		name, err := pathutil.JoinRepoPath(f.Path)
		if err != nil || name == "" {
			return errors.NewValidationError(fmt.Sprintf("invalid archive entry %q", f.Path), "", "path", "")
		}
		if seen[name] {
			return errors.NewValidationError(fmt.Sprintf("duplicate archive entry %q", name), "", "path", "")
		}
		seen[name] = true
		names = append(names, name)
	}

	zw := zip.NewWriter(w)
	for i, f := range files {
		entry, err := zw.CreateHeader(&zip.FileHeader{Name: names[i], Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("creating entry %s: %w", names[i], err)
		}
		if _, err := io.WriteString(entry, f.Content); err != nil {
			return fmt.Errorf("writing entry %s: %w", names[i], err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

// ZipBytes returns the archive for files as a byte slice.
func ZipBytes(files []uam.CompiledFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := CreateZip(&buf, files); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
