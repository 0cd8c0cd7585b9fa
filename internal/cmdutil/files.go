package cmdutil

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	oerrors "github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/output"
	"github.com/joelklabo/markdowntown/internal/pathutil"
	"github.com/joelklabo/markdowntown/internal/uam"
)

// FileStatus is the outcome of writing one compiled file.
type FileStatus struct {
	Path   string `json:"path"`
	Status string `json:"status"`
}

// WriteFiles writes compiled files under dir, creating directories as
// needed. Files whose content is already on disk are left untouched and
// reported as unchanged.
func WriteFiles(dir string, files []uam.CompiledFile) ([]FileStatus, error) {
	statuses := make([]FileStatus, 0, len(files))
	for _, f := range files {
		rel, err := pathutil.JoinRepoPath(f.Path)
		if err != nil || rel == "" {
			return statuses, oerrors.NewValidationError(
				fmt.Sprintf("refusing to write %q outside the output directory", f.Path), dir, "", "")
		}
		target := filepath.Join(dir, filepath.FromSlash(rel))

		status := output.StatusAdded
		existing, err := os.ReadFile(target)
		switch {
		case err == nil && bytes.Equal(existing, []byte(f.Content)):
			statuses = append(statuses, FileStatus{Path: rel, Status: output.StatusUnchanged})
			continue
		case err == nil:
			status = output.StatusModified
		case !errors.Is(err, fs.ErrNotExist):
			return statuses, writeError(target, err)
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return statuses, writeError(filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, []byte(f.Content), 0o644); err != nil {
			return statuses, writeError(target, err)
		}
		statuses = append(statuses, FileStatus{Path: rel, Status: status})
	}
	return statuses, nil
}

func writeError(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return oerrors.NewPermissionError("cannot write compiled file",
			map[string]string{"Path": path}, "Choose a writable --out-dir.")
	}
	return fmt.Errorf("writing %s: %w", path, err)
}
