package archive

import (
	stdzip "archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/uam"
)

func TestZipBytes_ReadableByStandardReader(t *testing.T) {
	files := []uam.CompiledFile{
		{Path: "AGENTS.md", Content: "root rules"},
		{Path: "src/AGENTS.md", Content: "src rules"},
		{Path: ".cursor/rules/global.mdc", Content: "---\nalwaysApply: true\n---\n"},
	}

	data, err := ZipBytes(files)
	require.NoError(t, err)

	zr, err := stdzip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, len(files))

	for i, zf := range zr.File {
		assert.Equal(t, files[i].Path, zf.Name)

		rc, err := zf.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		assert.Equal(t, files[i].Content, string(content))
	}
}

func TestZipBytes_Empty(t *testing.T) {
	data, err := ZipBytes(nil)
	require.NoError(t, err)

	zr, err := stdzip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Empty(t, zr.File)
}

func TestCreateZip_RejectsBadPaths(t *testing.T) {
	tests := []struct {
		name  string
		files []uam.CompiledFile
	}{
		{"traversal", []uam.CompiledFile{{Path: "../evil.md"}}},
		{"empty", []uam.CompiledFile{{Path: ""}}},
		{"duplicate", []uam.CompiledFile{{Path: "a.md"}, {Path: "./a.md"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := CreateZip(&buf, tt.files)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
			assert.Zero(t, buf.Len())
		})
	}
}
