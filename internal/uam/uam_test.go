package uam

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/joelklabo/markdowntown/internal/errors"
)

const sampleYAML = `schemaVersion: 1
meta:
  title: Sample
scopes:
  - id: root
    kind: global
  - id: src
    kind: dir
    dir: src/
  - id: ts
    kind: glob
    name: TypeScript
    patterns: ["**/*.ts"]
blocks:
  - id: b1
    scopeId: root
    kind: markdown
    body: Be concise.
  - scopeId: src
    body: Prefer small functions.
targets:
  - targetId: agents-md
  - targetId: cursor-rules
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.SchemaVersion)
	assert.Equal(t, "Sample", doc.Meta.Title)
	require.Len(t, doc.Scopes, 3)
	assert.Equal(t, KindDir, doc.Scopes[1].Kind)
	assert.Equal(t, "src/", doc.Scopes[1].Dir)
	assert.Equal(t, []string{"**/*.ts"}, doc.Scopes[2].Patterns)

	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "b1", doc.Blocks[0].ID)
	assert.NotEmpty(t, doc.Blocks[1].ID, "id-less blocks get a generated id")
	assert.Equal(t, BlockKindMarkdown, doc.Blocks[1].Kind)

	assert.Equal(t, []string{"agents-md", "cursor-rules"}, doc.TargetIDs())
}

func TestParse_JSON(t *testing.T) {
	doc, err := Parse([]byte(`{"schemaVersion":1,"meta":{"title":"J"},"scopes":[{"id":"g","kind":"global"}],"blocks":[{"id":"a","scopeId":"g","kind":"markdown","body":"x"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "J", doc.Meta.Title)
	assert.Equal(t, "x", doc.Blocks[0].Body)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("scopes: [unterminated"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "valid", input: sampleYAML},
		{
			name:    "wrong schema version",
			input:   "schemaVersion: 2\nmeta: {title: x}\nscopes: []\nblocks: []\n",
			wantErr: "schemaVersion",
		},
		{
			name:    "unknown scope kind",
			input:   "schemaVersion: 1\nmeta: {title: x}\nscopes: [{id: a, kind: repo}]\nblocks: []\n",
			wantErr: "kind",
		},
		{
			name:    "dir scope without dir",
			input:   "schemaVersion: 1\nmeta: {title: x}\nscopes: [{id: a, kind: dir}]\nblocks: []\n",
			wantErr: "dir",
		},
		{
			name:    "glob scope without patterns",
			input:   "schemaVersion: 1\nmeta: {title: x}\nscopes: [{id: a, kind: glob, patterns: []}]\nblocks: []\n",
			wantErr: "patterns",
		},
		{
			name:    "non-markdown block",
			input:   "schemaVersion: 1\nmeta: {title: x}\nscopes: [{id: a, kind: global}]\nblocks: [{scopeId: a, kind: html, body: x}]\n",
			wantErr: "kind",
		},
		{
			name:    "not yaml",
			input:   "scopes: [unterminated",
			wantErr: "not valid YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.input))
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_DanglingScopeIsNotASchemaError(t *testing.T) {
	input := "schemaVersion: 1\nmeta: {title: x}\nscopes: [{id: a, kind: global}]\nblocks: [{scopeId: missing, body: x}]\n"
	assert.NoError(t, Validate([]byte(input)))
}

func TestLoad(t *testing.T) {
	doc, err := Load(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	assert.Len(t, doc.Scopes, 3)

	_, err = Load(strings.NewReader("schemaVersion: 3\nmeta: {title: x}\nscopes: []\nblocks: []\n"))
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agents.uam.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Sample", doc.Meta.Title)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("schemaVersion: 9\nmeta: {title: x}\nscopes: []\nblocks: []\n"), 0o600))
	_, err = LoadFile(bad)
	require.Error(t, err)
	var detail *oerrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, bad, detail.Location)
}

func TestDocumentHelpers(t *testing.T) {
	doc := &Document{
		Scopes: []Scope{GlobalScope("g"), DirScope("d", "src")},
		Blocks: []Block{
			MarkdownBlock("1", "g", "one"),
			MarkdownBlock("2", "d", "two"),
			MarkdownBlock("3", "g", "three"),
			MarkdownBlock("4", "nope", "four"),
		},
	}

	s, ok := doc.ScopeByID("d")
	require.True(t, ok)
	assert.Equal(t, "src", s.Dir)
	_, ok = doc.ScopeByID("x")
	assert.False(t, ok)

	blocks := doc.BlocksFor("g")
	require.Len(t, blocks, 2)
	assert.Equal(t, "one", blocks[0].Body)
	assert.Equal(t, "three", blocks[1].Body)

	dangling := doc.DanglingBlocks()
	require.Len(t, dangling, 1)
	assert.Equal(t, "4", dangling[0].ID)

	assert.Empty(t, doc.TargetIDs())
}

func TestMarshalRoundTripKeepsFieldNames(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	out, err := Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "scopeId: src")
	assert.Contains(t, string(out), "schemaVersion: 1")
}
