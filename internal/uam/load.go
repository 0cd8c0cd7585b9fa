package uam

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"sigs.k8s.io/yaml"

	oerrors "github.com/joelklabo/markdowntown/internal/errors"
)

// Parse decodes a UAM document from YAML or JSON.
//
// Decoding goes through the document's json tags, so both encodings accept
// the same field names. Blocks without an id get a generated one and blocks
// without a kind default to markdown. Parse does not validate the document
// against the schema; call Validate first when the input is untrusted.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oerrors.DetailError{
			Type:    "validation failed",
			Message: fmt.Sprintf("decoding document: %v", err),
			Hint:    "UAM documents are YAML or JSON.",
			Cause:   oerrors.ErrValidation,
		}
	}
	fillDefaults(&doc)
	return &doc, nil
}

// Load reads a document from r, validates it and parses it.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadFile reads, validates and parses the UAM document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("document not found", path, "")
		}
		if os.IsPermission(err) {
			return nil, oerrors.NewPermissionError("cannot read document", map[string]string{"Path": path}, "")
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := Validate(data); err != nil {
		return nil, withLocation(err, path)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, withLocation(err, path)
	}
	return doc, nil
}

// Marshal encodes a document as YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

func fillDefaults(doc *Document) {
	for i := range doc.Blocks {
		if doc.Blocks[i].ID == "" {
			doc.Blocks[i].ID = uuid.NewString()
		}
		if doc.Blocks[i].Kind == "" {
			doc.Blocks[i].Kind = BlockKindMarkdown
		}
	}
}

func withLocation(err error, path string) error {
	if d, ok := err.(*oerrors.DetailError); ok && d.Location == "" { //nolint:errorlint // only the top-level detail gets a location
		d.Location = path
	}
	return err
}
