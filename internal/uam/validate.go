package uam

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"sigs.k8s.io/yaml"

	oerrors "github.com/joelklabo/markdowntown/internal/errors"
)

//go:embed schema/uam.cue
var schemaCUE []byte

// Validate checks raw YAML or JSON document bytes against the embedded UAM
// schema.
//
// Scope references are not checked here: a block pointing at an unknown
// scope is still a valid document and is reported by each adapter instead.
func Validate(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return &oerrors.DetailError{
			Type:    "validation failed",
			Message: fmt.Sprintf("document is not valid YAML or JSON: %v", err),
			Cause:   oerrors.ErrValidation,
		}
	}

	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE, cue.Filename("uam.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling UAM schema: %w", err)
	}

	value := ctx.CompileBytes(jsonData, cue.Filename("document.json"))
	if err := value.Err(); err != nil {
		return &oerrors.DetailError{
			Type:    "validation failed",
			Message: formatCUEErrors(err),
			Cause:   oerrors.ErrValidation,
		}
	}

	def := schema.LookupPath(cue.ParsePath("#Document"))
	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return &oerrors.DetailError{
			Type:    "validation failed",
			Message: "document does not match the UAM schema:\n" + formatCUEErrors(err),
			Hint:    fmt.Sprintf("schemaVersion must be %d; scopes need id and kind (global, dir, glob).", SchemaVersion),
			Cause:   oerrors.ErrValidation,
		}
	}
	return nil
}

// formatCUEErrors renders one "path: message" line per distinct CUE error.
func formatCUEErrors(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}

	seen := make(map[string]bool, len(errs))
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		format, args := e.Msg()
		line := fmt.Sprintf(format, args...)
		if path := strings.Join(e.Path(), "."); path != "" {
			line = path + ": " + line
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
