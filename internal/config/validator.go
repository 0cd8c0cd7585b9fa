package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"sigs.k8s.io/yaml"

	oerrors "github.com/joelklabo/markdowntown/internal/errors"
)

//go:embed schema/config.cue
var configSchemaCUE []byte

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(configSchemaCUE, cue.Filename("config.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema.LookupPath(cue.ParsePath("#Config")),
	}, nil
}

// Validate validates an already loaded configuration.
func (v *Validator) Validate(cfg *Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := v.validateJSON(data, ""); err != nil {
		return err
	}
	return checkPatterns(cfg, "")
}

// ValidateBytes validates raw YAML config file contents. location names the
// source in error output.
func (v *Validator) ValidateBytes(data []byte, location string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  fmt.Sprintf("config is not valid YAML: %v", err),
			Location: location,
			Cause:    oerrors.ErrValidation,
		}
	}
	if err := v.validateJSON(jsonData, location); err != nil {
		return err
	}

	var cfg Config
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  fmt.Sprintf("decoding config: %v", err),
			Location: location,
			Cause:    oerrors.ErrValidation,
		}
	}
	return checkPatterns(&cfg, location)
}

// ValidateFile validates a configuration file at the given path.
func (v *Validator) ValidateFile(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return oerrors.NewNotFoundError("config file not found", expanded,
				"Run 'uamc config init' to create one.")
		case errors.Is(err, fs.ErrPermission):
			return oerrors.NewPermissionError("cannot read config file",
				map[string]string{"Path": expanded}, "Check the file permissions.")
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	return v.ValidateBytes(data, expanded)
}

func (v *Validator) validateJSON(data []byte, location string) error {
	value := v.ctx.CompileBytes(data, cue.Filename("config.json"))
	if err := value.Err(); err != nil {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  formatCUEErrors(err),
			Location: location,
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := v.schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "config does not match the schema:\n" + formatCUEErrors(err),
			Location: location,
			Hint:     "Known keys: " + strings.Join(Keys, ", "),
			Cause:    oerrors.ErrValidation,
		}
	}
	return nil
}

func checkPatterns(cfg *Config, location string) error {
	pattern, err := cfg.checkPatterns()
	if err == nil {
		return nil
	}
	return oerrors.NewValidationError(
		fmt.Sprintf("invalid includeOnly pattern %q: %v", pattern, err),
		location, KeyScanIncludeOnly, "Patterns are Go regular expressions (RE2 syntax).")
}

// formatCUEErrors renders one "path: message" line per distinct CUE error.
func formatCUEErrors(err error) string {
	var lines []string
	seen := make(map[string]bool)
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		line := fmt.Sprintf(format, args...)
		if path := strings.Join(e.Path(), "."); path != "" {
			line = path + ": " + line
		}
		if !seen[line] {
			seen[line] = true
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return err.Error()
	}
	return strings.Join(lines, "\n")
}
