package output

import (
	"fmt"
	"strings"
)

// Format specifies how command results are printed.
type Format string

const (
	// FormatText prints styled, human-readable output.
	FormatText Format = "text"

	// FormatJSON prints indented JSON.
	FormatJSON Format = "json"

	// FormatYAML prints YAML.
	FormatYAML Format = "yaml"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a --output flag value. An empty value is text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// ValidFormats returns the accepted --output values.
func ValidFormats() []string {
	return []string{"text", "json", "yaml"}
}
