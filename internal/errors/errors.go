// Package errors provides sentinel errors, structured error details and exit
// codes for the uamc CLI and the packages it drives.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// DetailError captures structured error information for display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path, optionally with a line number.
	Location string

	// Field is the document field the error refers to.
	Field string

	// Context contains additional key-value context.
	Context map[string]string

	// Hint provides actionable guidance.
	Hint string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(strings.ReplaceAll(e.Message, "\n", "\n  "))
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewPermissionError creates a permission denied error with details.
func NewPermissionError(message string, context map[string]string, hint string) error {
	return &DetailError{
		Type:    "permission denied",
		Message: message,
		Context: context,
		Hint:    hint,
		Cause:   ErrPermission,
	}
}

// NewUnknownTargetError reports a compile target id that no adapter serves.
func NewUnknownTargetError(id string, available []string) error {
	return &DetailError{
		Type:    "unknown target",
		Message: fmt.Sprintf("no adapter registered for target %q", id),
		Field:   "targets",
		Hint:    "Available targets: " + strings.Join(available, ", "),
		Cause:   ErrUnknownTarget,
	}
}

// NewUnknownToolError reports a simulator tool id without discovery rules.
func NewUnknownToolError(id string, available []string) error {
	return &DetailError{
		Type:    "unknown tool",
		Message: fmt.Sprintf("no discovery rules for tool %q", id),
		Field:   "tool",
		Hint:    "Available tools: " + strings.Join(available, ", "),
		Cause:   ErrUnknownTool,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
