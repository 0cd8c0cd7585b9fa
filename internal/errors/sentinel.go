package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates malformed input: a document that fails the UAM
	// schema, an invalid flag value or an unusable path.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a document, directory or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrUnknownTarget indicates a compile target id with no registered adapter.
	ErrUnknownTarget = fmt.Errorf("unknown target: %w", ErrValidation)

	// ErrUnknownTool indicates a simulator tool id with no discovery rules.
	ErrUnknownTool = fmt.Errorf("unknown tool: %w", ErrValidation)
)
