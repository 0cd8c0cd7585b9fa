package compiler

import (
	"github.com/joelklabo/markdowntown/internal/errors"
	"github.com/joelklabo/markdowntown/internal/uam"
)

// Compile runs the adapters named by targetIDs against doc and returns one
// result per target id.
//
// When targetIDs is empty the document's own targets are used. Every id is
// resolved before any adapter runs: an unknown id fails the whole call with
// an error wrapping errors.ErrUnknownTarget. Repeated ids compile once.
func Compile(reg *Registry, doc *uam.Document, targetIDs []string) (map[string]uam.CompileResult, error) {
	if len(targetIDs) == 0 {
		targetIDs = doc.TargetIDs()
	}
	if len(targetIDs) == 0 {
		return nil, errors.NewValidationError(
			"no compile targets requested",
			"", "targets",
			"Pass at least one target or list them under targets in the document.",
		)
	}

	adapters := make([]Adapter, 0, len(targetIDs))
	seen := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		a, ok := reg.Lookup(id)
		if !ok {
			return nil, errors.NewUnknownTargetError(id, reg.IDs())
		}
		adapters = append(adapters, a)
	}

	results := make(map[string]uam.CompileResult, len(adapters))
	for _, a := range adapters {
		res := a.Compile(doc)
		if res.Files == nil {
			res.Files = []uam.CompiledFile{}
		}
		if res.Warnings == nil {
			res.Warnings = []string{}
		}
		results[a.ID] = res
	}
	return results, nil
}
