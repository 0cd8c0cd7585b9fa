package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joelklabo/markdowntown/internal/uam"
)

// placement is where an adapter puts a scope. An empty path means the scope
// is skipped; warning, if set, is reported either way.
type placement struct {
	path    string
	warning string
}

// placeFunc maps one scope to its output path.
type placeFunc func(s uam.Scope) placement

// fileGroup collects every scope, and their blocks, that land on one path.
type fileGroup struct {
	path   string
	scopes []uam.Scope
	blocks []uam.Block
}

// bodies returns the group's block bodies in merge order.
func (g *fileGroup) bodies() []string {
	out := make([]string, 0, len(g.blocks))
	for _, b := range g.blocks {
		out = append(out, b.Body)
	}
	return out
}

// groupScopes places every scope of doc and merges scopes that share a path.
//
// Scopes are visited in declaration order and blocks keep document order
// within each scope, so a merged file holds the first scope's blocks, then
// the second's. Groups whose scopes carry no blocks are dropped from the
// returned slice but still count when detecting path collisions. The result
// is sorted by path.
func groupScopes(doc *uam.Document, place placeFunc) ([]*fileGroup, []string) {
	var warnings []string

	for _, b := range doc.DanglingBlocks() {
		warnings = append(warnings, fmt.Sprintf("block %q references unknown scope %q", b.ID, b.ScopeID))
	}

	byPath := make(map[string]*fileGroup)
	var order []*fileGroup
	seenIDs := make(map[string]bool, len(doc.Scopes))

	for _, s := range doc.Scopes {
		if seenIDs[s.ID] {
			warnings = append(warnings, fmt.Sprintf("scope %q is declared more than once; later declarations are ignored", s.ID))
			continue
		}
		seenIDs[s.ID] = true

		p := place(s)
		if p.warning != "" {
			warnings = append(warnings, p.warning)
		}
		if p.path == "" {
			continue
		}

		g, ok := byPath[p.path]
		if !ok {
			g = &fileGroup{path: p.path}
			byPath[p.path] = g
			order = append(order, g)
		}
		g.scopes = append(g.scopes, s)
		g.blocks = append(g.blocks, doc.BlocksFor(s.ID)...)
	}

	groups := make([]*fileGroup, 0, len(order))
	for _, g := range order {
		if len(g.scopes) > 1 {
			ids := make([]string, 0, len(g.scopes))
			for _, s := range g.scopes {
				ids = append(ids, fmt.Sprintf("%q", s.ID))
			}
			warnings = append(warnings, fmt.Sprintf(
				"Multiple scopes map to %s (%s); their blocks were merged in declaration order",
				g.path, strings.Join(ids, ", ")))
		}
		if len(g.blocks) > 0 {
			groups = append(groups, g)
		}
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].path < groups[j].path })
	return groups, warnings
}

func unsupportedKindWarning(s uam.Scope, target string) string {
	return fmt.Sprintf("scope %q has unsupported kind %q for %s; skipped", s.ID, s.Kind, target)
}

func escapeWarning(s uam.Scope) string {
	return fmt.Sprintf("scope %q: dir %q escapes the repository root; skipped", s.ID, s.Dir)
}
