// Package uam defines the Universal Agent Model: a platform-agnostic
// document of scopes and markdown instruction blocks that the compiler turns
// into each tool's native instruction files.
package uam

// SchemaVersion is the document schema version understood by this module.
const SchemaVersion = 1

// ScopeKind discriminates the Scope variants.
type ScopeKind string

const (
	// KindGlobal applies repo-wide.
	KindGlobal ScopeKind = "global"

	// KindDir applies to a directory subtree.
	KindDir ScopeKind = "dir"

	// KindGlob applies to files matching any of a set of patterns.
	KindGlob ScopeKind = "glob"
)

// BlockKindMarkdown is the only block kind currently defined.
const BlockKindMarkdown = "markdown"

// Document is a UAM document.
type Document struct {
	SchemaVersion int          `json:"schemaVersion"`
	Meta          Meta         `json:"meta"`
	Scopes        []Scope      `json:"scopes"`
	Blocks        []Block      `json:"blocks"`
	Capabilities  []Capability `json:"capabilities"`
	Targets       []TargetRef  `json:"targets"`
}

// Meta holds document metadata.
type Meta struct {
	Title string `json:"title"`
}

// Scope is a declared applicability region.
//
// Only the fields of the variant named by Kind are meaningful: Dir for
// KindDir, Patterns and Name for KindGlob. Any other Kind value is treated as
// malformed by the compiler adapters.
type Scope struct {
	ID       string    `json:"id"`
	Kind     ScopeKind `json:"kind"`
	Dir      string    `json:"dir,omitempty"`
	Patterns []string  `json:"patterns,omitempty"`
	Name     string    `json:"name,omitempty"`
}

// Block is a unit of markdown instruction text bound to one scope.
type Block struct {
	ID      string `json:"id"`
	ScopeID string `json:"scopeId"`
	Kind    string `json:"kind"`
	Body    string `json:"body"`
}

// Capability is an opaque capability declaration carried through unchanged.
type Capability struct {
	ID     string         `json:"id"`
	Params map[string]any `json:"params,omitempty"`
}

// TargetRef names a compile target the document is meant for.
type TargetRef struct {
	TargetID string         `json:"targetId"`
	Options  map[string]any `json:"options,omitempty"`
}

// CompiledFile is one output file produced by an adapter.
type CompiledFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// CompileResult is the output of a single adapter run.
type CompileResult struct {
	Files    []CompiledFile `json:"files"`
	Warnings []string       `json:"warnings"`
}

// GlobalScope returns a global scope with the given id.
func GlobalScope(id string) Scope {
	return Scope{ID: id, Kind: KindGlobal}
}

// DirScope returns a directory scope.
func DirScope(id, dir string) Scope {
	return Scope{ID: id, Kind: KindDir, Dir: dir}
}

// GlobScope returns a glob scope. name may be empty.
func GlobScope(id, name string, patterns ...string) Scope {
	return Scope{ID: id, Kind: KindGlob, Name: name, Patterns: patterns}
}

// MarkdownBlock returns a markdown block bound to scopeID.
func MarkdownBlock(id, scopeID, body string) Block {
	return Block{ID: id, ScopeID: scopeID, Kind: BlockKindMarkdown, Body: body}
}

// ScopeByID returns the scope with the given id.
func (d *Document) ScopeByID(id string) (Scope, bool) {
	for _, s := range d.Scopes {
		if s.ID == id {
			return s, true
		}
	}
	return Scope{}, false
}

// BlocksFor returns the blocks bound to scopeID in document order.
func (d *Document) BlocksFor(scopeID string) []Block {
	var out []Block
	for _, b := range d.Blocks {
		if b.ScopeID == scopeID {
			out = append(out, b)
		}
	}
	return out
}

// DanglingBlocks returns blocks whose scopeId matches no declared scope.
func (d *Document) DanglingBlocks() []Block {
	known := make(map[string]bool, len(d.Scopes))
	for _, s := range d.Scopes {
		known[s.ID] = true
	}
	var out []Block
	for _, b := range d.Blocks {
		if !known[b.ScopeID] {
			out = append(out, b)
		}
	}
	return out
}

// TargetIDs returns the ids of the document's declared targets in order.
func (d *Document) TargetIDs() []string {
	ids := make([]string, 0, len(d.Targets))
	for _, t := range d.Targets {
		ids = append(ids, t.TargetID)
	}
	return ids
}
