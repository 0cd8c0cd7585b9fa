package simulate

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/joelklabo/markdowntown/internal/pathutil"
)

const cursorLegacyFile = ".cursorrules"

// resolveCursor loads the legacy .cursorrules file and then every
// .cursor/rules/**/*.mdc file at each level from the root to cwd.
//
// Rules whose content is known are filtered by their front matter:
// alwaysApply rules always load; other rules load only when one of their
// globs matches a file under cwd. Globs are relative to the directory that
// owns the .cursor folder.
func resolveCursor(t *treeIndex, cwd string) ([]string, []Warning) {
	var (
		out      []string
		warnings []Warning
	)

	if t.has(cursorLegacyFile) {
		out = append(out, cursorLegacyFile)
		warnings = append(warnings, Warning{
			Code:    CodeCursorLegacy,
			Message: ".cursorrules is deprecated; move its rules to .cursor/rules/*.mdc",
		})
	}

	for _, dir := range pathutil.Ancestors(cwd) {
		for _, p := range t.under(dir, ".cursor/rules/") {
			if !strings.HasSuffix(p, ".mdc") {
				continue
			}
			content, ok := t.content[p]
			if !ok {
				out = append(out, p)
				continue
			}

			fm, found, err := parseRuleFrontMatter(content)
			switch {
			case err != nil:
				warnings = append(warnings, Warning{
					Code:    CodeCursorFrontMatter,
					Message: fmt.Sprintf("%s: %v", p, err),
				})
				out = append(out, p)
			case !found || fm.AlwaysApply:
				out = append(out, p)
			case t.anyMatch(dir, cwd, fm.Globs):
				out = append(out, p)
			}
		}
	}
	return out, warnings
}

// anyMatch reports whether a file under cwd, taken relative to base,
// matches one of globs.
func (t *treeIndex) anyMatch(base, cwd string, globs []string) bool {
	for _, p := range t.paths {
		if !pathutil.IsWithin(p, cwd) || !pathutil.IsWithin(p, base) {
			continue
		}
		rel := p
		if base != "" {
			rel = strings.TrimPrefix(p, base+"/")
		}
		for _, g := range globs {
			if ok, err := doublestar.Match(g, rel); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// ruleFrontMatter is the subset of .mdc front matter that affects loading.
type ruleFrontMatter struct {
	Description string   `yaml:"description"`
	Globs       globList `yaml:"globs"`
	AlwaysApply bool     `yaml:"alwaysApply"`
}

// globList accepts either a YAML sequence or a comma-separated string.
type globList []string

func (g *globList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*g = nil
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				*g = append(*g, part)
			}
		}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*g = list
		return nil
	default:
		return fmt.Errorf("globs: expected a list or a string, line %d", value.Line)
	}
}

// parseRuleFrontMatter extracts the front matter of a rule file. found is
// false when the content has no leading "---" block.
func parseRuleFrontMatter(content string) (ruleFrontMatter, bool, error) {
	var fm ruleFrontMatter

	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, "---\n") {
		return fm, false, nil
	}
	rest := content[len("---\n"):]

	end := strings.Index(rest, "\n---")
	if end < 0 {
		if strings.HasPrefix(rest, "---") {
			return fm, true, nil
		}
		return fm, false, fmt.Errorf("unterminated front matter")
	}

	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return fm, true, fmt.Errorf("parsing front matter: %w", err)
	}
	return fm, true, nil
}
