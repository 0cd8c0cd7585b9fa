package output

import (
	"fmt"
	"strings"
)

// ModifiedItem is a modified file for RenderDrift.
type ModifiedItem struct {
	Path string
	Diff string
}

// RenderDrift renders a drift report: files the compiler would add, files
// it would rewrite with their diffs, and a summary line.
func RenderDrift(added []string, modified []ModifiedItem, unchanged int, styles *Styles) string {
	if len(added) == 0 && len(modified) == 0 {
		return fmt.Sprintf("No drift: %s up to date.\n", FormatCount(unchanged, "file"))
	}

	var sb strings.Builder

	if len(added) > 0 {
		sb.WriteString(styles.Success.Render("Added:"))
		sb.WriteString("\n")
		for _, p := range added {
			sb.WriteString("  + ")
			sb.WriteString(styles.Success.Render(p))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(modified) > 0 {
		sb.WriteString(styles.Warning.Render("Modified:"))
		sb.WriteString("\n")
		for _, m := range modified {
			sb.WriteString("  ~ ")
			sb.WriteString(styles.Warning.Render(m.Path))
			sb.WriteString("\n")
			if m.Diff == "" {
				sb.WriteString(styles.Muted.Render("    (formatting only)"))
				sb.WriteString("\n")
			}
			sb.WriteString(IndentDiff(m.Diff, "    "))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("Summary: ")
	sb.WriteString(driftSummary(len(added), len(modified), unchanged))
	sb.WriteString("\n")
	return sb.String()
}

// IndentDiff indents every non-empty line of diff.
func IndentDiff(diff, indent string) string {
	if diff == "" {
		return ""
	}
	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func driftSummary(added, modified, unchanged int) string {
	parts := make([]string, 0, 3)
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", added))
	}
	if modified > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", modified))
	}
	if unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", unchanged))
	}
	return strings.Join(parts, ", ")
}
