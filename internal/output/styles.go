package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Use these instead of inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: paths, target and tool ids.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for added files.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for modified files and warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for errors.
	ColorRed = lipgloss.Color("196")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Styles groups the styles used by renderers.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Noun    lipgloss.Style
}

// GetStyles returns the default renderer styles.
func GetStyles() *Styles {
	return &Styles{
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(ColorDimGray),
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Error:   lipgloss.NewStyle().Foreground(ColorRed),
		Noun:    StyleNoun,
	}
}

// File status constants used in compile and drift listings.
const (
	StatusAdded     = "added"
	StatusModified  = "modified"
	StatusUnchanged = "unchanged"
	StatusWritten   = "written"
)

// StatusStyle returns the style for a file status. Unknown statuses are
// unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusAdded, StatusWritten:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusModified:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth keeps status words aligned across lines.
const minPathColumnWidth = 48

// FormatFileLine renders a file path with a right-aligned, color-coded
// status suffix:
//
//	f:<path>  <status>
func FormatFileLine(path, status string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}
	return StyleDim.Render("f:") + StyleNoun.Render(path) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatWarning renders a warning line.
func FormatWarning(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorYellow).Render("!") + " " + msg
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCount renders "N noun" with a naive plural.
func FormatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
