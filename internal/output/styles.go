package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: documents, namespaces, identities.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "remapped" status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for statuses that need an operator's attention.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for the "failed" status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Document and ID status constants.
const (
	StatusRemapped  = "remapped"
	StatusUnchanged = "unchanged"
	StatusWarning   = "warning"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// StatusStyle returns the style for a status string. Unknown statuses are
// unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusRemapped:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusWarning:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged, StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minDocumentColumnWidth keeps status words aligned.
const minDocumentColumnWidth = 48

// FormatDocumentLine renders a document path with a right-aligned,
// color-coded status suffix.
//
// Format: d:<path>  <status> (<detail>)
func FormatDocumentLine(path, status, detail string) string {
	padding := minDocumentColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	line := StyleDim.Render("d:") + StyleNoun.Render(path) +
		strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
	if detail != "" {
		line += " " + StyleDim.Render(fmt.Sprintf("(%s)", detail))
	}
	return line
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
