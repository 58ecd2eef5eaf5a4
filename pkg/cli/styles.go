package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/result"
)

// Color palette of the CLI output.
var (
	colorCyan       = lipgloss.Color("14")
	colorGreen      = lipgloss.Color("82")
	colorYellow     = lipgloss.Color("220")
	colorBoldRed    = lipgloss.Color("204")
	colorGreenCheck = lipgloss.Color("10")
)

var (
	// styleNoun styles paths, artifact ids and references.
	styleNoun = lipgloss.NewStyle().Foreground(colorCyan)

	// styleDim styles structural chrome.
	styleDim = lipgloss.NewStyle().Faint(true)

	// styleSummary styles completion lines.
	styleSummary = lipgloss.NewStyle().Bold(true)

	// styleError styles the error prefix on stderr.
	styleError = lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
)

// minPathColumnWidth keeps status words aligned for typical chart paths.
const minPathColumnWidth = 48

// statusStyle returns the style of a file status.
func statusStyle(s result.Status) lipgloss.Style {
	switch s {
	case result.StatusWritten:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case result.StatusPlanned:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case result.StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	default:
		return lipgloss.NewStyle()
	}
}

// formatResultLine renders "f:<path>  <status>" with a right-aligned status.
func formatResultLine(path string, s result.Status) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}
	return styleDim.Render("f:") + styleNoun.Render(path) +
		strings.Repeat(" ", padding) + statusStyle(s).Render(string(s))
}

// formatCheckmark prefixes msg with a green checkmark.
func formatCheckmark(msg string) string {
	return lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔") + " " + msg
}

// formatMismatch renders one failed checksum entry.
func formatMismatch(path, reason string) string {
	return styleDim.Render("f:") + styleNoun.Render(path) + "  " +
		styleError.Render(reason)
}

// formatKV renders a dim label followed by a highlighted value.
func formatKV(label string, value any) string {
	return styleDim.Render(label+":") + " " + styleNoun.Render(fmt.Sprint(value))
}
