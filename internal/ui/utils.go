package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// IsInteractive checks if stdout is a terminal. Commands fall back to plain
// JSON when output is piped.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// RenderPageHeader writes a consistent styled header for commands
func RenderPageHeader(w io.Writer, title, subtitle string) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary)

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("🔭 %s", title)))
	if subtitle != "" {
		fmt.Fprintf(w, "  %s\n", StyleSubtle.Render(subtitle))
	}
	fmt.Fprintln(w)
}

// RenderPanel returns content inside a rounded border of the given color.
func RenderPanel(title, content string, border lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	if title != "" {
		content = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Render(title) + "\n" + content
	}
	return style.Render(content)
}

// WrapText wraps text to the specified width on word boundaries.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		if lipgloss.Width(line) <= width {
			result.WriteString(line)
			continue
		}

		current := ""
		for _, word := range strings.Fields(line) {
			switch {
			case current == "":
				current = word
			case lipgloss.Width(current)+1+lipgloss.Width(word) <= width:
				current += " " + word
			default:
				result.WriteString(current + "\n")
				current = word
			}
		}
		result.WriteString(current)
	}
	return result.String()
}
