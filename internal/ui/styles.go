package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	// Score box around the headline grade
	StyleScoreBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)
)

// GradeStyle colors a grade: A+/A/B green, C/D orange, F red.
func GradeStyle(g analyzer.Grade) lipgloss.Style {
	switch g {
	case analyzer.GradeAPlus, analyzer.GradeA, analyzer.GradeB:
		return StyleSuccess.Bold(true)
	case analyzer.GradeC, analyzer.GradeD:
		return StyleWarning.Bold(true)
	default:
		return StyleError.Bold(true)
	}
}

// StatusStyle colors a task status.
func StatusStyle(s analyzer.TaskStatus) lipgloss.Style {
	switch s {
	case analyzer.StatusLikelyDone:
		return StyleSuccess
	case analyzer.StatusInProgress:
		return StyleWarning
	default:
		return StyleSubtle
	}
}

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
