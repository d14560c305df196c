package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header renders a unit title as a bold, accented line with a rule
// underneath. With the no-color theme it returns the title followed by a
// plain rule, so output stays diff-friendly.
func Header(title string) string {
	t := GetCurrentTheme()
	rule := strings.Repeat("─", lipgloss.Width(title))
	if t.Name == NoColorTheme.Name {
		return title + "\n" + rule
	}
	style := lipgloss.NewStyle().Foreground(t.Accent)
	return style.Bold(true).Render(title) + "\n" + style.Render(rule)
}

// Status renders a short status word in the theme's good or bad color.
func Status(text string, ok bool) string {
	t := GetCurrentTheme()
	if t.Name == NoColorTheme.Name {
		return text
	}
	color := t.Good
	if !ok {
		color = t.Bad
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// PadRight pads s with spaces to the given display width. Width is measured
// with lipgloss so escape sequences and multi-byte runes are not counted.
func PadRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
