package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/ui/theme"
)

// TutorPanel renders AI tutor text in a bordered panel. Lines wrapped in
// ** are shown as headings; everything else is body text.
func TutorPanel(text string, loading bool, width int) string {
	heading := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(max(width-4, 10))

	var lines []string
	lines = append(lines, heading.Render("历史导师解析:"))
	if loading {
		lines = append(lines, theme.Hint.Render("AI 正在思考..."))
	} else {
		for _, line := range strings.Split(text, "\n") {
			trimmed := strings.TrimSpace(line)
			if len(trimmed) > 4 && strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") {
				lines = append(lines, heading.Render(strings.Trim(trimmed, "*")))
				continue
			}
			lines = append(lines, body.Render(line))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(width - 2).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
