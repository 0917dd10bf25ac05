package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/ui/theme"
)

// Chip is one toggleable choice in a row.
type Chip struct {
	Label string
	On    bool
}

// ChipRow renders chips side by side. cursor is the index under the
// keyboard focus, or -1 when the row is not focused.
func ChipRow(chips []Chip, cursor int) string {
	parts := make([]string, len(chips))
	for i, c := range chips {
		style := theme.ChipOff
		if c.On {
			style = theme.ChipOn
		}
		label := c.Label
		if i == cursor {
			style = style.Underline(true)
			label = "›" + label
		}
		parts[i] = style.Render(label)
	}
	return strings.Join(parts, " ")
}

// FieldLabel renders a setup field caption, highlighted when focused.
func FieldLabel(label string, focused bool) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10)
	if focused {
		style = style.Foreground(theme.Gold).Bold(true)
	}
	return style.Render(label)
}
