package components

import (
	"github.com/abhisek/reciteking/internal/ui/theme"
)

// Button is a styled action button.
type Button struct {
	Label   string
	Focused bool
}

// NewButton creates a new button.
func NewButton(label string) Button {
	return Button{Label: label}
}

// View renders the button.
func (b Button) View() string {
	if b.Focused {
		return theme.ChipOn.Padding(0, 2).Render("▸ " + b.Label)
	}
	return theme.ChipOff.Padding(0, 2).Render(b.Label)
}
