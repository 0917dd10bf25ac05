package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/ui/theme"
)

// OptionList shows the four lettered options of a question. Before an
// answer is revealed it tracks a cursor; after, it colours the correct
// option and the learner's pick.
type OptionList struct {
	Options  [questionbank.OptionCount]string
	Answer   questionbank.Label
	Cursor   int
	Revealed bool
	Chosen   questionbank.Label
}

// NewOptionList creates an OptionList for q.
func NewOptionList(q questionbank.Question) OptionList {
	return OptionList{
		Options: q.Options,
		Answer:  q.Answer,
	}
}

// Update moves the cursor. It returns the picked label and true when the
// learner chooses an option by letter, digit or Enter.
func (o OptionList) Update(msg tea.Msg) (OptionList, questionbank.Label, bool) {
	if o.Revealed {
		return o, "", false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, "", false
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < questionbank.OptionCount-1 {
			o.Cursor++
		}
	case "enter":
		l, _ := questionbank.LabelAt(o.Cursor)
		return o, l, true
	default:
		if l, ok := LabelForKey(key); ok {
			o.Cursor = l.Index()
			return o, l, true
		}
	}
	return o, "", false
}

// Reveal marks the answer as shown. chosen may be questionbank.Timeout.
func (o *OptionList) Reveal(chosen questionbank.Label) {
	o.Revealed = true
	o.Chosen = chosen
}

// View renders the options, one per line.
func (o OptionList) View(width int) string {
	var b strings.Builder
	for i, opt := range o.Options {
		l, _ := questionbank.LabelAt(i)
		prefix := "  "
		if !o.Revealed && i == o.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s. %s", prefix, l, opt)

		style := lipgloss.NewStyle().Width(width).Foreground(theme.Text)
		switch {
		case o.Revealed && l == o.Answer:
			style = style.Foreground(theme.Success).Bold(true)
			line += "  ✓"
		case o.Revealed && l == o.Chosen:
			style = style.Foreground(theme.Error).Bold(true)
			line += "  ✗"
		case o.Revealed:
			style = style.Foreground(theme.TextDim)
		case i == o.Cursor:
			style = style.Foreground(theme.Gold).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// LabelForKey maps a/b/c/d and 1-4 to option labels.
func LabelForKey(key string) (questionbank.Label, bool) {
	switch strings.ToLower(key) {
	case "a", "1":
		return questionbank.LabelA, true
	case "b", "2":
		return questionbank.LabelB, true
	case "c", "3":
		return questionbank.LabelC, true
	case "d", "4":
		return questionbank.LabelD, true
	}
	return "", false
}
