package mistakes

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/router"
	"github.com/abhisek/reciteking/internal/screen"
	"github.com/abhisek/reciteking/internal/screens/quiz"
	"github.com/abhisek/reciteking/internal/session"
	"github.com/abhisek/reciteking/internal/ui/components"
	"github.com/abhisek/reciteking/internal/ui/layout"
	"github.com/abhisek/reciteking/internal/ui/theme"
)

type mistakesLoadedMsg struct {
	questions []questionbank.Question
	err       error
}

type removedMsg struct {
	id  string
	err error
}

type explanationMsg struct {
	id   string
	text string
}

// MistakeScreen is the mistake book: every wrongly answered question,
// with the correct option and an optional AI explanation.
type MistakeScreen struct {
	svc       screen.Services
	questions []questionbank.Question
	selected  int
	offset    int
	expanded  map[string]bool

	explanations map[string]string
	thinking     map[string]bool

	loaded bool
	errMsg string

	// removeErr is shown above the list until the next key press.
	removeErr string
}

var _ screen.Screen = (*MistakeScreen)(nil)
var _ screen.KeyHintProvider = (*MistakeScreen)(nil)
var _ router.Resumer = (*MistakeScreen)(nil)

// New creates a MistakeScreen.
func New(svc screen.Services) *MistakeScreen {
	return &MistakeScreen{
		svc:          svc,
		expanded:     make(map[string]bool),
		explanations: make(map[string]string),
		thinking:     make(map[string]bool),
	}
}

func (s *MistakeScreen) Init() tea.Cmd {
	return s.load
}

// Resume reloads the list after a review session.
func (s *MistakeScreen) Resume() tea.Cmd {
	return tea.Batch(s.load, screen.RefreshHeader)
}

func (s *MistakeScreen) load() tea.Msg {
	qs, err := s.svc.Ledger.Mistakes(context.Background())
	return mistakesLoadedMsg{questions: qs, err: err}
}

func (s *MistakeScreen) Title() string {
	return "我的错题本"
}

func (s *MistakeScreen) KeyHints() []layout.KeyHint {
	if len(s.questions) == 0 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Expand"},
		{Key: "e", Description: "AI 解析"},
		{Key: "d", Description: "已掌握"},
		{Key: "p", Description: "练习所有错题"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *MistakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case mistakesLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.questions = msg.questions
		s.selected = min(s.selected, max(len(s.questions)-1, 0))
		return s, nil

	case removedMsg:
		if msg.err != nil {
			s.removeErr = msg.err.Error()
			return s, nil
		}
		delete(s.expanded, msg.id)
		return s, tea.Batch(s.load, screen.RefreshHeader)

	case explanationMsg:
		s.thinking[msg.id] = false
		s.explanations[msg.id] = msg.text
		return s, nil

	case tea.KeyMsg:
		s.removeErr = ""
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *MistakeScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if len(s.questions) == 0 {
		return s, nil
	}
	current := s.questions[s.selected]

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.questions)-1 {
			s.selected++
		}
	case "enter", "space":
		s.expanded[current.ID] = !s.expanded[current.ID]
	case "e":
		s.expanded[current.ID] = true
		if s.thinking[current.ID] || s.explanations[current.ID] != "" {
			return s, nil
		}
		s.thinking[current.ID] = true
		explainer := s.svc.Explainer
		return s, func() tea.Msg {
			return explanationMsg{id: current.ID, text: explainer.Explain(context.Background(), current)}
		}
	case "d", "delete":
		l := s.svc.Ledger
		return s, func() tea.Msg {
			return removedMsg{id: current.ID, err: l.RemoveMistake(context.Background(), current.ID)}
		}
	case "p":
		return s, s.practise()
	}
	return s, nil
}

// practise starts a review session over every mistake.
func (s *MistakeScreen) practise() tea.Cmd {
	questions := s.svc.Builder.BuildReview(s.questions)
	q := quiz.New(s.svc, questions, session.ReviewTimeLimit, session.ModeReview)
	return func() tea.Msg { return router.PushScreenMsg{Screen: q} }
}

func (s *MistakeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n读取错题失败: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading mistakes...")
	}
	if len(s.questions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Jade).
			Render("\n\n  太棒了！目前没有错题。")
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	heading := theme.Title.Render(fmt.Sprintf("我的错题本 (%d)", len(s.questions))) + "   " +
		components.NewButton("p 练习所有错题").View()
	b.WriteString(layout.Centered(heading, width))
	b.WriteString("\n\n")
	if s.removeErr != "" {
		b.WriteString(layout.Centered(theme.Incorrect.Render("移除失败: "+s.removeErr), width))
		b.WriteString("\n\n")
		height -= 2
	}

	// Collapsed cards are three lines; keep the selected card on screen.
	visible := max((height-4)/3, 1)
	if s.expanded[s.questions[s.selected].ID] {
		visible = 1
	}
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+visible {
		s.offset = s.selected - visible + 1
	}
	end := min(s.offset+visible, len(s.questions))

	for i := s.offset; i < end; i++ {
		b.WriteString(layout.Centered(s.renderCard(i, cw), width))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *MistakeScreen) renderCard(i, cw int) string {
	q := s.questions[i]
	selected := i == s.selected

	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(selected).Render(q.Prompt)
	lines := []string{prompt}

	if s.expanded[q.ID] {
		opts := components.NewOptionList(q)
		opts.Reveal(q.Answer)
		lines = append(lines, "", opts.View(cw-4))

		if text, ok := s.explanations[q.ID]; ok || s.thinking[q.ID] {
			lines = append(lines, "", components.TutorPanel(text, s.thinking[q.ID], cw-4))
		} else {
			lines = append(lines, "", theme.Hint.Render("e 查看 AI 解析 (AI Explanation)   d 已掌握，移除此题"))
		}
	}

	border := theme.Border
	if selected {
		border = theme.Gold
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
