package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/screen"
	"github.com/abhisek/reciteking/internal/ui/components"
	"github.com/abhisek/reciteking/internal/ui/layout"
	"github.com/abhisek/reciteking/internal/ui/theme"
)

type historyLoadedMsg struct {
	records []ledger.HistoryRecord
	err     error
}

// HistoryScreen lists past practice sessions, newest first.
type HistoryScreen struct {
	ledger   *ledger.Ledger
	records  []ledger.HistoryRecord
	selected int
	offset   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(l *ledger.Ledger) *HistoryScreen {
	return &HistoryScreen{ledger: l}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.ledger.History(context.Background())
		return historyLoadedMsg{records: records, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "历史记录"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.records = msg.records
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

// BookLabel returns the short display name used in lists.
func BookLabel(b questionbank.Book) string {
	switch b {
	case questionbank.BookChineseHistory:
		return "中国历史"
	case questionbank.BookWorldHistory:
		return "世界历史"
	default:
		return string(b)
	}
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 90:
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	case score >= 60:
		return lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n读取记录失败: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  暂无记录，快去开始第一次背书吧！")
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(layout.Centered(theme.Subtitle.Render(fmt.Sprintf("共 %d 条记录", len(s.records))), width))
	b.WriteString("\n\n")

	// Each card is four lines tall.
	visible := max((height-3)/4, 1)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+visible {
		s.offset = s.selected - visible + 1
	}
	end := min(s.offset+visible, len(s.records))

	for i := s.offset; i < end; i++ {
		b.WriteString(layout.Centered(s.renderRecord(s.records[i], i == s.selected, cw), width))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderRecord(r ledger.HistoryRecord, selected bool, cw int) string {
	book := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(BookLabel(r.Book))
	score := scoreStyle(r.Score).Render(fmt.Sprintf("得分: %d%%", r.Score))
	date := lipgloss.NewStyle().Foreground(theme.TextDim).Render(r.Timestamp.Local().Format("2006-01-02 15:04"))

	top := book + "  " + date
	gap := max(cw-4-lipgloss.Width(top)-lipgloss.Width(score), 1)
	top += strings.Repeat(" ", gap) + score

	detail := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%d/%d 正确   限时 %ds", r.CorrectCount, r.TotalQuestions, r.TimeLimit))

	border := theme.Border
	if selected {
		border = theme.Gold
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Padding(0, 1).
		Render(top + "\n" + detail)
}
