package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/router"
	"github.com/abhisek/reciteking/internal/screen"
	"github.com/abhisek/reciteking/internal/session"
	"github.com/abhisek/reciteking/internal/ui/components"
	"github.com/abhisek/reciteking/internal/ui/layout"
	"github.com/abhisek/reciteking/internal/ui/theme"
)

const (
	buttonWidth   = 28
	maxWrongShown = 5
)

// ResultScreen shows the score of a finished session and records it.
type ResultScreen struct {
	svc    screen.Services
	result *session.Result
	menu   components.Menu

	saving  bool
	saved   bool
	record  *ledger.HistoryRecord
	saveErr error

	// pendingLeave is the navigation held back while an unsaved result
	// waits for the user to confirm discarding it.
	pendingLeave func() tea.Cmd
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.EscapeHandler = (*ResultScreen)(nil)

// NewResult creates a ResultScreen for res.
func NewResult(svc screen.Services, res *session.Result) *ResultScreen {
	r := &ResultScreen{svc: svc, result: res}

	var items []components.MenuItem
	if len(res.Wrong) > 0 {
		items = append(items, components.MenuItem{Label: "错题再背 (Review Mistakes)", Action: r.guard(r.review)})
	}
	back := "重新测评 (Try Again)"
	if res.Mode == session.ModeReview {
		back = "返回 (Back)"
	}
	items = append(items,
		components.MenuItem{Label: back, Action: r.guard(popScreen)},
		components.MenuItem{Label: "返回首页 (Home)", Action: r.guard(func() tea.Cmd {
			return func() tea.Msg { return router.PopToRootMsg{} }
		})},
	)
	r.menu = components.NewMenu(items)
	return r
}

// Result returns the session result being shown.
func (r *ResultScreen) Result() *session.Result {
	return r.result
}

func (r *ResultScreen) Init() tea.Cmd {
	return r.save()
}

func (r *ResultScreen) save() tea.Cmd {
	if r.svc.Ledger == nil {
		return nil
	}
	r.saving = true
	r.saveErr = nil
	l, res := r.svc.Ledger, r.result
	return func() tea.Msg {
		rec, err := l.RecordSession(context.Background(), res)
		return savedMsg{record: rec, err: err}
	}
}

func popScreen() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}

// guard holds back leave while the result is unsaved and asks the user to
// confirm first.
func (r *ResultScreen) guard(leave func() tea.Cmd) func() tea.Cmd {
	return func() tea.Cmd {
		if r.saveErr != nil {
			r.pendingLeave = leave
			return nil
		}
		return leave()
	}
}

// HandlesEscape keeps Esc from dropping a result that failed to save.
func (r *ResultScreen) HandlesEscape() bool {
	return r.saveErr != nil
}

// review replays the wrong answers of this session as a review session.
func (r *ResultScreen) review() tea.Cmd {
	next := New(r.svc, r.result.Wrong, r.result.TimeLimit, session.ModeReview)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (r *ResultScreen) Title() string {
	return "测评结果"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	if r.pendingLeave != nil {
		return []layout.KeyHint{
			{Key: "y", Description: "Discard result"},
			{Key: "n", Description: "Stay"},
			{Key: "s", Description: "Retry save"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if r.saveErr != nil {
		hints = append(hints, layout.KeyHint{Key: "s", Description: "Retry save"})
	}
	return hints
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		r.saving = false
		if msg.err != nil {
			r.saveErr = msg.err
			return r, nil
		}
		r.saved = true
		r.record = msg.record
		return r, screen.RefreshHeader

	case tea.KeyMsg:
		if r.pendingLeave != nil {
			return r, r.confirmLeave(msg.String())
		}
		switch msg.String() {
		case "s":
			if r.saveErr != nil && !r.saving {
				return r, r.save()
			}
		case "esc":
			if r.saveErr != nil {
				r.pendingLeave = popScreen
				return r, nil
			}
		}
	}

	var cmd tea.Cmd
	r.menu, cmd = r.menu.Update(msg)
	return r, cmd
}

func (r *ResultScreen) confirmLeave(key string) tea.Cmd {
	switch key {
	case "y":
		leave := r.pendingLeave
		r.pendingLeave = nil
		return leave()
	case "n", "esc":
		r.pendingLeave = nil
	case "s":
		r.pendingLeave = nil
		if !r.saving {
			return r.save()
		}
	}
	return nil
}

// Verdict returns the encouragement line for a score.
func Verdict(score int) string {
	switch {
	case score == 100:
		return "独孤求败！你是有史以来最棒的！"
	case score >= 90:
		return "非常优秀！高手风范！"
	case score >= 60:
		return "还不错，继续加油！"
	default:
		return "革命尚未成功，同志仍需努力！"
	}
}

func (r *ResultScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	res := r.result
	score := res.Score()

	scoreColor := theme.Error
	switch {
	case score >= 90:
		scoreColor = theme.Success
	case score >= 60:
		scoreColor = theme.Gold
	}

	var sections []string
	sections = append(sections, layout.Centered(
		lipgloss.NewStyle().Foreground(scoreColor).Bold(true).Render(fmt.Sprintf("%d%%", score)), cw))
	sections = append(sections, layout.Centered(theme.Body.Render(Verdict(score)), cw))

	summary := fmt.Sprintf("答对 %d / %d 题   限时 %ds", res.CorrectCount, res.Total, res.TimeLimit)
	if n := res.TimeoutCount(); n > 0 {
		summary += fmt.Sprintf("   超时 %d 题", n)
	}
	sections = append(sections, layout.Centered(theme.Hint.Render(summary), cw))

	if len(res.Wrong) > 0 {
		sections = append(sections, renderWrongList(res, cw))
	}

	sections = append(sections, r.renderSaveStatus(cw))
	sections = append(sections, layout.Centered(r.menu.View(buttonWidth), cw))

	return components.ScrollFrame(strings.Join(sections, "\n\n"), width, height)
}

func renderWrongList(res *session.Result, cw int) string {
	lines := []string{theme.Incorrect.Render(fmt.Sprintf("答错 %d 题:", len(res.Wrong)))}
	for i, q := range res.Wrong {
		if i == maxWrongShown {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("…… 还有 %d 题，已加入错题本", len(res.Wrong)-maxWrongShown)))
			break
		}
		line := fmt.Sprintf("• %s  → %s. %s", q.Prompt, q.Answer, q.Option(q.Answer))
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).MaxWidth(cw-4).Render(line))
	}
	return components.Card(strings.Join(lines, "\n"), cw)
}

func (r *ResultScreen) renderSaveStatus(cw int) string {
	var text string
	switch {
	case r.pendingLeave != nil:
		text = theme.Incorrect.Render("本次结果尚未保存，确定放弃吗？ (y 放弃 / n 留下 / s 重试保存)")
	case r.saveErr != nil:
		text = theme.Incorrect.Render(fmt.Sprintf("保存失败: %v (按 s 重试)", r.saveErr))
	case r.saving:
		text = theme.Hint.Render("正在保存...")
	case r.saved && r.record != nil:
		text = lipgloss.NewStyle().Foreground(theme.Jade).Render("✓ 已保存到历史记录")
	case r.saved && len(r.result.Wrong) > 0:
		text = lipgloss.NewStyle().Foreground(theme.Jade).Render("✓ 错题已加入错题本")
	default:
		return ""
	}
	return layout.Centered(text, cw)
}
