package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/session"
	"github.com/abhisek/reciteking/internal/ui/components"
	"github.com/abhisek/reciteking/internal/ui/layout"
	"github.com/abhisek/reciteking/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	st := q.sess.Snapshot()
	if st.Question == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("正在统计成绩..."))
	}
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderProgressHeader(st, cw))
	sections = append(sections, components.Countdown(st.Remaining, st.TimeLimit, cw).View())

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(cw).
		Render(st.Question.Prompt)
	sections = append(sections, prompt)
	sections = append(sections, q.options.View(cw))

	if st.Outcome != nil {
		sections = append(sections, renderFeedback(*st.Question, *st.Outcome, st.IsLast(), cw))
		if q.explaining || q.explanation != "" {
			sections = append(sections, components.TutorPanel(q.explanation, q.explaining, cw))
		}
	}

	if q.confirmQuit {
		sections = append(sections, renderQuitConfirm(cw))
	}

	body := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func renderProgressHeader(st session.State, cw int) string {
	left := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
		Render(fmt.Sprintf("第 %d / %d 题", st.Index+1, st.Total))
	right := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("✓ %d  ✗ %d", st.CorrectCount, st.WrongCount))
	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func renderFeedback(q questionbank.Question, o session.Outcome, last bool, cw int) string {
	var line string
	switch {
	case o.Correct:
		line = theme.Correct.Render("✓ 回答正确 (Correct)")
	case o.TimedOut():
		line = theme.Incorrect.Render(fmt.Sprintf("⏱ 时间到！正确答案: %s. %s", q.Answer, q.Option(q.Answer)))
	default:
		line = theme.Incorrect.Render(fmt.Sprintf("✗ 正确答案: %s. %s", q.Answer, q.Option(q.Answer)))
	}

	next := "下一题 (Next)"
	if last {
		next = "查看成绩 (Finish)"
	}
	hint := theme.Hint.Render("Enter " + next + "   e 查看 AI 解析")
	return lipgloss.NewStyle().Width(cw).Render(line + "\n" + hint)
}

func renderQuitConfirm(cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Width(cw-2).
		Align(lipgloss.Center).
		Render(theme.Warning.Render("退出本次测评？进度不会保存。") + "\n" +
			layout.Centered(theme.Hint.Render("y 退出   n 继续"), cw-4))
}
