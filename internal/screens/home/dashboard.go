package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/ui/theme"
)

const titleFull = "历 史 背 书 王"

const titleCompact = "历史背书王"

// stats summarises the ledger for the dashboard.
type stats struct {
	sessions  int
	bestScore int
	lastScore int
	mistakes  int
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(theme.Gold).Render("RECITE KING")

	text := titleFull
	if compact {
		text = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(text) + "\n" + sub)
}

func renderGreeting(name string, cw int) string {
	text := "欢迎来到历史背书王！"
	if name != "" {
		text = fmt.Sprintf("你好，%s！今天也要加油背书哦", name)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(s stats, cw int, compact bool) string {
	gold := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	jade := lipgloss.NewStyle().Foreground(theme.Jade).Bold(true)
	red := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			gold.Render(fmt.Sprintf("★%d%%", s.bestScore)),
			jade.Render(fmt.Sprintf("◷%d", s.sessions)),
			red.Render(fmt.Sprintf("✎%d", s.mistakes)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			gold.Render(fmt.Sprintf("★ 最高 %d%%", s.bestScore)),
			jade.Render(fmt.Sprintf("◷ %d 次测评", s.sessions)),
			red.Render(fmt.Sprintf("✎ %d 道错题", s.mistakes)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Gold).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// renderTutorBanner warns that no LLM key is configured.
func renderTutorBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ AI 导师未配置：设置 GEMINI_API_KEY 以启用解析 (see reciteking --help)")
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("New version %s available (reciteking update)", latestVersion))
}
