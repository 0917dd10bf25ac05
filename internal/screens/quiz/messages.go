package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/reciteking/internal/ledger"
)

const tickInterval = time.Second

// tickMsg is one countdown second for the question at index.
type tickMsg struct {
	index int
}

func tick(index int) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{index: index}
	})
}

// explanationMsg carries tutor text for a question.
type explanationMsg struct {
	questionID string
	text       string
}

// savedMsg reports the outcome of persisting a finished session.
type savedMsg struct {
	record *ledger.HistoryRecord
	err    error
}
