package session

import (
	"github.com/abhisek/reciteking/internal/questionbank"
)

// Phase is the state machine's current state.
type Phase int

const (
	PhaseAwaitingAnswer Phase = iota // Countdown running, no answer latched
	PhaseAnswered                    // Outcome recorded, waiting for Advance
	PhaseFinished                    // Terminal; Result is available
	PhaseAbandoned                   // Discarded mid-way; nothing is persisted
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseAnswered:
		return "answered"
	case PhaseFinished:
		return "finished"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Outcome is the per-question record of what was submitted.
type Outcome struct {
	QuestionID  string             `json:"question_id"`
	Selected    questionbank.Label `json:"selected"`
	Correct     bool               `json:"correct"`
	ElapsedSecs int                `json:"elapsed_secs"`
}

// TimedOut reports whether the countdown expired before an answer.
func (o Outcome) TimedOut() bool {
	return o.Selected == questionbank.Timeout
}

// State is a point-in-time copy of a Session for rendering.
type State struct {
	SessionID    string
	Mode         Mode
	Phase        Phase
	Index        int
	Total        int
	TimeLimit    int
	Remaining    int
	CorrectCount int
	WrongCount   int

	// Question is the live question, nil once the session has finished.
	Question *questionbank.Question

	// Outcome is set while Phase is PhaseAnswered.
	Outcome *Outcome
}

// IsLast reports whether the live question is the final one.
func (s State) IsLast() bool {
	return s.Index == s.Total-1
}
