package ledger

import (
	"time"

	"github.com/abhisek/reciteking/internal/questionbank"
)

// Document keys.
const (
	KeyUserPrefs = "user_prefs"
	KeyHistory   = "history"
	KeyMistakes  = "mistakes"
)

// MaxHistory is the number of history records kept; older ones are evicted.
const MaxHistory = 50

// HistoryRecord is the durable summary of one finished session.
type HistoryRecord struct {
	ID             string            `json:"id"`
	Timestamp      time.Time         `json:"timestamp"`
	Book           questionbank.Book `json:"book"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"totalQuestions"`
	CorrectCount   int               `json:"correctCount"`
	TimeLimit      int               `json:"timeLimit"`
}

// Gender selects the learner's avatar.
type Gender string

const (
	GenderBoy  Gender = "boy"
	GenderGirl Gender = "girl"
)

// Valid reports whether g is boy or girl.
func (g Gender) Valid() bool {
	return g == GenderBoy || g == GenderGirl
}

// UserPrefs is the single stored learner profile.
type UserPrefs struct {
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
}
