package session

import (
	"math"

	"github.com/abhisek/reciteking/internal/questionbank"
)

// Result is the read-only summary of a finished session.
//
// Book is taken from the first question. Sessions are expected to draw
// from a single book; a mixed-book question list is not detected.
type Result struct {
	SessionID    string
	Mode         Mode
	Book         questionbank.Book
	TimeLimit    int
	Total        int
	CorrectCount int

	// Wrong lists incorrectly answered questions in play order. A question
	// that appears twice in a session and is missed twice is listed twice.
	Wrong    []questionbank.Question
	Outcomes []Outcome

	// Questions is the full play order, kept so a retry can restart it.
	Questions []questionbank.Question
}

// Score returns the percentage of correct answers rounded to the nearest
// integer. An empty session scores 0.
func (r *Result) Score() int {
	if r.Total == 0 {
		return 0
	}
	return int(math.Round(float64(r.CorrectCount) / float64(r.Total) * 100))
}

// WrongCount returns the number of incorrect or timed-out answers.
func (r *Result) WrongCount() int {
	return r.Total - r.CorrectCount
}

// TimeoutCount returns how many questions expired without an answer.
func (r *Result) TimeoutCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.TimedOut() {
			n++
		}
	}
	return n
}
