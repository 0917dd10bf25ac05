package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/reciteking/internal/questionbank"
)

// Fixed user-facing texts. Explain returns one of these instead of failing.
const (
	FallbackMessage    = "An error occurred while connecting to the AI Tutor. Please try again later."
	EmptyMessage       = "Sorry, I couldn't generate an explanation at this time."
	UnavailableMessage = "The AI Tutor is not configured. Set GEMINI_API_KEY (or RECITEKING_LLM_PROVIDER and its key) to enable explanations."
)

// Distractor explains why one wrong option is wrong.
type Distractor struct {
	Label  questionbank.Label `json:"label"`
	Reason string             `json:"reason"`
}

// Explanation is a generated tutor explanation for one question.
type Explanation struct {
	QuestionID  string       `json:"-"`
	Context     string       `json:"context"`
	WhyCorrect  string       `json:"why_correct"`
	Distractors []Distractor `json:"distractors"`
}

// Empty reports whether the explanation carries no text at all.
func (e *Explanation) Empty() bool {
	if strings.TrimSpace(e.Context) != "" || strings.TrimSpace(e.WhyCorrect) != "" {
		return false
	}
	for _, d := range e.Distractors {
		if strings.TrimSpace(d.Reason) != "" {
			return false
		}
	}
	return true
}

// Markdown renders the explanation as simple Markdown.
func (e *Explanation) Markdown() string {
	var b strings.Builder
	if e.Context != "" {
		b.WriteString("**Historical context**\n\n")
		b.WriteString(strings.TrimSpace(e.Context))
		b.WriteString("\n\n")
	}
	if e.WhyCorrect != "" {
		b.WriteString("**Why it is correct**\n\n")
		b.WriteString(strings.TrimSpace(e.WhyCorrect))
		b.WriteString("\n\n")
	}
	if len(e.Distractors) > 0 {
		b.WriteString("**Other options**\n\n")
		for _, d := range e.Distractors {
			b.WriteString(fmt.Sprintf("- %s: %s\n", d.Label, strings.TrimSpace(d.Reason)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
