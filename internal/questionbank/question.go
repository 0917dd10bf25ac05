package questionbank

// Book identifies one of the two history textbooks.
type Book string

const (
	BookChineseHistory Book = "ChineseHistory"
	BookWorldHistory   Book = "WorldHistory"
)

// AllBooks returns the known books in display order.
func AllBooks() []Book {
	return []Book{BookChineseHistory, BookWorldHistory}
}

// Valid reports whether b is a known book.
func (b Book) Valid() bool {
	return b == BookChineseHistory || b == BookWorldHistory
}

// Label is the positional label of an option. Timeout is the sentinel
// recorded when the countdown expires before an answer is given.
type Label string

const (
	LabelA  Label = "A"
	LabelB  Label = "B"
	LabelC  Label = "C"
	LabelD  Label = "D"
	Timeout Label = "TIMEOUT"
)

// OptionCount is the fixed number of options per question.
const OptionCount = 4

var labels = [OptionCount]Label{LabelA, LabelB, LabelC, LabelD}

// Labels returns A through D in order.
func Labels() []Label {
	return labels[:]
}

// LabelAt returns the label for option index i. ok is false when i is out of range.
func LabelAt(i int) (Label, bool) {
	if i < 0 || i >= OptionCount {
		return "", false
	}
	return labels[i], true
}

// Index returns the option index for l, or -1 for Timeout and unknown labels.
func (l Label) Index() int {
	for i, candidate := range labels {
		if candidate == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l addresses one of the four options.
func (l Label) Valid() bool {
	return l.Index() >= 0
}

// Question is one multiple-choice item. Questions are immutable once loaded.
type Question struct {
	ID      string              `json:"id"`
	Prompt  string              `json:"question"`
	Options [OptionCount]string `json:"options"`
	Answer  Label               `json:"answer"`
	Chapter string              `json:"chapter"`
	Book    Book                `json:"book"`
}

// Option returns the text of the option labelled l, or "" if l is not A-D.
func (q Question) Option(l Label) string {
	i := l.Index()
	if i < 0 {
		return ""
	}
	return q.Options[i]
}

// IsCorrect reports whether l is the correct label. Timeout is never correct.
func (q Question) IsCorrect(l Label) bool {
	return l.Valid() && l == q.Answer
}

// Chapter is a lesson within a book. IDs are scoped to their book.
type Chapter struct {
	ID   string
	Name string
}
