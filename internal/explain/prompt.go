package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/reciteking/internal/questionbank"
)

const systemPrompt = `You are an expert history tutor for a high-school quiz app called "Recite King". Students use it to memorise the Chinese and world history syllabus.`

func buildUserMessage(q questionbank.Question) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Question: %s\n\n", q.Prompt))
	b.WriteString("Options:\n")
	for _, l := range questionbank.Labels() {
		b.WriteString(fmt.Sprintf("%s. %s\n", l, q.Option(l)))
	}
	b.WriteString(fmt.Sprintf("\nCorrect answer: %s. %s\n", q.Answer, q.Option(q.Answer)))

	b.WriteString(`
Instructions:
Explain this question to the student:
1. Give the historical context behind the question.
2. Explain why the correct answer is right.
3. Briefly explain why each of the other options is wrong.
Keep the tone encouraging and educational. Use simple Markdown for emphasis only, no headings. Answer in the language the question is written in.`)

	return b.String()
}
