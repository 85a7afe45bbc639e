package explain

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/quizdeck/internal/question"
)

const instruction = "Please explain why the user's answer was incorrect and why the correct answer is right. " +
	"Reference the specific options in your explanation."

// BuildPrompt renders the question, its lettered options and both answers.
func BuildPrompt(req Request) string {
	q := req.Question

	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\n", q.Text)

	if q.Kind == question.KindChoice {
		b.WriteString("Available answers:\n")
		for i, o := range q.Options {
			fmt.Fprintf(&b, "%c) %s\n", question.Letter(i), o)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "User selected: %s\n", req.UserAnswer)
	fmt.Fprintf(&b, "Correct answer: %s\n\n", q.CorrectAnswer())
	b.WriteString(instruction)
	return b.String()
}
