package explain

import "github.com/saulo-duarte/quizdeck/internal/question"

// Request carries what the model needs to explain one wrong answer.
type Request struct {
	Question   question.Question
	UserAnswer string
}

const Fallback = "Unable to generate explanation at this time."
