package quiz

import (
	"github.com/saulo-duarte/quizdeck/internal/grading"
	"github.com/saulo-duarte/quizdeck/internal/question"
)

type ReviewOption struct {
	Letter  string          `json:"letter"`
	Text    string          `json:"text"`
	Verdict grading.Verdict `json:"verdict"`
}

// ReviewEntry is one wrong answer as the review screen shows it.
type ReviewEntry struct {
	Position   int            `json:"position"`
	Number     int            `json:"number"`
	Question   string         `json:"question"`
	Kind       question.Kind  `json:"kind"`
	UserAnswer string         `json:"userAnswer"`
	Correct    string         `json:"correctAnswer"`
	Options    []ReviewOption `json:"options,omitempty"`
}

type Summary struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

func (s State) Summary() Summary {
	return Summary{Score: s.Score(), Total: s.Total(), Percentage: s.Percentage()}
}

// ReviewEntries lists the wrong-answer log in submission order.
func (s State) ReviewEntries() []ReviewEntry {
	out := make([]ReviewEntry, 0, len(s.wrong))
	for _, w := range s.wrong {
		out = append(out, NewReviewEntry(w))
	}
	return out
}

func NewReviewEntry(w WrongAnswer) ReviewEntry {
	q := w.Question
	e := ReviewEntry{
		Position:   w.Position,
		Number:     q.Number(),
		Question:   q.Text,
		Kind:       q.Kind,
		UserAnswer: w.Answer.String(),
		Correct:    q.CorrectAnswer(),
	}
	if q.Kind == question.KindChoice {
		verdicts := grading.OptionVerdicts(q, w.Answer.Values())
		e.Options = make([]ReviewOption, len(q.Options))
		for i, o := range q.Options {
			e.Options[i] = ReviewOption{
				Letter:  string(question.Letter(i)),
				Text:    o,
				Verdict: verdicts[i],
			}
		}
	}
	return e
}
