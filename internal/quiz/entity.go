package quiz

import (
	"math"
	"sort"

	"github.com/saulo-duarte/quizdeck/internal/grading"
	"github.com/saulo-duarte/quizdeck/internal/question"
	"github.com/saulo-duarte/quizdeck/internal/session"
)

type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseAnswering
	PhaseSubmitted
	PhaseComplete
	PhaseReviewing
)

func (p Phase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseSubmitted:
		return "submitted"
	case PhaseComplete:
		return "complete"
	case PhaseReviewing:
		return "reviewing"
	default:
		return "not_started"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// WrongAnswer is one incorrect first submission, kept for review only.
type WrongAnswer struct {
	Position int
	Question question.Question
	Answer   grading.Answer
}

// State is an immutable snapshot of a run. Only Reduce produces new states.
type State struct {
	phase     Phase
	session   session.Session
	questions []question.Question
	position  int
	selected  []int
	text      string
	correct   bool
	wrong     []WrongAnswer
}

func (s State) Phase() Phase { return s.phase }

func (s State) Session() session.Session { return s.session.Clone() }

func (s State) Position() int { return s.position }

func (s State) Total() int { return len(s.questions) }

func (s State) Score() int { return s.session.Score }

func (s State) Mode() session.Mode { return s.session.Mode() }

// Question returns the question at the current position.
func (s State) Question() (question.Question, bool) {
	if s.position < 0 || s.position >= len(s.questions) {
		return question.Question{}, false
	}
	return s.questions[s.position], true
}

func (s State) Questions() []question.Question {
	return append([]question.Question{}, s.questions...)
}

// Selected returns the selected option indices in ascending order.
func (s State) Selected() []int {
	return append([]int{}, s.selected...)
}

func (s State) IsSelected(option int) bool {
	for _, i := range s.selected {
		if i == option {
			return true
		}
	}
	return false
}

func (s State) SelectedTexts() []string {
	q, ok := s.Question()
	if !ok {
		return nil
	}
	out := make([]string, 0, len(s.selected))
	for _, i := range s.selected {
		out = append(out, q.Options[i])
	}
	return out
}

func (s State) Text() string { return s.text }

// LastCorrect reports the grade of the last submission; meaningful in PhaseSubmitted.
func (s State) LastCorrect() bool { return s.correct }

func (s State) IsAnswered(position int) bool {
	return s.session.IsAnswered(position)
}

func (s State) WrongAnswers() []WrongAnswer {
	return append([]WrongAnswer{}, s.wrong...)
}

// WrongAnswerAt returns the logged wrong answer for a position.
func (s State) WrongAnswerAt(position int) (WrongAnswer, bool) {
	for _, w := range s.wrong {
		if w.Position == position {
			return w, true
		}
	}
	return WrongAnswer{}, false
}

// Candidate builds the answer the user would submit right now.
func (s State) Candidate() grading.Answer {
	q, ok := s.Question()
	if !ok {
		return grading.Multiple()
	}
	if q.Kind == question.KindFreeText {
		return grading.Single(s.text)
	}
	return grading.Multiple(s.SelectedTexts()...)
}

func (s State) Percentage() float64 {
	return Percentage(s.session.Score, len(s.questions))
}

// PositionOf returns the position holding the given store index, or -1.
func (s State) PositionOf(questionIndex int) int {
	for pos, id := range s.session.QuestionIDs {
		if id == questionIndex {
			return pos
		}
	}
	return -1
}

// Percentage is score/total*100 rounded to one decimal place.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(score)/float64(total)*1000) / 10
}

func (s State) clone() State {
	c := s
	c.session = s.session.Clone()
	c.selected = append([]int{}, s.selected...)
	c.wrong = append([]WrongAnswer{}, s.wrong...)
	return c
}

func toggle(selected []int, option int) []int {
	out := make([]int, 0, len(selected)+1)
	found := false
	for _, i := range selected {
		if i == option {
			found = true
			continue
		}
		out = append(out, i)
	}
	if !found {
		out = append(out, option)
		sort.Ints(out)
	}
	return out
}
