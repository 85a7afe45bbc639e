package quiz

import (
	"github.com/saulo-duarte/quizdeck/internal/grading"
	"github.com/saulo-duarte/quizdeck/internal/question"
	"github.com/saulo-duarte/quizdeck/internal/session"
)

type OptionView struct {
	Letter   string           `json:"letter"`
	Text     string           `json:"text"`
	Selected bool             `json:"selected"`
	Verdict  *grading.Verdict `json:"verdict,omitempty"`
}

type QuestionView struct {
	Index   int           `json:"index"`
	Number  int           `json:"number"`
	Text    string        `json:"text"`
	Kind    question.Kind `json:"kind"`
	Options []OptionView  `json:"options,omitempty"`
}

// View is the client-facing rendering of a State. Grades are only exposed
// once the current position has been submitted.
type View struct {
	Phase         Phase         `json:"phase"`
	SessionID     string        `json:"sessionId,omitempty"`
	Mode          session.Mode  `json:"mode,omitempty"`
	Position      int           `json:"position"`
	Total         int           `json:"total"`
	Score         int           `json:"score"`
	Percentage    float64       `json:"percentage"`
	Answered      []int         `json:"answered"`
	Question      *QuestionView `json:"question,omitempty"`
	Text          string        `json:"text,omitempty"`
	Correct       *bool         `json:"correct,omitempty"`
	CorrectAnswer string        `json:"correctAnswer,omitempty"`
}

func (s State) View() View {
	v := View{
		Phase:    s.phase,
		Answered: []int{},
	}
	if s.phase == PhaseNotStarted {
		return v
	}

	sess := s.session
	v.SessionID = sess.ID
	v.Mode = sess.Mode()
	v.Position = s.position
	v.Total = len(s.questions)
	v.Score = sess.Score
	v.Percentage = s.Percentage()
	v.Answered = append(v.Answered, sess.AnsweredQuestions...)

	if s.phase != PhaseAnswering && s.phase != PhaseSubmitted {
		return v
	}

	q, _ := s.Question()
	submitted := s.phase == PhaseSubmitted
	qv := &QuestionView{Index: q.Index, Number: q.Number(), Text: q.Text, Kind: q.Kind}
	for i, o := range q.Options {
		ov := OptionView{Letter: string(question.Letter(i)), Text: o, Selected: s.IsSelected(i)}
		if submitted {
			verdict := grading.OptionVerdict(q, o, ov.Selected)
			ov.Verdict = &verdict
		}
		qv.Options = append(qv.Options, ov)
	}
	v.Question = qv
	v.Text = s.text

	if submitted {
		correct := s.correct
		v.Correct = &correct
		v.CorrectAnswer = q.CorrectAnswer()
	}
	return v
}
