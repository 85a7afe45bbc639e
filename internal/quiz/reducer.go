package quiz

import (
	"errors"
	"fmt"

	"github.com/saulo-duarte/quizdeck/internal/grading"
	"github.com/saulo-duarte/quizdeck/internal/question"
	"github.com/saulo-duarte/quizdeck/internal/session"
)

var (
	ErrInvalidTransition = errors.New("action not allowed in the current phase")
	ErrNoAnswer          = errors.New("no answer given")
	ErrNotInSession      = errors.New("question is not part of this session")
	ErrInvalidOption     = errors.New("option does not exist for this question")
	ErrSessionMismatch   = errors.New("questions do not match the session")
)

// Reduce applies a to s. On error the original state is returned unchanged.
func Reduce(s State, a Action) (State, Effect, error) {
	var (
		next State
		eff  Effect
		err  error
	)

	switch a := a.(type) {
	case Start:
		next, eff, err = start(a.Session, a.Questions, false)
	case Resume:
		next, eff, err = start(a.Session, a.Questions, true)
	case Toggle:
		next, eff, err = s.toggle(a.Option)
	case SetText:
		next, eff, err = s.setText(a.Text)
	case Submit:
		next, eff, err = s.submit()
	case Next:
		next, eff, err = s.next()
	case Previous:
		next, eff, err = s.previous()
	case Jump:
		next, eff, err = s.jump(a.QuestionIndex)
	case Review:
		next, eff, err = s.review()
	case Restart:
		next, eff, err = s.restart()
	default:
		err = fmt.Errorf("%w: unknown action %T", ErrInvalidTransition, a)
	}

	if err != nil {
		return s, EffectNone, err
	}
	return next, eff, nil
}

func start(sess session.Session, questions []question.Question, resume bool) (State, Effect, error) {
	if len(questions) == 0 || len(questions) != len(sess.QuestionIDs) {
		return State{}, EffectNone, ErrSessionMismatch
	}
	for i, q := range questions {
		if q.Index != sess.QuestionIDs[i] {
			return State{}, EffectNone, fmt.Errorf("%w: position %d", ErrSessionMismatch, i)
		}
	}

	sess = sess.Clone()
	sess.TotalQuestions = len(questions)

	s := State{
		phase:     PhaseAnswering,
		questions: append([]question.Question{}, questions...),
		selected:  []int{},
		wrong:     []WrongAnswer{},
	}

	if !resume {
		sess.CurrentQuestionIndex = 0
		sess.Score = 0
		sess.AnsweredQuestions = []int{}
		sess.Completed = false
	}
	s.position = clamp(sess.CurrentQuestionIndex, 0, len(questions)-1)
	sess.CurrentQuestionIndex = s.position
	if sess.Completed {
		s.phase = PhaseComplete
	}
	s.session = sess

	return s, EffectNewRun | EffectPersist, nil
}

func (s State) toggle(option int) (State, Effect, error) {
	if s.phase != PhaseAnswering {
		return s, EffectNone, ErrInvalidTransition
	}
	q, _ := s.Question()
	if q.Kind != question.KindChoice || option < 0 || option >= len(q.Options) {
		return s, EffectNone, ErrInvalidOption
	}

	next := s.clone()
	next.selected = toggle(s.selected, option)
	return next, EffectNone, nil
}

func (s State) setText(text string) (State, Effect, error) {
	if s.phase != PhaseAnswering {
		return s, EffectNone, ErrInvalidTransition
	}
	q, _ := s.Question()
	if q.Kind != question.KindFreeText {
		return s, EffectNone, ErrInvalidOption
	}

	next := s.clone()
	next.text = text
	return next, EffectNone, nil
}

// submit grades the current position. A position is scored only on its
// first submission; later submissions show the grade without changing score.
func (s State) submit() (State, Effect, error) {
	if s.phase != PhaseAnswering {
		return s, EffectNone, ErrInvalidTransition
	}
	candidate := s.Candidate()
	if candidate.Empty() {
		return s, EffectNone, ErrNoAnswer
	}
	q, _ := s.Question()

	next := s.clone()
	next.phase = PhaseSubmitted
	next.correct = grading.IsCorrect(candidate, q)

	if s.session.IsAnswered(s.position) {
		return next, EffectNone, nil
	}

	eff := EffectPersist
	next.session.AnsweredQuestions = append(next.session.AnsweredQuestions, s.position)
	next.session.CurrentQuestionIndex = s.position
	if next.correct {
		next.session.Score++
	} else {
		next.wrong = append(next.wrong, WrongAnswer{Position: s.position, Question: q, Answer: candidate})
		eff |= EffectWrongAnswer
	}
	return next, eff, nil
}

func (s State) next() (State, Effect, error) {
	switch {
	case s.phase == PhaseSubmitted:
	case s.phase == PhaseAnswering && s.session.IsAnswered(s.position):
	default:
		return s, EffectNone, ErrInvalidTransition
	}

	next := s.clone()
	if s.position+1 >= len(s.questions) {
		next.phase = PhaseComplete
		next.session.Completed = true
		next.selected = []int{}
		next.text = ""
		return next, EffectPersist, nil
	}
	next.moveTo(s.position + 1)
	return next, EffectPersist, nil
}

func (s State) previous() (State, Effect, error) {
	if (s.phase != PhaseAnswering && s.phase != PhaseSubmitted) || s.position == 0 {
		return s, EffectNone, ErrInvalidTransition
	}
	next := s.clone()
	next.moveTo(s.position - 1)
	return next, EffectPersist, nil
}

func (s State) jump(questionIndex int) (State, Effect, error) {
	if s.phase != PhaseAnswering && s.phase != PhaseSubmitted {
		return s, EffectNone, ErrInvalidTransition
	}
	pos := s.PositionOf(questionIndex)
	if pos < 0 {
		return s, EffectNone, fmt.Errorf("%w: question %d", ErrNotInSession, questionIndex+1)
	}
	next := s.clone()
	next.moveTo(pos)
	return next, EffectPersist, nil
}

func (s State) review() (State, Effect, error) {
	if s.phase != PhaseComplete {
		return s, EffectNone, ErrInvalidTransition
	}
	next := s.clone()
	next.phase = PhaseReviewing
	return next, EffectNone, nil
}

func (s State) restart() (State, Effect, error) {
	if s.phase != PhaseComplete && s.phase != PhaseReviewing {
		return s, EffectNone, ErrInvalidTransition
	}
	return State{phase: PhaseNotStarted}, EffectEndRun, nil
}

func (s *State) moveTo(pos int) {
	s.position = pos
	s.phase = PhaseAnswering
	s.selected = []int{}
	s.text = ""
	s.correct = false
	s.session.CurrentQuestionIndex = pos
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
