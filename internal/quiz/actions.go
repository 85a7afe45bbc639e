package quiz

import (
	"github.com/saulo-duarte/quizdeck/internal/question"
	"github.com/saulo-duarte/quizdeck/internal/session"
)

// Action is an input to Reduce.
type Action interface {
	action()
}

// Start begins a fresh run over a newly created session.
type Start struct {
	Session   session.Session
	Questions []question.Question
}

// Resume restores a persisted session at its saved position and score.
type Resume struct {
	Session   session.Session
	Questions []question.Question
}

// Toggle flips one option of a choice question in or out of the selection.
type Toggle struct {
	Option int
}

type SetText struct {
	Text string
}

type Submit struct{}

type Next struct{}

type Previous struct{}

// Jump moves to the position holding the given store index.
type Jump struct {
	QuestionIndex int
}

type Review struct{}

type Restart struct{}

func (Start) action()    {}
func (Resume) action()   {}
func (Toggle) action()   {}
func (SetText) action()  {}
func (Submit) action()   {}
func (Next) action()     {}
func (Previous) action() {}
func (Jump) action()     {}
func (Review) action()   {}
func (Restart) action()  {}

// Effect tells the caller what to do after a transition.
type Effect uint8

const (
	EffectPersist Effect = 1 << iota
	EffectNewRun
	EffectEndRun
	EffectWrongAnswer
)

const EffectNone Effect = 0

func (e Effect) Has(f Effect) bool {
	return e&f != 0
}
