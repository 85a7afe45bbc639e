package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/saulo-duarte/quizdeck/internal/config"
	"github.com/saulo-duarte/quizdeck/internal/explain"
	"github.com/saulo-duarte/quizdeck/internal/question"
	"github.com/saulo-duarte/quizdeck/internal/session"
	"github.com/sirupsen/logrus"
)

var (
	ErrNothingToExplain = errors.New("no wrong answer recorded at this position")
	ErrNoActiveSession  = errors.New("no active session")
)

// Controller drives one run at a time. It applies actions through Reduce,
// then persists the session and schedules explanations as the effects ask.
type Controller interface {
	State() State
	Start(ctx context.Context, mode session.Mode, count int) (State, error)
	Resume(ctx context.Context, sessionID string) (State, error)
	Dispatch(ctx context.Context, a Action) (State, error)
	Explain(ctx context.Context, position int) (string, error)
	Forget(ctx context.Context, sessionID string)
}

type controller struct {
	mu    sync.Mutex
	state State

	questions question.QuestionService
	sessions  session.SessionService
	explainer explain.ExplainService
}

func NewController(questions question.QuestionService, sessions session.SessionService, explainer explain.ExplainService) Controller {
	return &controller{
		questions: questions,
		sessions:  sessions,
		explainer: explainer,
	}
}

func (c *controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *controller) Start(ctx context.Context, mode session.Mode, count int) (State, error) {
	log := config.WithContext(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	sess, err := c.sessions.Create(ctx, mode, count, c.questions.Len())
	if err != nil {
		log.WithError(err).Error("Failed to create session")
		return c.state, err
	}
	questions, err := c.resolve(sess)
	if err != nil {
		log.WithError(err).Error("Failed to resolve session questions")
		return c.state, err
	}
	return c.applyLocked(ctx, Start{Session: sess, Questions: questions})
}

// Resume continues a persisted session; an empty id means the current one.
func (c *controller) Resume(ctx context.Context, sessionID string) (State, error) {
	log := config.WithContext(ctx).WithField("session_id", sessionID)

	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		sess session.Session
		err  error
	)
	if sessionID == "" {
		var ok bool
		if sess, ok = c.sessions.Current(); !ok {
			return c.state, ErrNoActiveSession
		}
	} else if sess, err = c.sessions.Get(sessionID); err != nil {
		log.WithError(err).Warn("Cannot resume session")
		return c.state, err
	}

	questions, err := c.resolve(sess)
	if err != nil {
		log.WithError(err).Error("Session no longer matches the question set")
		return c.state, err
	}
	if err := c.sessions.SetCurrent(ctx, sess.ID); err != nil {
		return c.state, err
	}

	log.WithField("position", sess.CurrentQuestionIndex).Info("Resuming session")
	return c.applyLocked(ctx, Resume{Session: sess, Questions: questions})
}

func (c *controller) Dispatch(ctx context.Context, a Action) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyLocked(ctx, a)
}

// Explain returns the explanation for a logged wrong answer.
func (c *controller) Explain(ctx context.Context, position int) (string, error) {
	c.mu.Lock()
	w, ok := c.state.WrongAnswerAt(position)
	c.mu.Unlock()

	if !ok {
		return "", ErrNothingToExplain
	}
	return c.explainer.Explain(ctx, position, requestFor(w)), nil
}

// Forget drops the run if it belongs to sessionID, e.g. after the session was deleted.
func (c *controller) Forget(ctx context.Context, sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase() == PhaseNotStarted || c.state.session.ID != sessionID {
		return
	}
	c.state = State{}
	c.explainer.Reset()
	config.WithContext(ctx).WithField("session_id", sessionID).Info("Active run dropped")
}

func (c *controller) applyLocked(ctx context.Context, a Action) (State, error) {
	log := config.WithContext(ctx)

	next, eff, err := Reduce(c.state, a)
	if err != nil {
		log.WithError(err).WithField("action", fmt.Sprintf("%T", a)).Debug("Action rejected")
		return c.state, err
	}
	c.state = next

	if eff.Has(EffectNewRun) {
		c.explainer.Reset()
	}
	if eff.Has(EffectPersist) {
		if err := c.sessions.Update(ctx, next.Session()); err != nil {
			log.WithError(err).Warn("Failed to record session progress")
		}
	}
	if eff.Has(EffectEndRun) {
		c.sessions.ClearCurrent(ctx)
	}
	if eff.Has(EffectWrongAnswer) && next.Mode() == session.ModePractice {
		if w, ok := next.WrongAnswerAt(next.Position()); ok {
			c.explainer.ExplainAsync(ctx, w.Position, requestFor(w))
		}
	}

	if _, done := a.(Next); done && next.Phase() == PhaseComplete {
		log.WithFields(logrus.Fields{
			"session_id": next.session.ID,
			"score":      next.Score(),
			"total":      next.Total(),
			"percentage": next.Percentage(),
		}).Info("Quiz complete")
	}
	return next, nil
}

func (c *controller) resolve(sess session.Session) ([]question.Question, error) {
	out := make([]question.Question, 0, len(sess.QuestionIDs))
	for _, id := range sess.QuestionIDs {
		q, err := c.questions.Get(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSessionMismatch, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func requestFor(w WrongAnswer) explain.Request {
	return explain.Request{Question: w.Question, UserAnswer: w.Answer.String()}
}
