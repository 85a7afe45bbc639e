package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizdeck/internal/config"
	"github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyPool       = errors.New("question pool is empty")
	ErrInvalidMode     = errors.New("invalid session mode")
)

// SessionService owns the session list and the active id. Every mutation
// queues a full snapshot for persistence; persistence failures are logged
// and never returned.
type SessionService interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, mode Mode, count, pool int) (Session, error)
	List() []Session
	Get(id string) (Session, error)
	Current() (Session, bool)
	SetCurrent(ctx context.Context, id string) error
	ClearCurrent(ctx context.Context)
	Update(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
	Flush(ctx context.Context) error
	Close() error
}

type sessionService struct {
	mu        sync.RWMutex
	sessions  []Session
	currentID *string

	writer *writer
	intN   func(int) int
	now    func() time.Time
}

type Option func(*sessionService)

// WithRand sets the random source used for test-mode sampling.
func WithRand(r *rand.Rand) Option {
	return func(s *sessionService) { s.intN = r.IntN }
}

func WithClock(now func() time.Time) Option {
	return func(s *sessionService) { s.now = now }
}

func NewService(repo SessionRepository, opts ...Option) SessionService {
	s := &sessionService{
		sessions: []Session{},
		writer:   newWriter(repo),
		intN:     rand.IntN,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces in-memory state with the persisted snapshot. On error the
// service starts empty and the error is returned for the caller to report.
func (s *sessionService) Load(ctx context.Context) error {
	log := config.WithContext(ctx)

	snap, err := s.writer.repo.Load(ctx)
	if err != nil {
		snap = Snapshot{Sessions: []Session{}}
	}

	s.mu.Lock()
	s.sessions = snap.clone().Sessions
	s.currentID = snap.CurrentSessionID
	s.mu.Unlock()

	log.WithField("count", len(snap.Sessions)).Debug("Sessions loaded")
	return err
}

func (s *sessionService) Create(ctx context.Context, mode Mode, count, pool int) (Session, error) {
	log := config.WithContext(ctx)

	if pool <= 0 {
		return Session{}, ErrEmptyPool
	}

	var ids []int
	switch mode {
	case ModeTest:
		ids = SampleIndices(pool, count, s.intN)
	case ModePractice:
		ids = SequentialIndices(pool, count)
	default:
		return Session{}, ErrInvalidMode
	}

	sess := Session{
		ID:                uuid.NewString(),
		Timestamp:         s.now().UnixMilli(),
		TotalQuestions:    len(ids),
		IsTest:            mode == ModeTest,
		QuestionIDs:       ids,
		AnsweredQuestions: []int{},
	}

	s.mu.Lock()
	s.sessions = append(s.sessions, sess.Clone())
	id := sess.ID
	s.currentID = &id
	s.persistLocked()
	s.mu.Unlock()

	log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"mode":       mode,
		"total":      sess.TotalQuestions,
	}).Info("Session created")
	return sess, nil
}

func (s *sessionService) List() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.Clone()
	}
	return out
}

func (s *sessionService) Get(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Session{}, ErrSessionNotFound
	}
	return s.sessions[i].Clone(), nil
}

func (s *sessionService) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentID == nil {
		return Session{}, false
	}
	i := s.indexLocked(*s.currentID)
	if i < 0 {
		return Session{}, false
	}
	return s.sessions[i].Clone(), true
}

func (s *sessionService) SetCurrent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		config.WithContext(ctx).WithField("session_id", id).Warn("Cannot resume unknown session")
		return ErrSessionNotFound
	}
	s.currentID = &id
	s.persistLocked()
	return nil
}

func (s *sessionService) ClearCurrent(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentID = nil
	s.persistLocked()
}

// Update stores a new version of an existing session.
func (s *sessionService) Update(ctx context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(sess.ID)
	if i < 0 {
		return ErrSessionNotFound
	}
	s.sessions[i] = sess.Clone()
	s.persistLocked()
	return nil
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		log.WithField("session_id", id).Warn("Session to delete not found")
		return ErrSessionNotFound
	}
	s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
	if s.currentID != nil && *s.currentID == id {
		s.currentID = nil
	}
	s.persistLocked()

	log.WithField("session_id", id).Info("Session deleted")
	return nil
}

func (s *sessionService) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

func (s *sessionService) Close() error {
	s.writer.close()
	return nil
}

func (s *sessionService) indexLocked(id string) int {
	for i, sess := range s.sessions {
		if sess.ID == id {
			return i
		}
	}
	return -1
}

func (s *sessionService) persistLocked() {
	snap := Snapshot{Sessions: s.sessions, CurrentSessionID: s.currentID}
	s.writer.submit(snap.clone())
}
