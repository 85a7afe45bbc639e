package explain

import (
	"context"
	"strconv"
	"sync"

	"github.com/saulo-duarte/quizdeck/internal/config"
	"golang.org/x/sync/singleflight"
)

// ExplainService produces explanations for wrong answers. It never fails:
// any provider error yields Fallback.
type ExplainService interface {
	Explain(ctx context.Context, position int, req Request) string
	ExplainAsync(ctx context.Context, position int, req Request)
	Cached(position int) (string, bool)
	Reset()
	Wait()
}

type explainService struct {
	provider Provider

	mu    sync.Mutex
	gen   uint64
	cache map[int]string

	group    singleflight.Group
	inflight sync.WaitGroup
}

// NewService builds the service. A nil provider always answers with Fallback.
func NewService(provider Provider) ExplainService {
	return &explainService{provider: provider, cache: map[int]string{}}
}

func (s *explainService) Explain(ctx context.Context, position int, req Request) string {
	if text, ok := s.Cached(position); ok {
		return text
	}

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	// the call is shared, so one caller going away must not cancel it
	shared := context.WithoutCancel(ctx)
	key := strconv.FormatUint(gen, 10) + ":" + strconv.Itoa(position)
	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		if text, ok := s.Cached(position); ok {
			return text, nil
		}
		text, ok := s.generate(shared, position, req)
		if ok {
			s.store(gen, position, text)
		}
		return text, nil
	})
	return v.(string)
}

// ExplainAsync fills the cache in the background; the result lands even if
// the caller has moved on to another question.
func (s *explainService) ExplainAsync(ctx context.Context, position int, req Request) {
	if _, ok := s.Cached(position); ok {
		return
	}
	ctx = context.WithoutCancel(ctx)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.Explain(ctx, position, req)
	}()
}

func (s *explainService) Cached(position int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.cache[position]
	return text, ok
}

// Reset drops cached explanations; results of calls started before Reset are discarded.
func (s *explainService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.cache = map[int]string{}
}

// Wait blocks until background requests finish.
func (s *explainService) Wait() {
	s.inflight.Wait()
}

func (s *explainService) generate(ctx context.Context, position int, req Request) (string, bool) {
	log := config.WithContext(ctx).WithField("position", position)

	if s.provider == nil {
		log.Warn("No explanation provider configured")
		return Fallback, false
	}

	text, err := s.provider.Generate(ctx, BuildPrompt(req))
	if err != nil {
		log.WithError(err).Error("Failed to generate explanation")
		return Fallback, false
	}
	return text, true
}

func (s *explainService) store(gen uint64, position int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.cache[position] = text
}
