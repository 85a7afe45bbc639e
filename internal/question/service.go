package question

import (
	"context"
	"errors"
	"sync"

	"github.com/saulo-duarte/quizdeck/internal/config"
)

var ErrNotLoaded = errors.New("questions not loaded")

type QuestionService interface {
	Load(ctx context.Context) error
	All() []Question
	Get(index int) (Question, error)
	Len() int
	ClearCache(ctx context.Context) error
}

type questionService struct {
	repo  QuestionRepository
	cache *Cache

	once      sync.Once
	loadErr   error
	questions []Question
}

// NewService builds the question store. cache may be nil.
func NewService(repo QuestionRepository, cache *Cache) QuestionService {
	return &questionService{repo: repo, cache: cache}
}

// Load reads the question set once; later calls return the first result.
func (s *questionService) Load(ctx context.Context) error {
	s.once.Do(func() {
		s.loadErr = s.load(ctx)
	})
	return s.loadErr
}

func (s *questionService) load(ctx context.Context) error {
	log := config.WithContext(ctx).WithField("source", s.repo.Location())

	useCache := s.cache != nil && s.repo.Remote()
	if useCache {
		records, ok, err := s.cache.Get(ctx)
		if err != nil {
			log.WithError(err).Warn("Failed to read question cache")
		}
		if ok {
			questions, err := FromRecords(records)
			if err == nil {
				s.questions = questions
				log.WithField("count", len(questions)).Info("Questions loaded from cache")
				return nil
			}
			log.WithError(err).Warn("Cached questions are invalid, refetching")
		}
	}

	records, err := s.repo.Fetch(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to fetch questions")
		return err
	}
	questions, err := FromRecords(records)
	if err != nil {
		log.WithError(err).Error("Invalid question set")
		return err
	}

	if useCache {
		if err := s.cache.Put(ctx, records); err != nil {
			log.WithError(err).Warn("Failed to cache questions")
		}
	}

	s.questions = questions
	log.WithField("count", len(questions)).Info("Questions loaded")
	return nil
}

func (s *questionService) All() []Question {
	return append([]Question{}, s.questions...)
}

func (s *questionService) Get(index int) (Question, error) {
	if s.questions == nil {
		return Question{}, ErrNotLoaded
	}
	if index < 0 || index >= len(s.questions) {
		return Question{}, ErrOutOfRange
	}
	return s.questions[index], nil
}

func (s *questionService) Len() int {
	return len(s.questions)
}

func (s *questionService) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear(ctx)
}
