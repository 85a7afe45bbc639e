package question

import (
	"net/http"

	"github.com/saulo-duarte/quizdeck/internal/storage"
)

type QuestionContainer struct {
	Service QuestionService
}

func NewQuestionContainer(location string, kv storage.KV, client *http.Client) *QuestionContainer {
	repo := NewRepository(location, client)

	var cache *Cache
	if kv != nil {
		cache = NewCache(kv)
	}

	return &QuestionContainer{
		Service: NewService(repo, cache),
	}
}
