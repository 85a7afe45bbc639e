package session

import "github.com/saulo-duarte/quizdeck/internal/storage"

type SessionContainer struct {
	Repo    SessionRepository
	Service SessionService
}

func NewSessionContainer(kv storage.KV, opts ...Option) *SessionContainer {
	repo := NewRepository(kv)
	service := NewService(repo, opts...)

	return &SessionContainer{
		Repo:    repo,
		Service: service,
	}
}
