package explain

import (
	"context"

	"github.com/saulo-duarte/quizdeck/internal/config"
)

type ExplainContainer struct {
	Service ExplainService
}

// NewExplainContainer falls back to a provider-less service when no key is set.
func NewExplainContainer(ctx context.Context, apiKey, model string) *ExplainContainer {
	provider, err := NewGeminiProvider(ctx, apiKey, model)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Explanations disabled")
		provider = nil
	}

	return &ExplainContainer{
		Service: NewService(provider),
	}
}
