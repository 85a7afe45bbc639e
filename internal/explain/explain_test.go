package explain_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/saulo-duarte/quizdeck/internal/explain"
	"github.com/saulo-duarte/quizdeck/internal/question"
)

type fakeProvider struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
	prompts chan string
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	p.calls.Add(1)
	if p.prompts != nil {
		p.prompts <- prompt
	}
	if p.release != nil {
		<-p.release
	}
	if p.err != nil {
		return "", p.err
	}
	return "because c is right", nil
}

func capitalRequest() explain.Request {
	q, _ := question.FromRecord(2, question.Record{
		Question: "Capital of Italy?",
		Answers:  []string{"Paris", "Madrid", "Rome"},
		Correct:  "c",
	})
	return explain.Request{Question: q, UserAnswer: "Paris"}
}

func TestBuildPrompt(t *testing.T) {
	prompt := explain.BuildPrompt(capitalRequest())

	for _, want := range []string{
		"Question: Capital of Italy?",
		"Available answers:\na) Paris\nb) Madrid\nc) Rome\n",
		"User selected: Paris",
		"Correct answer: c) Rome",
		"Reference the specific options",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	free, _ := question.FromRecord(0, question.Record{Question: "What is 2+2?", Correct: "4"})
	prompt = explain.BuildPrompt(explain.Request{Question: free, UserAnswer: "5"})
	if strings.Contains(prompt, "Available answers") {
		t.Error("free-text prompt should not list options")
	}
	if !strings.Contains(prompt, "Correct answer: 4") {
		t.Errorf("free-text prompt should carry the expected text:\n%s", prompt)
	}
}

func TestExplainCachesPerPosition(t *testing.T) {
	p := &fakeProvider{}
	svc := explain.NewService(p)
	ctx := context.Background()

	if got := svc.Explain(ctx, 0, capitalRequest()); got != "because c is right" {
		t.Fatalf("unexpected explanation %q", got)
	}
	svc.Explain(ctx, 0, capitalRequest())
	if n := p.calls.Load(); n != 1 {
		t.Errorf("expected 1 provider call, got %d", n)
	}

	svc.Explain(ctx, 1, capitalRequest())
	if n := p.calls.Load(); n != 2 {
		t.Errorf("a different position should call again, got %d calls", n)
	}

	svc.Reset()
	if _, ok := svc.Cached(0); ok {
		t.Error("Reset should clear the cache")
	}
}

func TestExplainFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("ProviderError", func(t *testing.T) {
		p := &fakeProvider{err: errors.New("quota exceeded")}
		svc := explain.NewService(p)
		if got := svc.Explain(ctx, 0, capitalRequest()); got != explain.Fallback {
			t.Errorf("expected fallback, got %q", got)
		}
		if _, ok := svc.Cached(0); ok {
			t.Error("fallback should not be cached")
		}
	})

	t.Run("NoProvider", func(t *testing.T) {
		svc := explain.NewService(nil)
		if got := svc.Explain(ctx, 0, capitalRequest()); got != explain.Fallback {
			t.Errorf("expected fallback, got %q", got)
		}
	})

	t.Run("NoAPIKey", func(t *testing.T) {
		if _, err := explain.NewGeminiProvider(ctx, "", ""); !errors.Is(err, explain.ErrNoAPIKey) {
			t.Errorf("expected ErrNoAPIKey, got %v", err)
		}
	})
}

func TestConcurrentRequestsShareOneCall(t *testing.T) {
	p := &fakeProvider{release: make(chan struct{}), prompts: make(chan string, 8)}
	svc := explain.NewService(p)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]string, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Explain(ctx, 3, capitalRequest())
		}(i)
	}

	<-p.prompts
	close(p.release)
	wg.Wait()

	for i, r := range results {
		if r != "because c is right" {
			t.Errorf("caller %d got %q", i, r)
		}
	}
	// late callers may miss the shared flight but then hit the cache
	if n := p.calls.Load(); n != 1 {
		t.Errorf("expected a single provider call, got %d", n)
	}
}

func TestExplainAsync(t *testing.T) {
	t.Run("DeliversIntoCache", func(t *testing.T) {
		p := &fakeProvider{}
		svc := explain.NewService(p)

		ctx, cancel := context.WithCancel(context.Background())
		svc.ExplainAsync(ctx, 5, capitalRequest())
		cancel()
		svc.Wait()

		got, ok := svc.Cached(5)
		if !ok || got != "because c is right" {
			t.Errorf("expected cached explanation, got %q ok=%v", got, ok)
		}
	})

	t.Run("DiscardedAfterReset", func(t *testing.T) {
		p := &fakeProvider{release: make(chan struct{}), prompts: make(chan string, 1)}
		svc := explain.NewService(p)

		svc.ExplainAsync(context.Background(), 5, capitalRequest())
		<-p.prompts
		svc.Reset()
		close(p.release)
		svc.Wait()

		if _, ok := svc.Cached(5); ok {
			t.Error("a result from the previous run should not be cached")
		}
	})
}

type contextAwareProvider struct{}

func (contextAwareProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "because c is right", nil
}

func TestExplainOutlivesCallerCancellation(t *testing.T) {
	svc := explain.NewService(contextAwareProvider{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := svc.Explain(ctx, 0, capitalRequest()); got != "because c is right" {
		t.Errorf("a cancelled caller should still get the shared result, got %q", got)
	}
	if _, ok := svc.Cached(0); !ok {
		t.Error("the result should be cached for later callers")
	}
}
