package capability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

type fakeEmbeddingBackend struct {
	hits []repositories.EmbeddingMatch
	err  error
}

func (f *fakeEmbeddingBackend) Search(ctx context.Context, query string, topK int) ([]repositories.EmbeddingMatch, error) {
	return f.hits, f.err
}

func TestRateLimitedEmbeddingIndexFiltersByMinScore(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()
	backend := &fakeEmbeddingBackend{hits: []repositories.EmbeddingMatch{
		{ProductID: id1, Similarity: 0.9},
		{ProductID: id2, Similarity: 0.1},
	}}
	idx := NewRateLimitedEmbeddingIndex(backend, EmbeddingConfig{})

	hits, err := idx.Search(context.Background(), "труба", 10, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].ProductID != id1 {
		t.Fatalf("expected only the high-similarity hit, got %+v", hits)
	}
}

func TestRateLimitedEmbeddingIndexPropagatesBackendError(t *testing.T) {
	backend := &fakeEmbeddingBackend{err: errors.New("boom")}
	idx := NewRateLimitedEmbeddingIndex(backend, EmbeddingConfig{})

	if _, err := idx.Search(context.Background(), "труба", 10, 0.4); err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestRateLimitedEmbeddingIndexRespectsBudget(t *testing.T) {
	backend := &fakeEmbeddingBackend{}
	idx := NewRateLimitedEmbeddingIndex(backend, EmbeddingConfig{Budget: time.Nanosecond})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	// With a 1ns budget the per-call context has usually expired before
	// the limiter is consulted, so Wait may return DeadlineExceeded;
	// either that or a clean result is accepted. This exercises that the
	// call returns instead of hanging past the budget.
	if _, err := idx.Search(ctx, "труба", 10, 0); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNoopEmbeddingIndexReturnsEmpty(t *testing.T) {
	hits, err := (NoopEmbeddingIndex{}).Search(context.Background(), "труба", 10, 0.4)
	if err != nil || hits != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", hits, err)
	}
}

type fakeLLMBackend struct {
	suggestion *repositories.LLMSuggestion
	err        error
}

func (f *fakeLLMBackend) Match(ctx context.Context, query string, candidates []repositories.Product) (*repositories.LLMSuggestion, error) {
	return f.suggestion, f.err
}

func TestRateLimitedLLMMatcherDelegates(t *testing.T) {
	backend := &fakeLLMBackend{suggestion: &repositories.LLMSuggestion{SKU: "1", Confidence: 80}}
	m := NewRateLimitedLLMMatcher(backend, LLMConfig{})

	s, err := m.Match(context.Background(), "труба", nil)
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || s.SKU != "1" {
		t.Fatalf("got %+v", s)
	}
}

func TestNoopLLMMatcherReturnsNoSuggestion(t *testing.T) {
	s, err := (NoopLLMMatcher{}).Match(context.Background(), "труба", nil)
	if err != nil || s != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", s, err)
	}
}
