// Package capability provides stand-in EmbeddingIndex and LLMMatcher
// adapters. The spec treats the real embedding service and LLM
// provider as external systems reached over HTTP; grounded on the
// teacher's websearch.Client (websearch/client.go), which wraps an
// external search API behind a rate.Limiter and a context-bound
// timeout. NoopEmbeddingIndex/NoopLLMMatcher let the pipeline degrade
// gracefully (spec §7) when no real provider is configured.
package capability

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

// embeddingBackend is the narrow transport interface a real provider
// implements (e.g. an HTTP call to a vector-search service). Kept
// separate from repositories.EmbeddingIndex so the rate limiting and
// budget enforcement below apply uniformly regardless of backend.
type embeddingBackend interface {
	Search(ctx context.Context, query string, topK int) ([]repositories.EmbeddingMatch, error)
}

// RateLimitedEmbeddingIndex wraps a backend with a token-bucket rate
// limiter and a hard wall-clock budget per call (spec §4.8: the
// semantic pre-filter step must not stall the pipeline indefinitely).
type RateLimitedEmbeddingIndex struct {
	backend embeddingBackend
	limiter *rate.Limiter
	budget  time.Duration
}

// EmbeddingConfig configures RateLimitedEmbeddingIndex. A zero Budget
// or RateLimit falls back to the package defaults.
type EmbeddingConfig struct {
	RateLimit rate.Limit
	Burst     int
	Budget    time.Duration
}

const defaultEmbeddingBudget = 30 * time.Second

// NewRateLimitedEmbeddingIndex wraps backend with cfg's limits.
func NewRateLimitedEmbeddingIndex(backend embeddingBackend, cfg EmbeddingConfig) *RateLimitedEmbeddingIndex {
	if cfg.RateLimit == 0 {
		cfg.RateLimit = rate.Every(100 * time.Millisecond) // 10 req/s
	}
	if cfg.Burst == 0 {
		cfg.Burst = 1
	}
	if cfg.Budget == 0 {
		cfg.Budget = defaultEmbeddingBudget
	}
	return &RateLimitedEmbeddingIndex{
		backend: backend,
		limiter: rate.NewLimiter(cfg.RateLimit, cfg.Burst),
		budget:  cfg.Budget,
	}
}

// Search waits for a rate-limiter token, then calls the backend under
// the configured budget. Per the EmbeddingIndex contract, a failure
// here must be non-fatal to the caller: the matching pipeline falls
// back to a full catalog scan on any returned error.
func (r *RateLimitedEmbeddingIndex) Search(ctx context.Context, query string, topK int, minScore float64) ([]repositories.EmbeddingMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, r.budget)
	defer cancel()

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	hits, err := r.backend.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	out := hits[:0:0]
	for _, h := range hits {
		if h.Similarity >= minScore {
			out = append(out, h)
		}
	}
	return out, nil
}

// NoopEmbeddingIndex always returns an empty result, forcing the
// hybrid strategy's candidate pool to fall back to a full catalog
// scan. It is the default when no embedding provider is configured.
type NoopEmbeddingIndex struct{}

// Search implements repositories.EmbeddingIndex.
func (NoopEmbeddingIndex) Search(ctx context.Context, query string, topK int, minScore float64) ([]repositories.EmbeddingMatch, error) {
	return nil, nil
}
