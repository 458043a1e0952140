package capability

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

// llmBackend is the narrow transport interface a real LLM provider
// implements, e.g. a chat-completion call constrained to a JSON schema.
type llmBackend interface {
	Match(ctx context.Context, query string, candidates []repositories.Product) (*repositories.LLMSuggestion, error)
}

// RateLimitedLLMMatcher wraps a backend with a token-bucket rate
// limiter and the spec's 15s LLM wall-clock budget (spec §4.10).
type RateLimitedLLMMatcher struct {
	backend llmBackend
	limiter *rate.Limiter
	budget  time.Duration
}

// LLMConfig configures RateLimitedLLMMatcher. A zero Budget or
// RateLimit falls back to the package defaults.
type LLMConfig struct {
	RateLimit rate.Limit
	Burst     int
	Budget    time.Duration
}

const defaultLLMBudget = 15 * time.Second

// NewRateLimitedLLMMatcher wraps backend with cfg's limits.
func NewRateLimitedLLMMatcher(backend llmBackend, cfg LLMConfig) *RateLimitedLLMMatcher {
	if cfg.RateLimit == 0 {
		cfg.RateLimit = rate.Every(time.Second) // 1 req/s, LLM calls are expensive
	}
	if cfg.Burst == 0 {
		cfg.Burst = 1
	}
	if cfg.Budget == 0 {
		cfg.Budget = defaultLLMBudget
	}
	return &RateLimitedLLMMatcher{
		backend: backend,
		limiter: rate.NewLimiter(cfg.RateLimit, cfg.Burst),
		budget:  cfg.Budget,
	}
}

// Match waits for a rate-limiter token, then calls the backend under
// the configured budget.
func (r *RateLimitedLLMMatcher) Match(ctx context.Context, query string, candidates []repositories.Product) (*repositories.LLMSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, r.budget)
	defer cancel()

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.backend.Match(ctx, query, candidates)
}

// NoopLLMMatcher always returns no suggestion. It is the default when
// no LLM provider is configured; the llm_match strategy then
// contributes nothing and the pipeline falls through to not_found.
type NoopLLMMatcher struct{}

// Match implements repositories.LLMMatcher.
func (NoopLLMMatcher) Match(ctx context.Context, query string, candidates []repositories.Product) (*repositories.LLMSuggestion, error) {
	return nil, nil
}
