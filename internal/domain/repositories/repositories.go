package repositories

import "context"

// CatalogRepository loads the supplier catalog. Implementations may be
// backed by any storage engine; the matcher assumes reads are strongly
// consistent within a single ListAll call. The matching service
// memoizes the result for process lifetime until ClearCache is called.
type CatalogRepository interface {
	ListAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}

// MappingRepository loads and records verified per-client mappings.
// ListVerified must only return rows with Verified == true, keyed by
// the normalized client SKU.
type MappingRepository interface {
	ListVerified(ctx context.Context, clientID string) (map[string]ClientMapping, error)
	Upsert(ctx context.Context, mapping ClientMapping) error
}

// EmbeddingIndex produces semantically similar candidates for a text
// query via an external similarity search. Implementations must
// tolerate transient failures by returning an empty result rather than
// an error where the error is not actionable by the caller; an error
// return signals the caller to fall back to a full catalog scan.
type EmbeddingIndex interface {
	Search(ctx context.Context, query string, topK int, minScore float64) ([]EmbeddingMatch, error)
}

// LLMMatcher returns a single best-guess candidate given a query and a
// bounded candidate list. A nil suggestion means "no suggestion".
type LLMMatcher interface {
	Match(ctx context.Context, query string, candidates []Product) (*LLMSuggestion, error)
}
