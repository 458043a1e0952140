package repositories

import "errors"

// Domain-specific errors for the matcher core. Only ErrCatalogUnavailable
// is allowed to propagate out of the matching service (spec §7); the
// others are handled internally by callers that can degrade gracefully.
var (
	ErrInvalidInput        = errors.New("client_sku and client_name are both empty")
	ErrCatalogUnavailable  = errors.New("catalog repository unavailable")
	ErrMappingUnavailable  = errors.New("mapping repository unavailable")
	ErrEmbeddingUnavailable = errors.New("embedding index unavailable")
	ErrLLMUnavailable      = errors.New("llm matcher unavailable")
	ErrLLMHallucination    = errors.New("llm suggested a sku not present in the catalog")
)
