package matching

import (
	"context"

	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

// criticalTypes is the hard-coded set for which the Hybrid strategy
// refuses to bridge a type mismatch with fuzzy score (spec §4.8 step
// 7, §4.10, GLOSSARY "Critical type"). Introducing a new dominant type
// means touching both this set and the attribute extractor's marker
// table, by design (spec §9).
var criticalTypes = map[string]bool{
	"кран":       true,
	"муфта":      true,
	"отвод":      true,
	"тройник":    true,
	"переходник": true,
	"заглушка":   true,
	"ревизия":    true,
	"крестовина": true,
}

// capabilities bundles the two pluggable external collaborators a
// strategy may consult. Either field may be nil, meaning the
// capability is not configured for this deployment.
type capabilities struct {
	embedding repositories.EmbeddingIndex
	llm       repositories.LLMMatcher
}

// strategy is the single-operation interface every pipeline stage
// implements (spec §9: "capability interface with a single match
// operation; registration is compile-time, not dynamic"). A nil,nil
// return means "no opinion, try the next strategy"; a non-nil result
// is final.
type strategy interface {
	match(ctx context.Context, req repositories.MatchRequest, products []repositories.Product, mappings map[string]repositories.ClientMapping, caps capabilities, cfg Config) (*repositories.MatchResult, error)
}
