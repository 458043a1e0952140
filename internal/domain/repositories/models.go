// Package repositories holds the value types and collaborator
// interfaces the matcher core depends on: the product catalog, the
// per-client mapping cache, and the pluggable embedding/LLM
// capabilities. Nothing here talks to a database or network directly.
package repositories

import (
	"time"

	"github.com/google/uuid"
)

// MatchType is the closed set of ways a MatchResult was produced.
type MatchType string

const (
	MatchExactSKU     MatchType = "exact_sku"
	MatchExactName    MatchType = "exact_name"
	MatchCached       MatchType = "cached_mapping"
	MatchFuzzySKU     MatchType = "fuzzy_sku"
	MatchFuzzyName    MatchType = "fuzzy_name"
	MatchLLM          MatchType = "llm_match"
	MatchNotFound     MatchType = "not_found"
)

// Product is a canonical catalog entry.
type Product struct {
	ID         uuid.UUID
	SKU        string
	Name       string
	Category   string // empty means "no category"
	PackQty    int
	Attributes map[string]string // free-form catalog metadata, not the extracted structured attributes
}

// ClientMapping records a verified or auto-saved association between a
// client's raw SKU and a canonical product.
type ClientMapping struct {
	ClientID   string
	ClientSKU  string
	ProductID  uuid.UUID
	Confidence float64
	MatchType  MatchType
	Verified   bool
	VerifiedAt *time.Time
}

// MatchRequest is the input to MatchItem.
type MatchRequest struct {
	ClientID   string `json:"client_id,omitempty"`
	ClientSKU  string `json:"client_sku"`
	ClientName string `json:"client_name"`
}

// MatchResult is the output of MatchItem. ProductID is set iff
// MatchType != MatchNotFound.
type MatchResult struct {
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	ProductSKU  string     `json:"product_sku,omitempty"`
	ProductName string     `json:"product_name,omitempty"`
	Confidence  float64    `json:"confidence"`
	MatchType   MatchType  `json:"match_type"`
	NeedsReview bool       `json:"needs_review"`
	PackQty     int        `json:"pack_qty"`
}

// NotFound builds the canonical not_found result.
func NotFound() *MatchResult {
	return &MatchResult{
		Confidence:  0,
		MatchType:   MatchNotFound,
		NeedsReview: true,
	}
}

// EmbeddingMatch is one hit returned by an EmbeddingIndex search.
type EmbeddingMatch struct {
	ProductID  uuid.UUID
	Similarity float64 // in [0,1]
}

// LLMSuggestion is the best-guess candidate an LLMMatcher proposes.
type LLMSuggestion struct {
	SKU        string
	Name       string
	Confidence float64 // in [0,100]
}
