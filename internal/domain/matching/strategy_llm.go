package matching

import (
	"context"

	"github.com/narvinIR/PriceOrders/internal/domain/attributes"
	"github.com/narvinIR/PriceOrders/internal/domain/normalize"
	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

const llmCandidatePoolSize = 50
const llmEmbeddingTopK = 20
const llmRejectConfidence = 10

type llmStrategy struct{}

func (llmStrategy) match(ctx context.Context, req repositories.MatchRequest, products []repositories.Product, _ map[string]repositories.ClientMapping, caps capabilities, cfg Config) (*repositories.MatchResult, error) {
	if caps.llm == nil || req.ClientName == "" {
		return nil, nil
	}

	pool := buildLLMCandidates(ctx, req.ClientName, products, caps)
	if len(pool) == 0 {
		return nil, nil
	}

	suggestion, err := caps.llm.Match(ctx, req.ClientName, pool)
	if err != nil || suggestion == nil {
		return nil, nil
	}

	confidence := suggestion.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	product := findBySKU(products, suggestion.SKU)
	if product == nil {
		// Hallucination: the LLM named a SKU not in the catalog.
		return nil, nil
	}

	clientAttrs := attributes.Extract(req.ClientName)
	productAttrs := attributes.Extract(product.Name)

	if clientAttrs.ProductType != attributes.TypeNone && criticalTypes[string(clientAttrs.ProductType)] && clientAttrs.ProductType != productAttrs.ProductType {
		confidence = 0
	}
	if clientAttrs.ThreadDir != attributes.ThreadNone && productAttrs.ThreadDir != attributes.ThreadNone && clientAttrs.ThreadDir != productAttrs.ThreadDir {
		confidence = 0
	}

	if confidence <= llmRejectConfidence {
		return nil, nil
	}

	id := product.ID
	return &repositories.MatchResult{
		ProductID:   &id,
		ProductSKU:  product.SKU,
		ProductName: product.Name,
		Confidence:  confidence,
		MatchType:   repositories.MatchLLM,
		NeedsReview: confidence < cfg.MinConfidenceAuto,
		PackQty:     packQtyOrOne(product.PackQty),
	}, nil
}

// buildLLMCandidates draws from the Embedding Index (top-20) when
// available, else the first N catalog entries (spec §4.6).
func buildLLMCandidates(ctx context.Context, query string, products []repositories.Product, caps capabilities) []repositories.Product {
	if caps.embedding != nil {
		hits, err := caps.embedding.Search(ctx, query, llmEmbeddingTopK, 0)
		if err == nil && len(hits) > 0 {
			byID := make(map[string]repositories.Product, len(products))
			for _, p := range products {
				byID[p.ID.String()] = p
			}
			out := make([]repositories.Product, 0, len(hits))
			for _, h := range hits {
				if p, ok := byID[h.ProductID.String()]; ok {
					out = append(out, p)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	if len(products) <= llmCandidatePoolSize {
		return products
	}
	return products[:llmCandidatePoolSize]
}

func findBySKU(products []repositories.Product, sku string) *repositories.Product {
	if sku == "" {
		return nil
	}
	norm := normalize.SKU(sku)
	for i := range products {
		if normalize.SKU(products[i].SKU) == norm {
			return &products[i]
		}
	}
	return nil
}
