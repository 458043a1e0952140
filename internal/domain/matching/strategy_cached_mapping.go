package matching

import (
	"context"

	"github.com/narvinIR/PriceOrders/internal/domain/normalize"
	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

type cachedMappingStrategy struct{}

func (cachedMappingStrategy) match(_ context.Context, req repositories.MatchRequest, products []repositories.Product, mappings map[string]repositories.ClientMapping, _ capabilities, cfg Config) (*repositories.MatchResult, error) {
	if req.ClientSKU == "" || len(mappings) == 0 {
		return nil, nil
	}
	mapping, ok := mappings[normalize.SKU(req.ClientSKU)]
	if !ok {
		return nil, nil
	}

	for i := range products {
		p := &products[i]
		if p.ID == mapping.ProductID {
			id := p.ID
			return &repositories.MatchResult{
				ProductID:   &id,
				ProductSKU:  p.SKU,
				ProductName: p.Name,
				Confidence:  cfg.ConfidenceExactSKU,
				MatchType:   repositories.MatchCached,
				NeedsReview: false,
				PackQty:     packQtyOrOne(p.PackQty),
			}, nil
		}
	}
	// Mapping points at a product no longer in the catalog; treat as
	// no opinion rather than erroring the whole pipeline.
	return nil, nil
}
