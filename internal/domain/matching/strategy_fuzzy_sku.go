package matching

import (
	"context"

	"github.com/narvinIR/PriceOrders/internal/domain/fuzzy"
	"github.com/narvinIR/PriceOrders/internal/domain/normalize"
	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

const fuzzySkuMinRatio = 90

type fuzzySkuStrategy struct{}

func (fuzzySkuStrategy) match(_ context.Context, req repositories.MatchRequest, products []repositories.Product, _ map[string]repositories.ClientMapping, _ capabilities, cfg Config) (*repositories.MatchResult, error) {
	if req.ClientSKU == "" {
		return nil, nil
	}
	query := normalize.SKU(req.ClientSKU)
	if query == "" {
		return nil, nil
	}

	var best *repositories.Product
	bestRatio := 0
	for i := range products {
		p := &products[i]
		ratio := fuzzy.Ratio(query, normalize.SKU(p.SKU))
		if ratio > bestRatio {
			bestRatio = ratio
			best = p
		}
	}
	if best == nil || bestRatio < fuzzySkuMinRatio {
		return nil, nil
	}

	id := best.ID
	return &repositories.MatchResult{
		ProductID:   &id,
		ProductSKU:  best.SKU,
		ProductName: best.Name,
		Confidence:  cfg.ConfidenceFuzzySKU * float64(bestRatio) / 100,
		MatchType:   repositories.MatchFuzzySKU,
		NeedsReview: bestRatio < 95,
		PackQty:     packQtyOrOne(best.PackQty),
	}, nil
}
