package matching

import (
	"context"
	"regexp"

	"github.com/narvinIR/PriceOrders/internal/domain/normalize"
	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

// skuPrefixRe pulls a SKU-shaped leading token (digits, letters, the
// usual separators) off a client name, for orders where the SKU was
// typed into the name field instead of its own column.
var skuPrefixRe = regexp.MustCompile(`^([A-Za-zА-Яа-я0-9][A-Za-zА-Яа-я0-9\-./_]{3,})\b`)

type exactSkuStrategy struct{}

func (exactSkuStrategy) match(_ context.Context, req repositories.MatchRequest, products []repositories.Product, _ map[string]repositories.ClientMapping, _ capabilities, cfg Config) (*repositories.MatchResult, error) {
	candidates := make([]string, 0, 2)
	if req.ClientSKU != "" {
		candidates = append(candidates, normalize.SKU(req.ClientSKU))
	}
	if m := skuPrefixRe.FindStringSubmatch(req.ClientName); m != nil {
		candidates = append(candidates, normalize.SKU(m[1]))
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	for i := range products {
		p := &products[i]
		normSKU := normalize.SKU(p.SKU)
		for _, c := range candidates {
			if c != "" && c == normSKU {
				id := p.ID
				return &repositories.MatchResult{
					ProductID:   &id,
					ProductSKU:  p.SKU,
					ProductName: p.Name,
					Confidence:  cfg.ConfidenceExactSKU,
					MatchType:   repositories.MatchExactSKU,
					NeedsReview: false,
					PackQty:     packQtyOrOne(p.PackQty),
				}, nil
			}
		}
	}
	return nil, nil
}

func packQtyOrOne(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
