package matching

import (
	"context"
	"strings"

	"github.com/narvinIR/PriceOrders/internal/domain/attributes"
	"github.com/narvinIR/PriceOrders/internal/domain/normalize"
	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

type exactNameStrategy struct{}

func (exactNameStrategy) match(_ context.Context, req repositories.MatchRequest, products []repositories.Product, _ map[string]repositories.ClientMapping, _ capabilities, cfg Config) (*repositories.MatchResult, error) {
	if req.ClientName == "" {
		return nil, nil
	}
	normQuery := normalize.Name(req.ClientName)
	if normQuery == "" {
		return nil, nil
	}
	clientColor := attributes.ExtractColor(req.ClientName)

	for i := range products {
		p := &products[i]
		if normalize.Name(p.Name) != normQuery {
			continue
		}
		if colorsDisagree(req.ClientName, clientColor, p) {
			continue
		}
		id := p.ID
		return &repositories.MatchResult{
			ProductID:   &id,
			ProductSKU:  p.SKU,
			ProductName: p.Name,
			Confidence:  cfg.ConfidenceExactName,
			MatchType:   repositories.MatchExactName,
			NeedsReview: false,
			PackQty:     packQtyOrOne(p.PackQty),
		}, nil
	}
	return nil, nil
}

// colorsDisagree implements the rejection rules from spec §4.7 step 2:
// an explicit color clash, or a client asking for white/prestige
// against a sewer-gray-prefixed candidate (or vice versa).
func colorsDisagree(clientName string, clientColor attributes.Color, p *repositories.Product) bool {
	productColor := attributes.ExtractColor(p.Name)
	if clientColor != attributes.ColorNone && productColor != attributes.ColorNone && clientColor != productColor {
		return true
	}

	wantsPrestige := clientColor == attributes.ColorWhite || strings.Contains(strings.ToLower(clientName), "prestige")
	if wantsPrestige && strings.HasPrefix(p.SKU, "202") {
		return true
	}
	if !wantsPrestige && clientColor == attributes.ColorNone && strings.HasPrefix(p.SKU, "202") && productColor == attributes.ColorWhite {
		return true
	}
	return false
}
