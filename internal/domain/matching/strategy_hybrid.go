package matching

import (
	"context"
	"strings"

	"github.com/narvinIR/PriceOrders/internal/domain/attributes"
	"github.com/narvinIR/PriceOrders/internal/domain/fuzzy"
	"github.com/narvinIR/PriceOrders/internal/domain/normalize"
	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

const (
	hybridSemanticTopK    = 50
	hybridSemanticMinSim  = 0.4
	hybridSemanticBoost   = 0.85
	hybridSemanticFuzzMin = 40.0
)

type hybridStrategy struct{}

func (hybridStrategy) match(ctx context.Context, req repositories.MatchRequest, products []repositories.Product, _ map[string]repositories.ClientMapping, caps capabilities, cfg Config) (*repositories.MatchResult, error) {
	if req.ClientName == "" {
		return nil, nil
	}
	clientAttrs := attributes.Extract(req.ClientName)

	cands := buildCandidatePool(ctx, req.ClientName, products, caps, cfg)
	cands = applyHardGates(cands, clientAttrs)
	if len(cands) == 0 {
		return nil, nil
	}

	scoreCandidates(cands, req.ClientName)

	threshold := float64(cfg.FuzzyThreshold)
	cands = keepIf(cands, func(c candidate) bool { return c.score >= threshold })
	if len(cands) == 0 {
		return nil, nil
	}

	cands, rejected := applyPostFilters(cands, clientAttrs)
	if rejected {
		return nil, nil
	}
	if len(cands) == 0 {
		return nil, nil
	}

	best := cands[0]
	for _, c := range cands[1:] {
		if c.score > best.score {
			best = c
		}
	}

	id := best.product.ID
	confidence := best.score
	if confidence > 100 {
		confidence = 100
	}
	return &repositories.MatchResult{
		ProductID:   &id,
		ProductSKU:  best.product.SKU,
		ProductName: best.product.Name,
		Confidence:  confidence,
		MatchType:   repositories.MatchFuzzyName,
		NeedsReview: confidence < 90,
		PackQty:     packQtyOrOne(best.product.PackQty),
	}, nil
}

// buildCandidatePool runs the semantic pre-filter (spec §4.8 step 2).
// A disabled or unavailable embedding index, or an empty result,
// falls back to a full-catalog scan.
func buildCandidatePool(ctx context.Context, query string, products []repositories.Product, caps capabilities, cfg Config) []candidate {
	full := func() []candidate {
		out := make([]candidate, len(products))
		for i, p := range products {
			out[i] = candidate{product: p, attrs: attributes.Extract(p.Name)}
		}
		return out
	}

	if !cfg.EnableMLMatching || caps.embedding == nil {
		return full()
	}

	hits, err := caps.embedding.Search(ctx, query, hybridSemanticTopK, hybridSemanticMinSim)
	if err != nil || len(hits) == 0 {
		return full()
	}

	sim := make(map[string]float64, len(hits))
	for _, h := range hits {
		sim[h.ProductID.String()] = h.Similarity
	}

	out := make([]candidate, 0, len(hits))
	for _, p := range products {
		s, ok := sim[p.ID.String()]
		if !ok {
			continue
		}
		out = append(out, candidate{product: p, attrs: attributes.Extract(p.Name), sem: s, hasSem: true})
	}
	if len(out) == 0 {
		return full()
	}
	return out
}

// applyHardGates implements spec §4.8 step 3: strict filters that may
// not be bypassed by fuzzy or semantic score.
func applyHardGates(cands []candidate, client attributes.Set) []candidate {
	return keepIf(cands, func(c candidate) bool {
		if client.PipeSize != nil {
			if c.attrs.PipeSize == nil || *c.attrs.PipeSize != *client.PipeSize {
				return false
			}
		}
		if client.ThreadSize != nil {
			if c.attrs.ThreadSize == nil || *c.attrs.ThreadSize != *client.ThreadSize {
				return false
			}
		}
		if len(client.FittingSize) > 0 {
			normClient := attributes.NormalizeEqualSizes(client.FittingSize)
			normProduct := attributes.NormalizeEqualSizes(c.attrs.FittingSize)
			if !fittingSizesAgree(normClient, normProduct) {
				return false
			}
		}
		if client.Color != attributes.ColorNone {
			if c.attrs.Color != attributes.ColorNone && c.attrs.Color != client.Color {
				return false
			}
			switch client.Color {
			case attributes.ColorWhite:
				if strings.HasPrefix(c.product.SKU, "202") {
					return false
				}
			case attributes.ColorGray:
				if strings.HasPrefix(c.product.SKU, "403") {
					return false
				}
			case attributes.ColorRed:
				if strings.HasPrefix(c.product.SKU, "202") || strings.HasPrefix(c.product.SKU, "403") {
					return false
				}
			}
		}
		return true
	})
}

func fittingSizesAgree(client, product []int) bool {
	if len(product) == 0 {
		return false
	}
	if len(client) == 1 {
		return product[0] == client[0]
	}
	if len(client) != len(product) {
		return false
	}
	for i := range client {
		if client[i] != product[i] {
			return false
		}
	}
	return true
}

// scoreCandidates computes the averaged token-sort/token-set fuzzy
// score and applies the semantic boost (spec §4.8 steps 4-5), mutating
// cands in place.
func scoreCandidates(cands []candidate, query string) {
	normQuery := normalize.Name(query)
	for i := range cands {
		normProduct := normalize.Name(cands[i].product.Name)
		avg := float64(fuzzy.TokenSortRatio(normQuery, normProduct)+fuzzy.TokenSetRatio(normQuery, normProduct)) / 2
		if cands[i].hasSem && cands[i].sem >= hybridSemanticBoost && avg > hybridSemanticFuzzMin {
			boosted := cands[i].sem * 100
			if boosted > avg {
				avg = boosted
			}
		}
		cands[i].score = avg
	}
}

// applyPostFilters runs spec §4.8 step 7 in order. The second return
// value is true when a critical-type mismatch forces an outright
// not_found rather than a narrowed set.
func applyPostFilters(cands []candidate, client attributes.Set) ([]candidate, bool) {
	if client.ProductType != attributes.TypeNone {
		typed := keepIf(cands, func(c candidate) bool { return c.attrs.ProductType == client.ProductType })
		if len(typed) == 0 {
			if criticalTypes[string(client.ProductType)] {
				return nil, true
			}
		} else {
			cands = typed
		}
	}

	if client.Angle != nil {
		wanted := attributes.NormalizeAngle(*client.Angle)
		if narrowed := keepIf(cands, func(c candidate) bool {
			return c.attrs.Angle != nil && *c.attrs.Angle == wanted
		}); len(narrowed) > 0 {
			cands = narrowed
		}
	}

	// effective = client_category ∨ sewer (spec §4.8 step 7, §4.8.1).
	// The sewer row's "strict, no fallback" note is honored only when
	// the client actually asked for sewer: when the category was only
	// defaulted (client said nothing about category at all), the
	// general "skip if empty" post-filter rule takes precedence, since
	// a defaulted category was never a real constraint the client
	// expressed.
	explicitCategory := client.Category != attributes.CategoryNone
	effective := client.Category
	if !explicitCategory {
		effective = attributes.CategorySewer
	}
	narrowed := filterByCategory(cands, effective)
	switch {
	case len(narrowed) > 0:
		cands = narrowed
	case explicitCategory && effective == attributes.CategorySewer:
		return nil, false
	}

	if client.ThreadDir != attributes.ThreadNone {
		if narrowed := keepIf(cands, func(c candidate) bool { return c.attrs.ThreadDir == client.ThreadDir }); len(narrowed) > 0 {
			cands = narrowed
		}
	}

	if client.ClampDiameter != nil && len(cands) > 1 {
		if narrowed := keepIf(cands, func(c candidate) bool {
			return attributes.ClampFitsMM(c.product.Name, *client.ClampDiameter)
		}); len(narrowed) > 0 {
			cands = narrowed
		}
	}

	if client.Detachable {
		if narrowed := keepIf(cands, func(c candidate) bool { return c.attrs.Detachable }); len(narrowed) > 0 {
			cands = narrowed
		}
	}
	if client.Reducer {
		if narrowed := keepIf(cands, func(c candidate) bool { return c.attrs.Reducer }); len(narrowed) > 0 {
			cands = narrowed
		}
	}

	if !client.Eco && len(cands) > 1 {
		if narrowed := keepIf(cands, func(c candidate) bool { return !c.attrs.Eco }); len(narrowed) > 0 {
			cands = narrowed
		}
	}

	return cands, false
}
