package matching

import (
	"strings"

	"github.com/narvinIR/PriceOrders/internal/domain/attributes"
	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

// candidate bundles a catalog product with its pre-extracted
// attributes and, when the Hybrid semantic pre-filter ran, its
// embedding similarity. Every post-filter in this file narrows a
// []candidate slice and never grows it.
type candidate struct {
	product repositories.Product
	attrs   attributes.Set
	score   float64
	sem     float64
	hasSem  bool
}

// filterByCategory applies the ordered table from spec §4.8.1. An
// empty effective category is treated as "sewer" by the Hybrid
// strategy before this function is ever called (effective = client ∨
// sewer), so this function never needs to special-case "none" as a
// passthrough.
func filterByCategory(cands []candidate, effective attributes.Category) []candidate {
	switch effective {
	case attributes.CategoryPert:
		return keepIf(cands, func(c candidate) bool {
			return strings.HasPrefix(c.product.SKU, "501") || strings.Contains(lowerName(c), "pert")
		})
	case attributes.CategoryPND:
		return keepIf(cands, func(c candidate) bool {
			return strings.HasPrefix(c.product.SKU, "704") || strings.Contains(lowerName(c), "компресс")
		})
	case attributes.CategoryPrestige:
		return keepIf(cands, func(c candidate) bool {
			return strings.Contains(strings.ToLower(c.product.Category), "малошум") || strings.Contains(lowerName(c), "prestige")
		})
	case attributes.CategoryOutdoor:
		return keepIf(cands, func(c candidate) bool {
			if strings.HasPrefix(c.product.SKU, "303") || strings.HasPrefix(c.product.SKU, "604") {
				return true
			}
			hay := strings.ToLower(c.product.Category) + " " + lowerName(c)
			return strings.Contains(hay, "наружн") || strings.Contains(hay, "нар.кан") || strings.Contains(hay, "рифлен")
		})
	case attributes.CategoryPPR:
		return keepIf(cands, func(c candidate) bool {
			hay := strings.ToLower(c.product.Category) + " " + lowerName(c)
			return strings.Contains(hay, "ппр")
		})
	case attributes.CategorySewer:
		// Strict when the client explicitly asked for sewer: an empty
		// result then means the Hybrid strategy yields no match rather
		// than falling back. When sewer was only defaulted, the caller
		// skips this filter on empty like any other post-filter.
		return keepIf(cands, func(c candidate) bool {
			if strings.HasPrefix(c.product.SKU, "202") {
				return true
			}
			lower := lowerName(c)
			return strings.Contains(lower, "серый") && !strings.Contains(lower, "рифлен")
		})
	default:
		return filterByDefaultCategory(cands)
	}
}

func filterByDefaultCategory(cands []candidate) []candidate {
	if withPrefix := keepIf(cands, func(c candidate) bool {
		return strings.HasPrefix(c.product.SKU, "202")
	}); len(withPrefix) > 0 {
		return withPrefix
	}
	if sewerish := keepIf(cands, func(c candidate) bool {
		cat := strings.ToLower(c.product.Category)
		return strings.Contains(cat, "канализац") && !strings.Contains(cat, "малошум") && !strings.Contains(cat, "наружн")
	}); len(sewerish) > 0 {
		return sewerish
	}
	if gray := keepIf(cands, func(c candidate) bool {
		return strings.Contains(lowerName(c), "серый")
	}); len(gray) > 0 {
		return gray
	}
	return cands
}

func lowerName(c candidate) string {
	return strings.ToLower(c.product.Name)
}

// keepIf narrows cands to those matching pred and returns an empty
// slice when nothing matches. The "skip if it would empty the set"
// rule from spec §4.8 step 7 lives in the individual post-filter call
// sites, not here, since the explicit sewer category rule is the one
// exception that must NOT skip-on-empty.
func keepIf(cands []candidate, pred func(candidate) bool) []candidate {
	out := make([]candidate, 0, len(cands))
	for _, c := range cands {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}
