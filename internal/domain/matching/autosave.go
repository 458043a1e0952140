package matching

import "github.com/narvinIR/PriceOrders/internal/domain/repositories"

// autoSaveEligibleTypes is the closed set of match kinds strong enough
// to be persisted without human verification (spec §4.12).
var autoSaveEligibleTypes = map[repositories.MatchType]bool{
	repositories.MatchExactSKU:  true,
	repositories.MatchExactName: true,
	repositories.MatchCached:    true,
}

// shouldAutoSave reports whether result qualifies for unverified
// persistence under cfg. clientSKU is the raw (not normalized) SKU
// from the originating request.
func shouldAutoSave(cfg Config, clientSKU string, result *repositories.MatchResult) bool {
	if !autoSaveEligibleTypes[result.MatchType] {
		return false
	}
	if result.Confidence < cfg.ConfidenceExactName {
		return false
	}
	if result.ProductID == nil {
		return false
	}
	if clientSKU == "" {
		return false
	}
	return true
}
