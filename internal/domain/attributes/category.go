package attributes

import "strings"

// hasSewerMarker is used by several of the ordered category rules below.
func hasSewerMarker(lower string) bool {
	return containsAny(lower, "кан", "канализац", "сантех")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// DetectCategory applies the ordered rule table from spec §4.2.
func DetectCategory(s string) Category {
	lower := strings.ToLower(s)
	isSewer := hasSewerMarker(lower)

	switch {
	case containsAny(lower, "pert", "pe-rt", "термостойк"):
		return CategoryPert
	case containsAny(lower, "пнд", "hdpe", "компресс", "цанг"):
		return CategoryPND
	case containsAny(lower, "малошум", "prestige"):
		return CategoryPrestige
	case isSewer && strings.Contains(lower, "бел"):
		return CategoryPrestige
	case containsAny(lower, "нар кан", "нар.кан", "наружн", "рыж"):
		return CategoryOutdoor
	case strings.Contains(lower, "сер") || isSewer:
		return CategorySewer
	case containsAny(lower, "ппр", "ppr", "водопровод", "отоплен", " пп ", "вн/нр"):
		return CategoryPPR
	case strings.Contains(lower, "бел") && !isSewer:
		return CategoryPPR
	default:
		return CategoryNone
	}
}
