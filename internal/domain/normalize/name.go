package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	packCountRe      = regexp.MustCompile(`\(?уп\.?\s*\d+\s*шт\.?\)?`)
	unitCountRe      = regexp.MustCompile(`\b\d+\s*шт(?:[^\p{L}\p{N}]|$)`)
	wallThicknessRe  = regexp.MustCompile(`\(\d+\.\d+\)`)
	doubleSocketRe   = regexp.MustCompile(`\(двухраструбная\)`)
	repairVariantRe  = regexp.MustCompile(`\(ремонтная\)`)
	perekhodRe       = regexp.MustCompile(`(^|[^\p{L}\p{N}])переход([^\p{L}\p{N}]|$)`)
	kompensatorKanRe = regexp.MustCompile(`компенсатор\s+кан([^\p{L}\p{N}]|$)`)
	pairSeparatorRe  = regexp.MustCompile(`(\d)\s*[-xхXХ*×]\s*(\d)`)
	punctuationRe    = regexp.MustCompile(`[^\p{L}\p{N}\s×]`)
	whitespaceRunRe  = regexp.MustCompile(`\s+`)
)

// Name runs the full normalize_name pipeline from spec §4.1. It is
// pure and total, and idempotent: Name(Name(x)) == Name(x).
func Name(s string) string {
	if s == "" {
		return ""
	}

	// 1. lowercase
	result := strings.ToLower(s)

	// 2. Unicode NFKC
	result = norm.NFKC.String(result)

	// 3. ё -> е
	result = strings.ReplaceAll(result, "ё", "е")

	// 4. expand synonyms, longest key first
	result = expandSynonyms(result)

	// 5. remove package counts (уп. N шт.) and (N шт), keep metric runs (N м)
	result = packCountRe.ReplaceAllString(result, " ")
	result = unitCountRe.ReplaceAllString(result, " ")

	// 6. strip wall-thickness parentheticals (F.F)
	result = wallThicknessRe.ReplaceAllString(result, " ")

	// 7. strip (двухраструбная) / (ремонтная)
	result = doubleSocketRe.ReplaceAllString(result, " ")
	result = repairVariantRe.ReplaceAllString(result, " ")

	// 8. переход -> переходник
	result = perekhodRe.ReplaceAllString(result, "${1}переходник${2}")

	// 9. компенсатор кан -> патрубок компенсационный
	result = kompensatorKanRe.ReplaceAllString(result, "патрубок компенсационный${1}")

	// 10. хомут N (mm) -> хомут в комплекте X"
	result = expandClampPhrase(result)

	// 11. drop color words серый/белый
	result = stripColorWords(result)

	// 12. unify pair separators between digits to ×
	result = pairSeparatorRe.ReplaceAllString(result, "${1}×${2}")

	// 13. delete tokens jk, jakko
	result = dropJakkoTokens(result)

	// 14. малошумн* -> prestige
	result = mapMaloshumnToPrestige(result)

	// 15. normalize pn[ -]?N to pnN
	result = normalizePNSeries(result)

	// 16. collapse punctuation to spaces (× is excluded from the
	// punctuation class so the pair separator from step 12 survives)
	result = punctuationRe.ReplaceAllString(result, " ")

	// 17. collapse whitespace runs
	result = strings.TrimSpace(whitespaceRunRe.ReplaceAllString(result, " "))

	return result
}
