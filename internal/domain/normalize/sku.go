// Package normalize implements the two pure, total canonicalization
// functions the matcher runs every client/catalog string through:
// normalize_sku and normalize_name (spec §4.1).
package normalize

import "strings"

// SKU uppercases s, strips whitespace/-/.// /_ separators, and strips
// leading zeros (collapsing an all-zero SKU to "0"). Idempotent and
// total: SKU(SKU(x)) == SKU(x) for all x.
func SKU(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToUpper(s)

	var b strings.Builder
	b.Grow(len(result))
	for _, r := range result {
		switch r {
		case ' ', '\t', '\n', '\r', '-', '.', '/', '_':
			continue
		default:
			b.WriteRune(r)
		}
	}
	result = b.String()

	trimmed := strings.TrimLeft(result, "0")
	if trimmed == "" {
		if result == "" {
			return ""
		}
		return "0"
	}
	return trimmed
}
