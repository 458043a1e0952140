package attributes

import (
	"regexp"
	"strconv"
)

// threadSizeRe matches a combined metric x inch thread size. The inch
// alternation is ordered longest-first so "1 1/4" isn't masked by a
// bare "1".
var threadSizeRe = regexp.MustCompile(
	`(\d+)\s*(?:mm|мм)?\s*[x×*]\s*(` +
		`1\s*1/4|1\s*1/2|3/4|1/2|2|1` +
		`)\s*"`)

var inchSpaceRe = regexp.MustCompile(`\s+`)

// ExtractThreadSize finds a combined metric x inch thread size such as
// `32×1"` or `25мм×3/4"`.
func ExtractThreadSize(s string) *ThreadSize {
	m := threadSizeRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	mm, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &ThreadSize{MM: mm, Inch: normalizeInchLiteral(m[2])}
}

func normalizeInchLiteral(s string) string {
	return inchSpaceRe.ReplaceAllString(s, " ")
}
