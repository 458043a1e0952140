package attributes

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	clampMMRe   = regexp.MustCompile(`хомут\s+(?:в\s+комплекте\s+)?(\d+)\b`)
	clampRangeRe = regexp.MustCompile(`\((\d+)-(\d+)\)`)
)

// ExtractClampMM reads the target millimeter size out of a clamp
// query. Only meaningful when "хомут" is present; out-of-range sizes
// are rejected.
func ExtractClampMM(s string) *int {
	lower := strings.ToLower(s)
	if !strings.Contains(lower, "хомут") {
		return nil
	}
	m := clampMMRe.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}
	mm, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	if mm < 15 || mm > 200 {
		return nil
	}
	return &mm
}

// ClampFitsMM checks whether a clamp product's embedded (a-b) fit
// range covers target.
func ClampFitsMM(productName string, target int) bool {
	m := clampRangeRe.FindStringSubmatch(productName)
	if m == nil {
		return false
	}
	lo, errLo := strconv.Atoi(m[1])
	hi, errHi := strconv.Atoi(m[2])
	if errLo != nil || errHi != nil {
		return false
	}
	return lo <= target && target <= hi
}
