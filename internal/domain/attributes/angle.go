package attributes

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	allowedAngles  = map[int]bool{15: true, 30: true, 45: true, 67: true, 87: true, 90: true}
	angleSuffixRe  = regexp.MustCompile(`\b(15|30|45|67|87|90)\s*(?:°|градус\w*)?`)
	anglePrefixRe  = regexp.MustCompile(`/\s*(15|30|45|67|87|90)\b`)
)

// ExtractAngle finds an angle literal from the closed catalog set.
func ExtractAngle(s string) *int {
	lower := strings.ToLower(s)
	if m := angleSuffixRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && allowedAngles[n] {
			return &n
		}
	}
	if m := anglePrefixRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && allowedAngles[n] {
			return &n
		}
	}
	return nil
}

// NormalizeAngle applies the catalog's 90->87 convention; every other
// allowed angle is unchanged.
func NormalizeAngle(a int) int {
	if a == 90 {
		return 87
	}
	return a
}
