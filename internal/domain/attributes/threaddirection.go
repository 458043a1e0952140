package attributes

import (
	"regexp"
	"strings"
)

var (
	innerThreadRe = regexp.MustCompile(`в/р|вн\.\s*рез|вн\s+рез|внутр|\(вр\)|\bвр\)`)
	outerThreadRe = regexp.MustCompile(`н/р|нар\.\s*рез|нар\s+рез|наруж|\(нр\)|\bнр\)`)
)

// ExtractThreadDirection classifies a string's thread as inner/outer
// from a closed set of abbreviation markers.
func ExtractThreadDirection(s string) ThreadDirection {
	lower := strings.ToLower(s)
	if innerThreadRe.MatchString(lower) {
		return ThreadInner
	}
	if outerThreadRe.MatchString(lower) {
		return ThreadOuter
	}
	if strings.Contains(lower, " вр ") {
		return ThreadInner
	}
	if strings.Contains(lower, " нр ") {
		return ThreadOuter
	}
	return ThreadNone
}
