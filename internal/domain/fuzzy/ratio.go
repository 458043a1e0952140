package fuzzy

import (
	"sort"
	"strings"
)

// Ratio computes a Levenshtein-derived similarity score in [0,100]
// (spec glossary: "Fuzzy ratio"). Substitutions cost twice an
// insertion/deletion, which is what makes this track the classic
// fuzzywuzzy/python-Levenshtein ratio() rather than plain edit
// distance: two strings differing by one substituted character score
// lower than two strings differing by one inserted character
// ("abc"/"abd" = 66, "abc"/"abcd" = 85).
func Ratio(a, b string) int {
	r1 := []rune(a)
	r2 := []rune(b)
	total := len(r1) + len(r2)
	if total == 0 {
		return 100
	}
	dist := weightedDistance(r1, r2)
	score := 100 * (total - dist) / total
	if score < 0 {
		return 0
	}
	return score
}

func weightedDistance(r1, r2 []rune) int {
	len1, len2 := len(r1), len(r2)
	if len1 == 0 {
		return len2
	}
	if len2 == 0 {
		return len1
	}

	prev := make([]int, len2+1)
	curr := make([]int, len2+1)
	for j := 0; j <= len2; j++ {
		prev[j] = j
	}

	for i := 1; i <= len1; i++ {
		curr[0] = i
		for j := 1; j <= len2; j++ {
			subCost := 2
			if r1[i-1] == r2[j-1] {
				subCost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+subCost)
		}
		prev, curr = curr, prev
	}

	return prev[len2]
}

func tokenize(s string) []string {
	return strings.Fields(s)
}

// TokenSortRatio tokenizes both strings, sorts the tokens
// alphabetically, rejoins, and scores the result with Ratio. This
// neutralizes word-order differences.
func TokenSortRatio(a, b string) int {
	return Ratio(sortedJoin(a), sortedJoin(b))
}

func sortedJoin(s string) string {
	tokens := tokenize(s)
	sorted := append([]string(nil), tokens...)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

// TokenSetRatio tokenizes both strings into sets, then compares the
// shared-token core against each string's full token set, taking the
// best of the three pairings. This tolerates one string being a
// superset of the other's vocabulary (brand suffixes, SKU fragments).
func TokenSetRatio(a, b string) int {
	tokensA := uniqueSorted(tokenize(a))
	tokensB := uniqueSorted(tokenize(b))

	intersection := intersect(tokensA, tokensB)
	onlyA := difference(tokensA, intersection)
	onlyB := difference(tokensB, intersection)

	sortedIntersection := strings.Join(intersection, " ")
	combinedA := strings.TrimSpace(strings.Join(append(append([]string{}, intersection...), onlyA...), " "))
	combinedB := strings.TrimSpace(strings.Join(append(append([]string{}, intersection...), onlyB...), " "))

	best := Ratio(sortedIntersection, combinedA)
	if r := Ratio(sortedIntersection, combinedB); r > best {
		best = r
	}
	if r := Ratio(combinedA, combinedB); r > best {
		best = r
	}
	return best
}

func uniqueSorted(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

func intersect(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, t := range b {
		set[t] = true
	}
	out := make([]string, 0)
	for _, t := range a {
		if set[t] {
			out = append(out, t)
		}
	}
	return out
}

func difference(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, t := range b {
		set[t] = true
	}
	out := make([]string, 0)
	for _, t := range a {
		if !set[t] {
			out = append(out, t)
		}
	}
	return out
}
