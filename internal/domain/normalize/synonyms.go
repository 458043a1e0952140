package normalize

import (
	"regexp"
	"sort"
)

// synonymEntry is one replacement rule: any of the alternatives on the
// left is rewritten to canonical on the right.
type synonymEntry struct {
	alternatives []string
	canonical    string
}

// materialSynonyms canonicalizes material abbreviations (spec §4.1,
// "Synonym expansion table").
var materialSynonyms = []synonymEntry{
	{[]string{"пп", "pp", "ппр", "ppr"}, "полипропилен"},
	{[]string{"пэ", "pe", "pert", "pe-rt", "pe rt"}, "полиэтилен"},
	{[]string{"пвх", "pvc"}, "поливинилхлорид"},
}

// productSynonyms canonicalizes product/process jargon (spec §4.1).
var productSynonyms = []synonymEntry{
	{[]string{"колено", "угол", "угольник", "elbow"}, "отвод"},
	{[]string{"coupling"}, "муфта"},
	{[]string{"cap", "plug"}, "заглушка"},
	{[]string{"tee"}, "тройник"},
	{[]string{"кан."}, "канализационн"},
	{[]string{"нар кан", "нар.кан"}, "наружная канализация"},
	{[]string{"малошум"}, "малошумная"},
	{[]string{"в/р", "вн.рез", "вн. рез", "вн рез"}, "внутренняя резьба"},
	{[]string{"н/р", "нар.рез", "нар. рез", "нар рез"}, "наружная резьба"},
}

var allSynonyms = func() []synonymEntry {
	out := make([]synonymEntry, 0, len(materialSynonyms)+len(productSynonyms))
	out = append(out, materialSynonyms...)
	out = append(out, productSynonyms...)
	return out
}()

// wordBoundaryPattern escapes a literal alternative and wraps it with
// a non-word lookalike boundary built from capture groups, since Go's
// RE2 \b is ASCII-only and these alternatives contain Cyrillic.
func wordBoundaryPattern(alt string) *regexp.Regexp {
	escaped := regexp.QuoteMeta(alt)
	return regexp.MustCompile(`(^|[^a-zA-Zа-яА-ЯёЁ0-9])(` + escaped + `)([^a-zA-Zа-яА-ЯёЁ0-9]|$)`)
}

// expandSynonyms applies the synonym table to s, longest alternative
// first so that e.g. "нар.кан" is rewritten before a bare "кан." rule
// could mask part of it.
func expandSynonyms(s string) string {
	type rule struct {
		re   *regexp.Regexp
		repl string
	}
	rules := make([]rule, 0)
	for _, entry := range allSynonyms {
		for _, alt := range entry.alternatives {
			rules = append(rules, rule{re: wordBoundaryPattern(alt), repl: entry.canonical})
		}
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].re.String()) > len(rules[j].re.String())
	})

	for _, r := range rules {
		for {
			next := r.re.ReplaceAllString(s, "${1}"+r.repl+"${3}")
			if next == s {
				break
			}
			s = next
		}
	}
	return s
}

// clampMMToInch is the fixed mm->inch table used to translate
// "хомут N" (N in mm) into "хомут в комплекте X\"" (spec §4.1 step 10).
// Unknown sizes pass through numerically untranslated.
var clampMMToInch = map[int]string{
	15: `1/2`, 20: `3/4`, 25: `1`, 32: `1 1/4`, 40: `1 1/2`, 50: `2`,
	63: `2 1/2`, 75: `2 1/2`, 90: `3`, 110: `4`, 125: `4 1/2`, 140: `5`,
	160: `6`, 166: `6`, 100: `3 1/2`, 200: `8`, 180: `7`,
}

func expandClampPhrase(s string) string {
	re := regexp.MustCompile(`хомут\s+(\d+)\b`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		sub := re.FindStringSubmatch(match)
		mm := sub[1]
		inch, ok := clampMMToInch[atoiSafe(mm)]
		if !ok {
			return match
		}
		return `хомут в комплекте ` + inch + `"`
	})
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// stripColorWords drops the bare color tokens "серый"/"белый" (spec
// §4.1 step 11); colors are otherwise carried structurally via the
// attribute extractor, not the fuzzy-matched name.
func stripColorWords(s string) string {
	s = regexp.MustCompile(`\bсерый\b`).ReplaceAllString(s, " ")
	s = regexp.MustCompile(`\bбелый\b`).ReplaceAllString(s, " ")
	return s
}

func dropJakkoTokens(s string) string {
	s = regexp.MustCompile(`\bjk\b`).ReplaceAllString(s, " ")
	s = regexp.MustCompile(`\bjakko\b`).ReplaceAllString(s, " ")
	return s
}

func mapMaloshumnToPrestige(s string) string {
	return regexp.MustCompile(`малошумн\p{L}*`).ReplaceAllString(s, "prestige")
}

func normalizePNSeries(s string) string {
	return regexp.MustCompile(`pn[ -]?(\d+)`).ReplaceAllString(s, "pn$1")
}
