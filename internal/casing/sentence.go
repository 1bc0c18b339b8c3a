package casing

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var rePlainSentence = regexp.MustCompile(`^[A-Za-z0-9\s']+$`)

// IsPlainSentence reports strings made only of letters, digits, whitespace
// and apostrophes; only those are converted to sentence case.
func IsPlainSentence(s string) bool {
	return len(s) >= 2 && rePlainSentence.MatchString(s)
}

// SentenceResult describes a sentence-case check.
type SentenceResult struct {
	Capitalized []string
	Fixed       string
}

var reSpaces = regexp.MustCompile(`\s+`)

// SentenceCase finds words after the first that start upper-case without
// being protected, and builds the sentence-case form of s. Words are the
// runs between whitespace; the whitespace itself is copied unchanged.
func (c *Checker) SentenceCase(s string) SentenceResult {
	bounds := splitSpaces(s)
	parts := make([]string, len(bounds))
	for i, b := range bounds {
		parts[i] = s[b[0]:b[1]]
	}
	protected := c.protect(parts)

	var res SentenceResult
	for i := 1; i < len(parts); i++ {
		p := parts[i]
		if p[0] >= 'A' && p[0] <= 'Z' && !protected[i] {
			res.Capitalized = append(res.Capitalized, p)
		}
	}

	title := cases.Title(language.English, cases.NoLower)
	lower := cases.Lower(language.English)
	var b strings.Builder
	prev := 0
	for i, p := range parts {
		b.WriteString(s[prev:bounds[i][0]])
		switch {
		case protected[i]:
			b.WriteString(p)
		case i == 0:
			b.WriteString(title.String(p))
		default:
			b.WriteString(lower.String(p))
		}
		prev = bounds[i][1]
	}
	b.WriteString(s[prev:])
	res.Fixed = b.String()
	return res
}

// splitSpaces returns the byte ranges of the non-whitespace runs of s.
func splitSpaces(s string) [][2]int {
	var out [][2]int
	prev := 0
	for _, sp := range reSpaces.FindAllStringIndex(s, -1) {
		if sp[0] > prev {
			out = append(out, [2]int{prev, sp[0]})
		}
		prev = sp[1]
	}
	if prev < len(s) {
		out = append(out, [2]int{prev, len(s)})
	}
	return out
}

// protect marks words kept as written: list entries and cautious words in
// their canonical casing, words of a phrase written exactly, and acronyms.
func (c *Checker) protect(parts []string) []bool {
	out := make([]bool, len(parts))
	for i := 0; i < len(parts); i++ {
		for _, p := range c.list.phrases {
			n := len(p.canon)
			if i+n > len(parts) || !equalWords(parts[i:i+n], p.canon) {
				continue
			}
			for k := i; k < i+n; k++ {
				out[k] = true
			}
			break
		}
	}
	for i, p := range parts {
		if out[i] {
			continue
		}
		bare := strings.ReplaceAll(p, "'", "")
		if c.list.Contains(bare) || c.cautious[strings.ToLower(bare)] == bare || isAcronym(bare) {
			out[i] = true
		}
	}
	return out
}

func equalWords(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
