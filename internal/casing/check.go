package casing

import (
	"fmt"
	"strings"
)

// Finding is one word whose casing differs from the list.
type Finding struct {
	Word       string
	Want       string
	Start, End int
}

// Analysis is the result of checking one string.
// Fixes are safe corrections; Warnings are cautious words left for review.
type Analysis struct {
	Skip     string
	Fixes    []Finding
	Warnings []Finding
}

// Checker finds reserved-word casing problems.
type Checker struct {
	list     *List
	cautious map[string]string
}

// NewChecker builds a checker over list. Cautious words take precedence over
// list entries with the same spelling.
func NewChecker(list *List, cautious []string) *Checker {
	c := &Checker{list: list, cautious: make(map[string]string, len(cautious))}
	for _, w := range cautious {
		c.cautious[strings.ToLower(w)] = w
	}
	return c
}

// List returns the exception list the checker uses.
func (c *Checker) List() *List { return c.list }

// IsCautious reports whether word is a cautious word in any casing.
func (c *Checker) IsCautious(word string) bool {
	_, ok := c.cautious[strings.ToLower(word)]
	return ok
}

// Check analyses the unquoted contents of a string literal.
func (c *Checker) Check(s string) Analysis {
	if reason := SkipReason(s); reason != "" {
		return Analysis{Skip: reason}
	}

	var a Analysis
	words := Words(s)
	for i := 0; i < len(words); i++ {
		w := words[i]
		if !isAlphaWord(w.Text) || c.skipWord(s, w) {
			continue
		}

		if canon, n := c.list.matchPhrase(s, words, i); n > 1 {
			for k := 0; k < n; k++ {
				if pw := words[i+k]; pw.Text != canon[k] {
					a.Fixes = append(a.Fixes, Finding{Word: pw.Text, Want: canon[k], Start: pw.Start, End: pw.End})
				}
			}
			i += n - 1
			continue
		}

		if want, ok := c.cautious[strings.ToLower(w.Text)]; ok {
			if w.Text == want {
				continue
			}
			f := Finding{Word: w.Text, Want: want, Start: w.Start, End: w.End}
			if want != "May" {
				a.Warnings = append(a.Warnings, f)
				continue
			}
			switch ClassifyMay(neighbour(words, i-1), neighbour(words, i+1)) {
			case MayMonth:
				a.Fixes = append(a.Fixes, f)
			case MayAmbiguous:
				a.Warnings = append(a.Warnings, f)
			}
			continue
		}

		if len(w.Text) < 2 {
			continue
		}
		if want, ok := c.list.Lookup(w.Text); ok && want != w.Text {
			a.Fixes = append(a.Fixes, Finding{Word: w.Text, Want: want, Start: w.Start, End: w.End})
		}
	}
	return a
}

// skipWord drops URL protocols, file extensions and words written as HTML tags.
func (c *Checker) skipWord(s string, w Word) bool {
	if strings.HasPrefix(s[w.End:], "://") && (strings.EqualFold(w.Text, "http") || strings.EqualFold(w.Text, "https")) {
		return true
	}
	if w.Start > 0 && s[w.Start-1] == '.' {
		return true
	}
	if w.Start > 0 && w.End < len(s) && s[w.End] == '>' && (s[w.Start-1] == '<' || (w.Start > 1 && s[w.Start-2:w.Start] == "</")) {
		return true
	}
	return false
}

func neighbour(words []Word, i int) string {
	if i < 0 || i >= len(words) {
		return ""
	}
	return words[i].Text
}

// Apply rewrites the findings' byte ranges in s. Findings must not overlap.
func Apply(s string, findings []Finding) string {
	if len(findings) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, f := range findings {
		b.WriteString(s[last:f.Start])
		b.WriteString(f.Want)
		last = f.End
	}
	b.WriteString(s[last:])
	return b.String()
}

// Describe renders findings as `"x" <verb> "X", ...`, one entry per distinct word.
func Describe(findings []Finding, verb string) string {
	seen := make(map[string]bool, len(findings))
	parts := make([]string, 0, len(findings))
	for _, f := range findings {
		if seen[f.Word] {
			continue
		}
		seen[f.Word] = true
		parts = append(parts, fmt.Sprintf("%q %s %q", f.Word, verb, f.Want))
	}
	return strings.Join(parts, ", ")
}
