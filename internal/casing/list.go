package casing

import (
	"sort"
	"strings"
)

// List maps lower-cased words and phrases to their canonical casing.
// It is built once and read-only afterwards.
type List struct {
	words   map[string]string
	phrases []phrase // longest first
}

type phrase struct {
	lower []string
	canon []string
}

// NewList builds a list from groups of entries. Later groups override the
// casing of earlier ones, so project words win over core words.
func NewList(groups ...[]string) *List {
	l := &List{words: make(map[string]string)}
	byKey := make(map[string]int)
	for _, group := range groups {
		for _, entry := range group {
			canon := strings.Fields(entry)
			switch len(canon) {
			case 0:
				continue
			case 1:
				l.words[strings.ToLower(canon[0])] = canon[0]
			default:
				key := strings.ToLower(strings.Join(canon, " "))
				p := phrase{lower: strings.Fields(key), canon: canon}
				if i, ok := byKey[key]; ok {
					l.phrases[i] = p
					continue
				}
				byKey[key] = len(l.phrases)
				l.phrases = append(l.phrases, p)
			}
		}
	}
	sort.SliceStable(l.phrases, func(i, j int) bool {
		return len(l.phrases[i].lower) > len(l.phrases[j].lower)
	})
	return l
}

// Len returns the number of single words and phrases.
func (l *List) Len() int { return len(l.words) + len(l.phrases) }

// Lookup returns the canonical casing of a single word.
func (l *List) Lookup(word string) (string, bool) {
	canon, ok := l.words[strings.ToLower(word)]
	return canon, ok
}

// Contains reports whether word is in the list with exactly this casing.
func (l *List) Contains(word string) bool {
	canon, ok := l.Lookup(word)
	return ok && canon == word
}

// matchPhrase tries every phrase, longest first, at words[i]. Words must be
// separated by whitespace only. It returns the canonical words and how many
// words matched.
func (l *List) matchPhrase(s string, words []Word, i int) ([]string, int) {
	for _, p := range l.phrases {
		n := len(p.lower)
		if i+n > len(words) {
			continue
		}
		ok := true
		for k := 0; k < n && ok; k++ {
			w := words[i+k]
			ok = strings.EqualFold(w.Text, p.lower[k]) &&
				(k == 0 || strings.TrimSpace(s[words[i+k-1].End:w.Start]) == "")
		}
		if ok {
			return p.canon, n
		}
	}
	return nil, 0
}
