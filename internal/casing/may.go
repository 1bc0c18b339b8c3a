package casing

import "strings"

// MayVerdict is the outcome of the "may" policy.
type MayVerdict uint8

const (
	// MayAmbiguous: no evidence either way, warn without a fix.
	MayAmbiguous MayVerdict = iota
	// MayMonth: the word names the month and is corrected to "May".
	MayMonth
	// MayModal: the word is the modal verb and stays as written.
	MayModal
)

func (v MayVerdict) String() string {
	switch v {
	case MayMonth:
		return "month"
	case MayModal:
		return "modal"
	}
	return "ambiguous"
}

var monthBefore = setOf(
	"in", "on", "of", "since", "until", "by", "during", "early", "late", "mid",
	"next", "last", "from", "to", "before", "after",
)

var modalBefore = setOf(
	"you", "it", "we", "they", "he", "she", "i", "this", "that", "which", "who",
	"users", "user", "there",
)

var modalAfter = setOf(
	"not", "be", "have", "need", "want", "take", "cause", "require", "use", "see",
	"contain", "include", "change", "affect", "vary", "apply", "appear", "fail",
	"return", "become", "get", "also", "only", "still", "continue", "receive",
	"show", "work", "occur", "lead", "differ", "result", "help", "make", "find",
	"lose", "experience", "notice", "break", "stop", "expire", "add", "remove",
)

// ClassifyMay decides what "may" means from its neighbours. prev and next are
// the adjacent words, empty at the string edges. Month evidence is checked
// first so that "until may 5" is a month even though "5" is not a verb.
func ClassifyMay(prev, next string) MayVerdict {
	p, n := strings.ToLower(prev), strings.ToLower(next)
	if monthBefore[p] || isDigits(n) {
		return MayMonth
	}
	if modalBefore[p] || modalAfter[n] {
		return MayModal
	}
	return MayAmbiguous
}

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
