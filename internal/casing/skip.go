package casing

import (
	"regexp"
	"strings"
)

var (
	reURLPrefix  = regexp.MustCompile(`(?i)^https?://`)
	reTimeFormat = regexp.MustCompile(`[HhGg]:[im]`)
	reConstant   = regexp.MustCompile(`^[A-Z_][A-Z0-9_]+$`)
	reSnakeCase  = regexp.MustCompile(`\w+_\w+`)
	reHTMLTag    = regexp.MustCompile(`(?i)</?[a-z][^>]*>`)
	reURLScheme  = regexp.MustCompile(`(?i)https?://`)
	reExtension  = regexp.MustCompile(`\.\w+\b`)
)

// SkipReason explains why a string is not checked, or is empty when it is.
func SkipReason(s string) string {
	switch {
	case strings.TrimSpace(s) == "":
		return "empty"
	case reURLPrefix.MatchString(s),
		strings.Contains(s, ".com"), strings.Contains(s, ".org"),
		strings.Contains(s, ".net"), strings.Contains(s, ".edu"):
		return "url"
	case IsDateFormat(s):
		return "date format"
	case reTimeFormat.MatchString(s):
		return "time format"
	case reConstant.MatchString(s):
		return "constant"
	case reSnakeCase.MatchString(s):
		return "snake case"
	case reHTMLTag.MatchString(s):
		return "html"
	case reURLScheme.MatchString(s):
		return "url"
	case reExtension.MatchString(s):
		return "file extension"
	}
	return ""
}

const dateLetters = "YyFmMdjlDwWNztsLco"

// IsDateFormat reports strings such as "F j, Y" or "Y-m-d": date format
// letters, each standing alone, joined by spaces or punctuation.
func IsDateFormat(s string) bool {
	letters := 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case strings.IndexByte(dateLetters, b) >= 0:
			if i > 0 && isAlpha(s[i-1]) {
				return false
			}
			letters++
		case strings.IndexByte(" \t\n,@-:./", b) >= 0:
		default:
			return false
		}
	}
	return letters > 0
}
