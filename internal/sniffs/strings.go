package sniffs

import (
	"regexp"
	"strings"
)

// unquote splits a quoted literal into its quote byte and raw body.
// Escapes are left as written.
func unquote(lit string) (byte, string, bool) {
	if len(lit) < 2 {
		return 0, "", false
	}
	q := lit[0]
	if (q != '\'' && q != '"') || lit[len(lit)-1] != q {
		return 0, "", false
	}
	return q, lit[1 : len(lit)-1], true
}

var (
	rePlaceholder = regexp.MustCompile(`%(?:[1-9]\$)?[sdfu]|%%`)
	reMustache    = regexp.MustCompile(`\{\{.*?\}\}`)
)

// hasPlaceholder reports printf placeholders that are not glued to a word,
// so "%string%" does not count. Inside sprintf or printf, {{name}} counts too.
func hasPlaceholder(s string, inFormat bool) bool {
	for _, m := range rePlaceholder.FindAllStringIndex(s, -1) {
		if m[0] > 0 && isAlnum(s[m[0]-1]) {
			continue
		}
		if m[1] < len(s) && isAlnum(s[m[1]]) {
			continue
		}
		return true
	}
	return inFormat && reMustache.MatchString(s)
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func isFormatCall(name string) bool {
	name = strings.ToLower(name)
	return name == "sprintf" || name == "printf"
}

// phpSingleQuote renders s as a single-quoted PHP literal.
func phpSingleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, `'`, `\'`) + "'"
}
