package casing

// Word is a maximal run of [A-Za-z0-9_] inside a string, with byte offsets.
type Word struct {
	Text       string
	Start, End int
}

// Words splits s into words.
func Words(s string) []Word {
	var out []Word
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && isWordByte(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, Word{Text: s[start:i], Start: start, End: i})
			start = -1
		}
	}
	return out
}

func isWordByte(b byte) bool {
	return b == '_' || isAlpha(b) || (b >= '0' && b <= '9')
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlphaWord(w string) bool {
	if w == "" {
		return false
	}
	for i := 0; i < len(w); i++ {
		if !isAlpha(w[i]) {
			return false
		}
	}
	return true
}

func isDigits(w string) bool {
	if w == "" {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < '0' || w[i] > '9' {
			return false
		}
	}
	return true
}

// isAcronym reports an all-caps word of two or more letters.
func isAcronym(w string) bool {
	if len(w) < 2 {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return false
		}
	}
	return true
}
