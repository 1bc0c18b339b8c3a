package token

import (
	"strings"

	"phpsniff/internal/source"
)

// Stream is the indexed token sequence of one file.
// It is built once by the lexer and never mutated; fixes produce a new stream.
type Stream struct {
	File   *source.File
	Tokens []Token

	pair   []int32 // partner delimiter, -1 when unbalanced or not a delimiter
	parent []int32 // innermost enclosing opener, -1 at top level
}

// NewStream wraps toks and resolves paired delimiters.
func NewStream(file *source.File, toks []Token) *Stream {
	s := &Stream{
		File:   file,
		Tokens: toks,
		pair:   make([]int32, len(toks)),
		parent: make([]int32, len(toks)),
	}
	s.matchDelimiters()
	return s
}

func (s *Stream) matchDelimiters() {
	stack := make([]int32, 0, 32)
	top := func() int32 {
		if len(stack) == 0 {
			return -1
		}
		return stack[len(stack)-1]
	}
	for i := range s.Tokens {
		s.pair[i] = -1
		k := s.Tokens[i].Kind
		switch {
		case k.IsOpener():
			s.parent[i] = top()
			stack = append(stack, int32(i)) // #nosec G115 -- token count fits int32
		case k.IsCloser():
			// find the nearest opener this closer can pair with; openers skipped
			// on the way stay unbalanced
			at := -1
			for j := len(stack) - 1; j >= 0; j-- {
				if k.Closes(s.Tokens[stack[j]].Kind) {
					at = j
					break
				}
			}
			if at < 0 {
				s.parent[i] = top()
				continue
			}
			open := stack[at]
			stack = stack[:at]
			s.pair[i] = open
			s.pair[open] = int32(i) // #nosec G115 -- token count fits int32
			s.parent[i] = s.parent[open]
		default:
			s.parent[i] = top()
		}
	}
}

// Len returns the number of tokens including EOF.
func (s *Stream) Len() int { return len(s.Tokens) }

// At returns token i, or an EOF token when i is out of range.
func (s *Stream) At(i int) Token {
	if i < 0 || i >= len(s.Tokens) {
		return Token{Kind: EOF}
	}
	return s.Tokens[i]
}

// Kind returns the kind of token i, EOF when out of range.
func (s *Stream) Kind(i int) Kind { return s.At(i).Kind }

// Match returns the partner of the delimiter at i.
func (s *Stream) Match(i int) (int, bool) {
	if i < 0 || i >= len(s.pair) || s.pair[i] < 0 {
		return -1, false
	}
	return int(s.pair[i]), true
}

// Enclosing returns the innermost opener whose pair contains i.
// Openers without a partner still count: code after a stray "(" is inside it.
func (s *Stream) Enclosing(i int) (int, bool) {
	if i < 0 || i >= len(s.parent) || s.parent[i] < 0 {
		return -1, false
	}
	return int(s.parent[i]), true
}

// EnclosingKind walks outwards from i to the nearest opener of kind k.
func (s *Stream) EnclosingKind(i int, k Kind) (int, bool) {
	for open, ok := s.Enclosing(i); ok; open, ok = s.Enclosing(open) {
		if s.Tokens[open].Kind == k {
			return open, true
		}
	}
	return -1, false
}

// NextNonEmpty returns the first index after i that is not whitespace or a comment.
func (s *Stream) NextNonEmpty(i int) int {
	for j := i + 1; j < len(s.Tokens); j++ {
		if !s.Tokens[j].Kind.IsEmpty() {
			return j
		}
	}
	return -1
}

// PrevNonEmpty returns the last index before i that is not whitespace or a comment.
func (s *Stream) PrevNonEmpty(i int) int {
	for j := min(i, len(s.Tokens)) - 1; j >= 0; j-- {
		if !s.Tokens[j].Kind.IsEmpty() {
			return j
		}
	}
	return -1
}

// PrevNonWhitespace is PrevNonEmpty that stops at comments.
func (s *Stream) PrevNonWhitespace(i int) int {
	for j := min(i, len(s.Tokens)) - 1; j >= 0; j-- {
		if s.Tokens[j].Kind != Whitespace {
			return j
		}
	}
	return -1
}

// FindPrev searches from down to stop (both inclusive) for a token of one of kinds.
func (s *Stream) FindPrev(from, stop int, kinds ...Kind) int {
	for j := min(from, len(s.Tokens)-1); j >= max(stop, 0); j-- {
		if kindIn(s.Tokens[j].Kind, kinds) {
			return j
		}
	}
	return -1
}

// FindNext searches from up to stop (both inclusive) for a token of one of kinds.
func (s *Stream) FindNext(from, stop int, kinds ...Kind) int {
	for j := max(from, 0); j <= min(stop, len(s.Tokens)-1); j++ {
		if kindIn(s.Tokens[j].Kind, kinds) {
			return j
		}
	}
	return -1
}

// Text concatenates the raw text of tokens from..to inclusive.
func (s *Stream) Text(from, to int) string {
	var b strings.Builder
	for j := max(from, 0); j <= min(to, len(s.Tokens)-1); j++ {
		b.WriteString(s.Tokens[j].Text)
	}
	return b.String()
}

// CodeText is Text with whitespace and comments dropped.
func (s *Stream) CodeText(from, to int) string {
	var b strings.Builder
	for j := max(from, 0); j <= min(to, len(s.Tokens)-1); j++ {
		if !s.Tokens[j].Kind.IsEmpty() {
			b.WriteString(s.Tokens[j].Text)
		}
	}
	return b.String()
}

// Path returns the path of the underlying file.
func (s *Stream) Path() string {
	if s.File == nil {
		return ""
	}
	return s.File.Path
}

func kindIn(k Kind, kinds []Kind) bool {
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
