package lexer

import (
	"strings"

	"phpsniff/internal/token"
)

func (lx *Lexer) scanVariable() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Variable, start)
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)

	// member names and declared method names may reuse keywords
	switch lx.last {
	case token.Arrow, token.NullsafeArrow, token.DoubleColon, token.KwFunction, token.KwConst:
		return tok
	}

	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
		return tok
	}
	if strings.EqualFold(tok.Text, "match") && lx.nextNonSpaceByte() == '(' {
		tok.Kind = token.KwMatch
	}
	return tok
}

// nextNonSpaceByte peeks past whitespace without consuming anything.
func (lx *Lexer) nextNonSpaceByte() byte {
	for n := uint32(0); ; n++ {
		b := lx.cursor.PeekAt(n)
		if b == 0 || !isSpace(b) {
			return b
		}
	}
}
