package lexer

import (
	"bytes"

	"phpsniff/internal/diag"
	"phpsniff/internal/token"
)

func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Whitespace, start)
}

// scanLineComment reads // or # comments up to, not including, the newline.
// A ?> ends the comment too.
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		if b == '?' && lx.cursor.PeekAt(1) == '>' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.Comment, start)
}

// scanBlockComment reads /* */ and /** */; "/**/" is a plain comment.
func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	kind := token.Comment
	if lx.cursor.HasPrefix("/**") && isSpace(lx.cursor.PeekAt(3)) {
		kind = token.DocComment
	}
	lx.cursor.Advance(2)

	end := bytes.Index(lx.cursor.Rest(), []byte("*/"))
	if end < 0 {
		lx.cursor.Advance(uint32(len(lx.cursor.Rest()))) // #nosec G115 -- bounded by file size
		tok := lx.emit(kind, start)
		lx.report(diag.LexUnterminatedComment, tok.Span, "unterminated comment")
		return tok
	}
	lx.cursor.Advance(uint32(end) + 2) // #nosec G115 -- bounded by file size
	return lx.emit(kind, start)
}
