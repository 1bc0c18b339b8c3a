package lexer

import (
	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

type mode uint8

const (
	modeHTML mode = iota
	modePHP
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	mode   mode
	look   *token.Token
	last   token.Kind // last non-whitespace, non-comment kind
	errors int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		mode:   modeHTML,
		last:   token.Invalid,
	}
}

// Errors returns how many lex errors have been reported so far.
func (lx *Lexer) Errors() int { return lx.errors }

// Next returns the next token, whitespace and comments included.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	var tok token.Token
	if lx.mode == modeHTML {
		tok = lx.scanInline()
	} else {
		tok = lx.scanCode()
	}
	if !tok.Kind.IsEmpty() {
		lx.last = tok.Kind
	}
	return tok
}

func (lx *Lexer) scanCode() token.Token {
	ch := lx.cursor.Peek()
	b1 := lx.cursor.PeekAt(1)

	switch {
	case isSpace(ch):
		return lx.scanWhitespace()

	case ch == '#' && b1 == '[':
		return lx.scanOperatorOrPunct()

	case ch == '#', ch == '/' && b1 == '/':
		return lx.scanLineComment()

	case ch == '/' && b1 == '*':
		return lx.scanBlockComment()

	case ch == '?' && b1 == '>':
		return lx.scanCloseTag()

	case ch == '$' && isIdentStartByte(b1):
		return lx.scanVariable()

	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()

	case isDec(ch), ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()

	case ch == '\'':
		return lx.scanSingleQuoted()

	case ch == '"':
		return lx.scanDoubleQuoted('"')

	case ch == '`':
		return lx.scanDoubleQuoted('`')

	case ch == '<' && lx.cursor.HasPrefix("<<<"):
		if tok, ok := lx.scanHeredoc(); ok {
			return tok
		}
		return lx.scanOperatorOrPunct()

	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
