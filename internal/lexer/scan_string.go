package lexer

import (
	"bytes"

	"phpsniff/internal/diag"
	"phpsniff/internal/token"
)

// scanSingleQuoted reads '...'; only \' and \\ are escapes.
func (lx *Lexer) scanSingleQuoted() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '\\':
			lx.cursor.Bump()
		case '\'':
			return lx.emit(token.ConstString, start)
		}
	}
	tok := lx.emit(token.ConstString, start)
	lx.report(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanDoubleQuoted reads "..." or `...`. A double-quoted string without
// $name or {$ is a ConstString; anything else is an InterpString.
func (lx *Lexer) scanDoubleQuoted(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	interp := quote == '`'
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch {
		case b == '\\':
			lx.cursor.Bump()
		case b == quote:
			kind := token.ConstString
			if interp {
				kind = token.InterpString
			}
			return lx.emit(kind, start)
		case b == '$' && (isIdentStartByte(lx.cursor.Peek()) || lx.cursor.Peek() == '{'):
			interp = true
		case b == '{' && lx.cursor.Peek() == '$':
			interp = true
		}
	}
	tok := lx.emit(token.InterpString, start)
	lx.report(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanHeredoc reads <<<LABEL, <<<"LABEL" and <<<'LABEL' documents through the
// closing label. The closing label may be indented.
// ok is false when the bytes are not a heredoc opener; nothing is consumed then.
func (lx *Lexer) scanHeredoc() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Advance(3)
	for b := lx.cursor.Peek(); b == ' ' || b == '\t'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	quote := lx.cursor.Peek()
	if quote == '"' || quote == '\'' {
		lx.cursor.Bump()
	} else {
		quote = 0
	}
	labelStart := lx.cursor.Off
	if !isIdentStartByte(lx.cursor.Peek()) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	label := lx.file.Content[labelStart:lx.cursor.Off]
	if quote != 0 && !lx.cursor.Eat(quote) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	if !lx.cursor.Eat('\n') {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}

	for !lx.cursor.EOF() {
		line := lx.cursor.Rest()
		if nl := bytes.IndexByte(line, '\n'); nl >= 0 {
			line = line[:nl]
		}
		trimmed := bytes.TrimLeft(line, " \t")
		if bytes.HasPrefix(trimmed, label) &&
			(len(trimmed) == len(label) || !isIdentContinueByte(trimmed[len(label)])) {
			indent := len(line) - len(trimmed)
			lx.cursor.Advance(uint32(indent + len(label))) // #nosec G115 -- bounded by line length
			return lx.emit(token.Heredoc, start), true
		}
		lx.cursor.Advance(uint32(len(line))) // #nosec G115 -- bounded by file size
		lx.cursor.Eat('\n')
	}

	tok := lx.emit(token.Heredoc, start)
	lx.report(diag.LexUnterminatedHeredoc, tok.Span, "unterminated heredoc")
	return tok, true
}
