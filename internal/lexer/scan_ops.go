package lexer

import (
	"fmt"

	"phpsniff/internal/diag"
	"phpsniff/internal/token"
)

// scanOperatorOrPunct matches greedily: 3-byte, then 2-byte, then 1-byte operators.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return lx.emit(k, start)
	}

	switch {
	case lx.try3('=', '=', '='):
		return emit(token.Identical)
	case lx.try3('!', '=', '='):
		return emit(token.NotIdentical)
	case lx.try3('<', '=', '>'):
		return emit(token.Spaceship)
	case lx.try3('?', '?', '='):
		return emit(token.CoalesceAssign)
	case lx.try3('?', '-', '>'):
		return emit(token.NullsafeArrow)
	case lx.try3('.', '.', '.'):
		return emit(token.Ellipsis)
	case lx.try3('*', '*', '='), lx.try3('<', '<', '='), lx.try3('>', '>', '='):
		return emit(token.AssignOp)
	}

	switch {
	case lx.try2('#', '['):
		return emit(token.AttributeOpen)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='), lx.try2('<', '>'):
		return emit(token.NotEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('&', '&'):
		return emit(token.AndAnd)
	case lx.try2('|', '|'):
		return emit(token.OrOr)
	case lx.try2('+', '+'):
		return emit(token.Inc)
	case lx.try2('-', '-'):
		return emit(token.Dec)
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	case lx.try2('=', '>'):
		return emit(token.DoubleArrow)
	case lx.try2(':', ':'):
		return emit(token.DoubleColon)
	case lx.try2('?', '?'):
		return emit(token.Coalesce)
	case lx.try2('<', '<'):
		return emit(token.Shl)
	case lx.try2('>', '>'):
		return emit(token.Shr)
	case lx.try2('*', '*'):
		return emit(token.Pow)
	case lx.try2('+', '='), lx.try2('-', '='), lx.try2('*', '='), lx.try2('/', '='),
		lx.try2('.', '='), lx.try2('%', '='), lx.try2('&', '='), lx.try2('|', '='),
		lx.try2('^', '='):
		return emit(token.AssignOp)
	}

	ch := lx.cursor.Bump()
	if k, ok := singleByteOps[ch]; ok {
		return emit(k)
	}

	tok := emit(token.Invalid)
	lx.report(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unexpected character %q", ch))
	return tok
}

var singleByteOps = map[byte]token.Kind{
	'(':  token.LParen,
	')':  token.RParen,
	'{':  token.LBrace,
	'}':  token.RBrace,
	'[':  token.LBracket,
	']':  token.RBracket,
	',':  token.Comma,
	';':  token.Semicolon,
	':':  token.Colon,
	'?':  token.Question,
	'\\': token.NsSeparator,
	'$':  token.Dollar,
	'@':  token.At,
	'=':  token.Assign,
	'<':  token.Lt,
	'>':  token.Gt,
	'+':  token.Plus,
	'-':  token.Minus,
	'*':  token.Star,
	'/':  token.Slash,
	'%':  token.Percent,
	'.':  token.Dot,
	'!':  token.Bang,
	'&':  token.Amp,
	'|':  token.Pipe,
	'^':  token.Caret,
	'~':  token.Tilde,
}
