package lexer

import (
	"phpsniff/internal/token"
)

// scanNumber reads 123, 1_000, 0x1F, 0b101, 0o17, 017, 1.5, .5, 1e3 and 1.5E-3.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Advance(2)
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			return lx.emit(kind, start)
		case 'b', 'B':
			lx.cursor.Advance(2)
			for b := lx.cursor.Peek(); b == '0' || b == '1' || b == '_'; b = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			return lx.emit(kind, start)
		case 'o', 'O':
			lx.cursor.Advance(2)
			for b := lx.cursor.Peek(); (b >= '0' && b <= '7') || b == '_'; b = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			return lx.emit(kind, start)
		}
	}

	lx.digits()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.digits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		n := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if isDec(lx.cursor.PeekAt(n)) {
			kind = token.FloatLit
			lx.cursor.Advance(n)
			lx.digits()
		}
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) digits() {
	for isDec(lx.cursor.Peek()) || (lx.cursor.Peek() == '_' && isDec(lx.cursor.PeekAt(1))) {
		lx.cursor.Bump()
	}
}
