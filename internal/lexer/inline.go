package lexer

import (
	"bytes"

	"phpsniff/internal/token"
)

// scanInline handles HTML mode: text up to the next open tag, or the tag itself.
func (lx *Lexer) scanInline() token.Token {
	start := lx.cursor.Mark()
	if k, n, ok := lx.openTagAt(lx.cursor.Rest()); ok {
		lx.cursor.Advance(n)
		lx.mode = modePHP
		return lx.emit(k, start)
	}

	rest := lx.cursor.Rest()
	searchFrom := 0
	for {
		i := bytes.Index(rest[searchFrom:], []byte("<?"))
		if i < 0 {
			lx.cursor.Advance(uint32(len(rest))) // #nosec G115 -- bounded by file size
			break
		}
		at := searchFrom + i
		if _, _, ok := lx.openTagAt(rest[at:]); ok {
			lx.cursor.Advance(uint32(at)) // #nosec G115 -- bounded by file size
			break
		}
		searchFrom = at + 2
	}
	return lx.emit(token.InlineHTML, start)
}

// openTagAt recognises <?php, <?= and bare <? followed by whitespace.
// The open tag swallows one whitespace byte, as PHP does.
func (lx *Lexer) openTagAt(b []byte) (token.Kind, uint32, bool) {
	if !bytes.HasPrefix(b, []byte("<?")) {
		return 0, 0, false
	}
	if len(b) >= 5 && bytes.EqualFold(b[2:5], []byte("php")) {
		if len(b) == 5 {
			return token.OpenTag, 5, true
		}
		if isSpace(b[5]) {
			return token.OpenTag, 6, true
		}
		return 0, 0, false
	}
	if len(b) >= 3 && b[2] == '=' {
		return token.OpenTagEcho, 3, true
	}
	if len(b) >= 3 && isSpace(b[2]) {
		return token.OpenTag, 3, true
	}
	return 0, 0, false
}

// scanCloseTag emits ?> plus a single directly following newline.
func (lx *Lexer) scanCloseTag() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(2)
	lx.cursor.Eat('\n')
	lx.mode = modeHTML
	return lx.emit(token.CloseTag, start)
}
