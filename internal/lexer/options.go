package lexer

import (
	"phpsniff/internal/diag"
	"phpsniff/internal/source"
)

type Options struct {
	Reporter diag.Reporter // may be nil; errors are then dropped but lexing continues
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	lx.errors++
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).
			WithToken(diag.NoToken, lx.file.LineCol(sp.Start).Line).
			Emit()
	}
}
