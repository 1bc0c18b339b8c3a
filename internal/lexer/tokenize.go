package lexer

import (
	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

// Tokenize lexes the whole file into a Stream and reports how many lex errors occurred.
// The errors themselves go to opts.Reporter.
func Tokenize(file *source.File, opts Options) (*token.Stream, int) {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		t := lx.Next()
		t.Line = file.LineCol(t.Span.Start).Line
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return token.NewStream(file, toks), lx.Errors()
}
