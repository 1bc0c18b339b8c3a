package fix

import (
	"bytes"

	"phpsniff/internal/diag"
	"phpsniff/internal/token"
)

type tokenPatch struct {
	before   []string
	replaced bool
	text     string
	after    []string
}

// render writes the stream with accepted edits applied. Tokens are visited in
// index order; each emits its before-inserts, its replacement or original
// text, then its after-inserts. Within a token, edits keep queue order and a
// later replace overrides an earlier one.
func render(stream *token.Stream, accepted []candidate) []byte {
	patches := make(map[int]*tokenPatch)
	for _, cand := range accepted {
		for _, e := range cand.fix.Edits {
			p := patches[e.Token]
			if p == nil {
				p = &tokenPatch{}
				patches[e.Token] = p
			}
			switch e.Op {
			case diag.EditInsertBefore:
				p.before = append(p.before, e.Text)
			case diag.EditInsertAfter:
				p.after = append(p.after, e.Text)
			case diag.EditReplace:
				p.replaced, p.text = true, e.Text
			case diag.EditDelete:
				p.replaced, p.text = true, ""
			}
		}
	}

	var buf bytes.Buffer
	if stream.File != nil {
		buf.Grow(len(stream.File.Content))
	}
	for i, tok := range stream.Tokens {
		p := patches[i]
		if p == nil {
			buf.WriteString(tok.Text)
			continue
		}
		for _, s := range p.before {
			buf.WriteString(s)
		}
		if p.replaced {
			buf.WriteString(p.text)
		} else {
			buf.WriteString(tok.Text)
		}
		for _, s := range p.after {
			buf.WriteString(s)
		}
	}
	return buf.Bytes()
}
