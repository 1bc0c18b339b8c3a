package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

type TokenOutput struct {
	Index int         `json:"index"`
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Line  uint32      `json:"line"`
	Span  source.Span `json:"span"`
}

// FormatTokensPretty prints one token per line with its position.
func FormatTokensPretty(w io.Writer, stream *token.Stream, fs *source.FileSet) error {
	for i, tok := range stream.Tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%4d: %-24s %q at %d:%d-%d:%d\n", i, tok.Kind.String(), tok.Text,
			startPos.Line, startPos.Col, endPos.Line, endPos.Col); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the stream as a JSON array.
func FormatTokensJSON(w io.Writer, stream *token.Stream) error {
	output := make([]TokenOutput, 0, len(stream.Tokens))
	for i, tok := range stream.Tokens {
		output = append(output, TokenOutput{Index: i, Kind: tok.Kind.String(), Text: tok.Text, Line: tok.Line, Span: tok.Span})
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
