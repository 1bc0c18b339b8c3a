// Package testkit holds checks shared by lexer, engine and fuzz tests.
package testkit

import (
	"fortio.org/safecast"
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

// CheckStreamInvariants verifies that a token stream is a lossless, ordered
// partition of the file:
//
//   - spans are contiguous, start at 0 and point into file
//   - each token's Text is exactly the bytes its span covers
//   - the last token is EOF with an empty span at len(content)
//   - Line is the 1-based line of the token start
func CheckStreamInvariants(stream *token.Stream, file *source.File) error {
	if stream == nil || file == nil {
		return errors.New("nil stream or file")
	}
	n := len(stream.Tokens)
	if n == 0 {
		return errors.New("empty stream")
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return errors.Errorf("content length: %w", err)
	}

	var pos uint32
	for i, tok := range stream.Tokens {
		sp := tok.Span
		if sp.File != file.ID {
			return errors.Errorf("token %d: span file %d, want %d", i, sp.File, file.ID)
		}
		if sp.Start != pos {
			return errors.Errorf("token %d (%s): starts at %d, previous ended at %d", i, tok.Kind, sp.Start, pos)
		}
		if sp.End < sp.Start || sp.End > size {
			return errors.Errorf("token %d (%s): bad span %d..%d", i, tok.Kind, sp.Start, sp.End)
		}
		if got := string(file.Content[sp.Start:sp.End]); got != tok.Text {
			return errors.Errorf("token %d (%s): text %q, content %q", i, tok.Kind, tok.Text, got)
		}
		if want := file.LineCol(sp.Start).Line; tok.Line != want {
			return errors.Errorf("token %d (%s): line %d, want %d", i, tok.Kind, tok.Line, want)
		}
		if tok.Kind == token.EOF && i != n-1 {
			return errors.Errorf("token %d: EOF before the end of the stream", i)
		}
		pos = sp.End
	}

	last := stream.Tokens[n-1]
	if last.Kind != token.EOF {
		return errors.Errorf("last token is %s, want EOF", last.Kind)
	}
	if pos != size {
		return errors.Errorf("stream covers %d of %d bytes", pos, size)
	}
	return nil
}
