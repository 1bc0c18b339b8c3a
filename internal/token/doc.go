// Package token defines PHP token kinds, the Token value and the Stream the rules walk.
// Invariants:
//   - The stream is lossless: concatenating Token.Text in order yields the file content.
//   - Token.Span matches Text exactly (Start..End) and Line is the line of Span.Start.
//   - Whitespace and comments are ordinary tokens, not trivia.
//   - Every stream ends with exactly one EOF token.
//   - Paired delimiters know their partner; unbalanced ones have none.
package token
