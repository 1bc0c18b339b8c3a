// Package fuzztests holds fuzz harnesses for the lexer and the fix loop.
// They look for panics, broken token streams and nondeterministic fixes on
// arbitrary input.
package fuzztests
