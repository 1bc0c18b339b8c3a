package token

import (
	"phpsniff/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Line uint32
}

// IsLiteral reports whether the token is a scalar literal usable as a Yoda operand.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, ConstString, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsEmpty reports whether the token is whitespace or a comment.
func (t Token) IsEmpty() bool { return t.Kind.IsEmpty() }

// Is reports whether the token is an identifier spelled name, ignoring case.
func (t Token) Is(name string) bool {
	return t.Kind == Ident && equalFold(t.Text, name)
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
