package token_test

import (
	"testing"

	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

func tok(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Text: text, Span: source.Span{}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.FloatLit, token.ConstString, token.KwTrue, token.KwFalse, token.KwNull}
	for _, k := range lits {
		if !tok(k, "").IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.Variable, token.InterpString, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k, "").IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !token.Whitespace.IsEmpty() || !token.DocComment.IsEmpty() || token.Ident.IsEmpty() {
		t.Fatal("IsEmpty misclassified")
	}
	if !token.KwFunction.IsKeyword() || token.Ident.IsKeyword() || token.LParen.IsKeyword() {
		t.Fatal("IsKeyword misclassified")
	}
	if !token.RBracket.Closes(token.AttributeOpen) || token.RParen.Closes(token.LBracket) {
		t.Fatal("Closes misclassified")
	}
	if !token.NotIdentical.IsComparison() || token.Assign.IsComparison() {
		t.Fatal("IsComparison misclassified")
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Ident:         "Ident",
		token.NullsafeArrow: "NullsafeArrow",
		token.KwFunction:    "Kw(function)",
		token.KwMatch:       "Kw(match)",
		token.KwInclude:     "Kw(include)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestTokenIsFoldsCase(t *testing.T) {
	if !tok(token.Ident, "Esc_HTML__").Is("esc_html__") {
		t.Fatal("Is should ignore case")
	}
	if tok(token.Variable, "$x").Is("$x") {
		t.Fatal("Is only matches identifiers")
	}
}
