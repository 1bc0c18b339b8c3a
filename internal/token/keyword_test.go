package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"function":     KwFunction,
		"FUNCTION":     KwFunction,
		"Fn":           KwFn,
		"elseif":       KwElseif,
		"require_once": KwRequire,
		"null":         KwNull,
		"NULL":         KwNull,
		"array":        KwArray,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	for _, lexeme := range []string{"match", "mixed", "enum", "readonly", "esc_html__", ""} {
		if k, ok := LookupKeyword(lexeme); ok {
			t.Fatalf("LookupKeyword(%q) = %v, want !ok", lexeme, k)
		}
	}
}
