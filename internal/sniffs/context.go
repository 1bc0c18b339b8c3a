package sniffs

import (
	"fmt"
	"strings"

	"phpsniff/internal/config"
	"phpsniff/internal/diag"
	"phpsniff/internal/engine"
	"phpsniff/internal/fix"
	"phpsniff/internal/token"
)

// Context requires a translator context on translatable calls that need one.
type Context struct{}

func (Context) Name() string        { return "Strings.Context" }
func (Context) Kinds() []token.Kind { return []token.Kind{token.Ident} }
func (Context) Codes() []diag.Code  { return []diag.Code{diag.TrnMissingContext} }

func (Context) Process(sc *engine.Scan, idx int) error {
	call, info, ok := translatable(sc, idx)
	if !ok {
		return nil
	}
	htmlKey := info.Kind == config.CallGettext && htmlExceptionValue(sc, idx)
	needed := info.ContextRequired || htmlKey || (sc.Integration && !info.HasContext)
	if !needed || info.HasContext || len(call.Args) >= 3 {
		return nil
	}
	if !sc.FirstOnLine(sc.Token(idx).Line) {
		return nil
	}

	variant := info.ContextVariant
	if htmlKey {
		variant = "esc_html_x"
	}
	if variant == "" {
		sc.Error(diag.TrnMissingContext, idx, fmt.Sprintf(
			"Call %s with a context argument. This helps translators better understand the context of the string.",
			info.Name), nil)
		return nil
	}

	fixable := len(call.Args) >= 2 && (htmlKey || (sc.Integration && info.Escaped))
	echo := info.ContextEcho && !htmlKey
	if echo && !statementStart(sc.Stream, idx) {
		fixable = false
	}
	if !fixable {
		sc.Error(diag.TrnMissingContext, idx, fmt.Sprintf(
			"Use %s with context instead of %s in integration strings. This helps translators better understand the context of the string. Choose the appropriate escaping function (%s) based on the content type.",
			variant, info.Name, variant), nil)
		return nil
	}

	replacement := variant
	if echo {
		replacement = "echo " + variant
	}
	ctxArg := ", " + phpSingleQuote(sc.ContextName)
	cs := sc.Fix("add translation context").
		Replace(idx, replacement).
		InsertAfter(call.Args[0].End, ctxArg)
	sc.Error(diag.TrnMissingContext, idx, fmt.Sprintf(
		"Use %s with context instead of %s in integration strings. This helps translators better understand the context of the string.",
		variant, info.Name), cs, fix.WithApplicability(diag.SafeWithHeuristics))
	return nil
}

// htmlExceptionValue reports whether the call at ident is the value of an
// array entry whose key is one of the configured HTML keys.
func htmlExceptionValue(sc *engine.Scan, ident int) bool {
	s := sc.Stream
	arrow := s.PrevNonEmpty(ident)
	if s.Kind(arrow) != token.DoubleArrow {
		return false
	}
	key := s.PrevNonEmpty(arrow)
	if s.Kind(key) != token.ConstString {
		return false
	}
	_, body, ok := unquote(s.At(key).Text)
	return ok && sc.Config.HTMLExceptionKey(strings.TrimSpace(body))
}

// Escaping flags translation calls whose output is not escaped.
type Escaping struct{}

func (Escaping) Name() string        { return "Strings.TranslationFunction" }
func (Escaping) Kinds() []token.Kind { return []token.Kind{token.Ident} }
func (Escaping) Codes() []diag.Code  { return []diag.Code{diag.TrnUnescapedTranslation} }

func (Escaping) Process(sc *engine.Scan, idx int) error {
	_, info, ok := translatable(sc, idx)
	if !ok || info.Escaped || info.EscapedVariant == "" {
		return nil
	}
	cs := sc.Fix("use "+info.EscapedVariant).Replace(idx, info.EscapedVariant)
	sc.Error(diag.TrnUnescapedTranslation, idx,
		"Translation function should use esc_html__(), esc_attr__(), or esc_html_x() for proper escaping and context",
		cs, fix.WithApplicability(diag.ManualReview))
	return nil
}
