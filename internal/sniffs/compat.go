package sniffs

import (
	"fmt"
	"strings"

	"phpsniff/internal/config"
	"phpsniff/internal/diag"
	"phpsniff/internal/engine"
	"phpsniff/internal/token"
)

// Compatibility flags syntax newer than the configured target PHP version.
type Compatibility struct{}

func (Compatibility) Name() string { return "Compatibility" }

func (Compatibility) Kinds() []token.Kind {
	return []token.Kind{
		token.CoalesceAssign, token.Ellipsis, token.Variable, token.KwFn,
		token.Ident, token.NullsafeArrow, token.KwMatch, token.AttributeOpen,
		token.KwPublic, token.KwProtected, token.KwPrivate, token.Pipe,
	}
}

func (Compatibility) Codes() []diag.Code {
	return []diag.Code{
		diag.CmpNullCoalescingAssignment, diag.CmpArraySpread, diag.CmpTypedProperty, diag.CmpArrowFunction,
		diag.CmpNamedArgument, diag.CmpNullsafeOperator, diag.CmpMatchExpression, diag.CmpAttribute,
		diag.CmpConstructorPromotion, diag.CmpUnionType, diag.CmpForbiddenFeature,
	}
}

var php8Words = map[string]bool{"mixed": true, "never": true, "readonly": true, "enum": true}

func (Compatibility) Process(sc *engine.Scan, idx int) error {
	s := sc.Stream
	target := sc.Config.Target
	report := func(min config.PHPVersion, code diag.Code, msg string) {
		if target.Less(min) {
			sc.Error(code, idx, msg, nil)
		}
	}

	switch tok := s.At(idx); tok.Kind {
	case token.CoalesceAssign:
		report(config.PHP74, diag.CmpNullCoalescingAssignment, "The null coalescing assignment operator (??=) requires PHP 7.4+")
	case token.Ellipsis:
		if isArraySpread(s, idx) {
			report(config.PHP74, diag.CmpArraySpread, "Array spread operator in array expressions requires PHP 7.4+")
		}
	case token.Variable:
		if isTypedProperty(s, idx) {
			report(config.PHP74, diag.CmpTypedProperty, "Typed properties require PHP 7.4+")
		}
	case token.KwFn:
		report(config.PHP74, diag.CmpArrowFunction,
			"Arrow functions (fn) are not allowed as they require PHP 7.4+. Use traditional anonymous functions instead.")
	case token.NullsafeArrow:
		report(config.PHP80, diag.CmpNullsafeOperator, "Nullsafe operator (?->) is not allowed as it requires PHP 8.0+")
	case token.KwMatch:
		report(config.PHP80, diag.CmpMatchExpression, "Match expression is not allowed as it requires PHP 8.0+")
	case token.AttributeOpen:
		report(config.PHP80, diag.CmpAttribute, "Attributes are not allowed as they require PHP 8.0+")
	case token.KwPublic, token.KwProtected, token.KwPrivate:
		if isPromotedParam(s, idx) {
			report(config.PHP80, diag.CmpConstructorPromotion, "Constructor property promotion is not allowed as it requires PHP 8.0+")
		}
	case token.Pipe:
		if isUnionType(s, idx) {
			report(config.PHP80, diag.CmpUnionType, "Union types are not allowed as they require PHP 8.0+")
		}
	case token.Ident:
		switch {
		case isNamedArgument(s, idx):
			report(config.PHP80, diag.CmpNamedArgument, "Named arguments are not allowed as they require PHP 8.0+")
		case php8Words[strings.ToLower(tok.Text)] && isBareWord(s, idx):
			report(config.PHP80, diag.CmpForbiddenFeature, fmt.Sprintf(
				`PHP 8.0+ feature "%s" is not allowed as we need to maintain PHP %s compatibility`,
				strings.ToLower(tok.Text), target))
		}
	}
	return nil
}

// isArraySpread reports "..." directly inside [ ] or array( ).
func isArraySpread(s *token.Stream, idx int) bool {
	prev := s.PrevNonEmpty(idx)
	if k := s.Kind(prev); k != token.Comma && k != token.LBracket && k != token.LParen {
		return false
	}
	open, ok := s.Enclosing(idx)
	if !ok {
		return false
	}
	switch s.Kind(open) {
	case token.LBracket:
		return true
	case token.LParen:
		return s.Kind(s.PrevNonEmpty(open)) == token.KwArray
	}
	return false
}

func isTypeToken(k token.Kind) bool {
	switch k {
	case token.Ident, token.NsSeparator, token.Question, token.KwArray, token.KwCallable,
		token.KwNull, token.KwFalse, token.KwTrue, token.KwStatic:
		return true
	}
	return false
}

// isTypedProperty reports a class property declared with a type:
// a modifier, then type tokens, then the variable.
func isTypedProperty(s *token.Stream, idx int) bool {
	open, ok := s.Enclosing(idx)
	if !ok || s.Kind(open) != token.LBrace {
		return false
	}
	p := s.PrevNonEmpty(idx)
	typed := false
	for p >= 0 && (isTypeToken(s.Kind(p)) || s.Kind(p) == token.Pipe) && s.Kind(p) != token.KwStatic {
		typed = true
		p = s.PrevNonEmpty(p)
	}
	if !typed || p < 0 {
		return false
	}
	k := s.Kind(p)
	return k.IsVisibility() || k == token.KwVar || k == token.KwStatic ||
		(k == token.Ident && strings.EqualFold(s.At(p).Text, "readonly"))
}

// isPromotedParam reports a visibility keyword inside a constructor's
// parameter list.
func isPromotedParam(s *token.Stream, idx int) bool {
	open, ok := s.Enclosing(idx)
	if !ok || s.Kind(open) != token.LParen {
		return false
	}
	name := s.PrevNonEmpty(open)
	if !s.At(name).Is("__construct") {
		return false
	}
	return s.Kind(s.PrevNonEmpty(name)) == token.KwFunction
}

// isUnionType reports the first "|" of a union in a parameter, property or
// return type. Multi-catch lists are not unions.
func isUnionType(s *token.Stream, idx int) bool {
	back := s.PrevNonEmpty(idx)
	if back < 0 || !isTypeToken(s.Kind(back)) {
		return false
	}
	for back >= 0 && isTypeToken(s.Kind(back)) {
		back = s.PrevNonEmpty(back)
	}
	if back >= 0 && s.Kind(back) == token.Pipe {
		return false
	}
	fwd := s.NextNonEmpty(idx)
	if fwd < 0 || !isTypeToken(s.Kind(fwd)) {
		return false
	}
	for fwd >= 0 && (isTypeToken(s.Kind(fwd)) || s.Kind(fwd) == token.Pipe) {
		fwd = s.NextNonEmpty(fwd)
	}
	if fwd < 0 {
		return false
	}

	switch s.Kind(fwd) {
	case token.Variable, token.Amp, token.Ellipsis:
		if open, ok := s.EnclosingKind(idx, token.LParen); ok && s.Kind(s.PrevNonEmpty(open)) == token.KwCatch {
			return false
		}
		return true
	case token.LBrace, token.Semicolon, token.DoubleArrow:
		return back >= 0 && s.Kind(back) == token.Colon && s.Kind(s.PrevNonEmpty(back)) == token.RParen
	}
	return false
}

// isNamedArgument reports name: as a call argument.
func isNamedArgument(s *token.Stream, idx int) bool {
	colon := s.NextNonEmpty(idx)
	if colon < 0 || s.Kind(colon) != token.Colon {
		return false
	}
	if k := s.Kind(s.PrevNonEmpty(idx)); k != token.LParen && k != token.Comma {
		return false
	}
	open, ok := s.Enclosing(idx)
	if !ok || s.Kind(open) != token.LParen {
		return false
	}
	switch s.Kind(s.PrevNonEmpty(open)) {
	case token.Ident, token.Variable, token.RParen, token.RBracket, token.KwStatic:
		return true
	}
	return false
}

// isBareWord excludes member names, declarations and calls.
func isBareWord(s *token.Stream, idx int) bool {
	switch s.Kind(s.PrevNonEmpty(idx)) {
	case token.Arrow, token.NullsafeArrow, token.DoubleColon, token.NsSeparator, token.KwFunction,
		token.KwConst, token.KwNew, token.KwClass, token.KwInterface, token.KwTrait,
		token.KwExtends, token.KwImplements, token.KwUse, token.KwNamespace:
		return false
	}
	switch s.Kind(s.NextNonEmpty(idx)) {
	case token.LParen, token.NsSeparator, token.DoubleColon:
		return false
	}
	return true
}

// ForbiddenFunctions flags calls to configured functions.
type ForbiddenFunctions struct{}

func (ForbiddenFunctions) Name() string        { return "Functions.ForbiddenFunctions" }
func (ForbiddenFunctions) Kinds() []token.Kind { return []token.Kind{token.Ident} }
func (ForbiddenFunctions) Codes() []diag.Code  { return []diag.Code{diag.StyForbiddenFunction} }

func (ForbiddenFunctions) Process(sc *engine.Scan, idx int) error {
	hint, ok := sc.Config.Forbidden(sc.Token(idx).Text)
	if !ok {
		return nil
	}
	call, ok := callAt(sc, idx)
	if !ok {
		return nil
	}
	sc.Error(diag.StyForbiddenFunction, idx,
		fmt.Sprintf("Function %s() is not allowed. %s", strings.ToLower(call.Name), hint), nil)
	return nil
}
