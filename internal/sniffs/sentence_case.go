package sniffs

import (
	"fmt"
	"strings"

	"phpsniff/internal/casing"
	"phpsniff/internal/diag"
	"phpsniff/internal/engine"
	"phpsniff/internal/token"
)

// SentenceCase corrects the casing of reserved words (product names,
// acronyms, weekdays) in the first argument of translatable calls.
type SentenceCase struct{}

func (SentenceCase) Name() string        { return "Strings.SentenceCase" }
func (SentenceCase) Kinds() []token.Kind { return []token.Kind{token.ConstString} }
func (SentenceCase) Codes() []diag.Code {
	return []diag.Code{diag.CasIncorrectReservedWord, diag.CasPotentialCaseIssue}
}

func (SentenceCase) Process(sc *engine.Scan, idx int) error {
	if _, _, ok := firstArgOf(sc, idx); !ok {
		return nil
	}
	q, body, ok := unquote(sc.Token(idx).Text)
	if !ok {
		return nil
	}
	a := sc.Config.Casing.Check(body)
	if a.Skip != "" {
		return nil
	}

	if len(a.Fixes) > 0 {
		quote := string(q)
		fixed := quote + casing.Apply(body, a.Fixes) + quote
		sc.Error(diag.CasIncorrectReservedWord, idx,
			"Reserved words have incorrect case: "+casing.Describe(a.Fixes, "should be"),
			sc.Fix("correct reserved word case").Replace(idx, fixed))
	}
	if len(a.Warnings) > 0 && sc.Config.Config.SentenceCase.ShowWarnings {
		sc.Warning(diag.CasPotentialCaseIssue, idx,
			fmt.Sprintf(`These words might need case correction (review manually): %s | Full string: "%s"`,
				casing.Describe(a.Warnings, "could be"), body),
			nil)
	}
	return nil
}

// IntegrationSentenceCase enforces sentence case on plain translatable
// strings in integration files.
type IntegrationSentenceCase struct{}

func (IntegrationSentenceCase) Name() string        { return "Strings.IntegrationSentenceCase" }
func (IntegrationSentenceCase) Kinds() []token.Kind { return []token.Kind{token.ConstString} }
func (IntegrationSentenceCase) Codes() []diag.Code {
	return []diag.Code{diag.CasCapitalizedWords}
}

func (IntegrationSentenceCase) Process(sc *engine.Scan, idx int) error {
	if sc.Config.Config.SentenceCase.IntegrationOnly && !sc.Integration {
		return nil
	}
	if _, _, ok := firstArgOf(sc, idx); !ok {
		return nil
	}
	q, body, ok := unquote(sc.Token(idx).Text)
	if !ok || !casing.IsPlainSentence(body) {
		return nil
	}
	res := sc.Config.Casing.Checker().SentenceCase(body)
	if len(res.Capitalized) == 0 || res.Fixed == body {
		return nil
	}
	msg := fmt.Sprintf(`String "%s" contains incorrectly capitalized words: "%s". Use sentence case instead: "%s"`,
		body, strings.Join(res.Capitalized, ", "), res.Fixed)
	sc.Error(diag.CasCapitalizedWords, idx, msg,
		sc.Fix("convert to sentence case").Replace(idx, string(q)+res.Fixed+string(q)))
	return nil
}
