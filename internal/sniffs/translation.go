package sniffs

import (
	"fmt"
	"regexp"
	"strings"

	"phpsniff/internal/casing"
	"phpsniff/internal/diag"
	"phpsniff/internal/engine"
	"phpsniff/internal/token"
)

// TranslatorComment requires a "translators:" comment before translatable
// calls whose string has placeholders.
type TranslatorComment struct{}

func (TranslatorComment) Name() string        { return "Strings.TranslatorComment" }
func (TranslatorComment) Kinds() []token.Kind { return []token.Kind{token.Ident} }
func (TranslatorComment) Codes() []diag.Code {
	return []diag.Code{diag.TrnMissingTranslatorComment, diag.TrnInsufficientTranslatorComment}
}

func (TranslatorComment) Process(sc *engine.Scan, idx int) error {
	call, _, ok := translatable(sc, idx)
	if !ok {
		return nil
	}
	str, ok := call.ArgToken(0)
	if !ok {
		return nil
	}
	tok := sc.Token(str)
	if tok.Kind != token.ConstString && tok.Kind != token.InterpString {
		return nil
	}
	_, body, ok := unquote(tok.Text)
	if !ok {
		return nil
	}
	inFormat := isFormatCall(enclosingCallName(sc.Stream, idx))
	if !hasPlaceholder(body, inFormat) {
		return nil
	}

	cfg := sc.Config.Config.TranslatorComment
	text, found := findTranslatorComment(sc.Stream, idx, cfg.LookbackLines)
	switch {
	case !found:
		sc.Error(diag.TrnMissingTranslatorComment, idx,
			`String with placeholders must have a translator comment. Add a "// translators:" or "/* translators: */" comment.`, nil)
	case len(text) < cfg.MinLength:
		sc.Warning(diag.TrnInsufficientTranslatorComment, idx,
			`Translator comment should be more descriptive. Example: "// translators: %1$s is the query string"`, nil)
	}
	return nil
}

// findTranslatorComment walks back from the call to the start of the
// statement and returns the text after the colon of the nearest translators
// comment that ends within lookback lines of the call.
func findTranslatorComment(s *token.Stream, call, lookback int) (string, bool) {
	line := s.At(call).Line
	for j := call - 1; j >= 0; j-- {
		tok := s.At(j)
		switch tok.Kind {
		case token.Semicolon, token.LBrace, token.RBrace, token.OpenTag, token.OpenTagEcho, token.CloseTag:
			return "", false
		case token.Comment, token.DocComment:
			end := tok.Line + uint32(strings.Count(tok.Text, "\n")) // #nosec G115 -- comment line count fits uint32
			if int(line)-int(end) > lookback {
				return "", false
			}
			if text, ok := translatorText(tok.Text); ok {
				return text, true
			}
		}
	}
	return "", false
}

// translatorText strips comment markers and reports whether the comment
// starts with "translators:" or "translator:".
func translatorText(comment string) (string, bool) {
	c := strings.TrimSpace(comment)
	c = strings.TrimSuffix(c, "*/")
	c = strings.TrimLeft(c, "/#* \t")
	var lines []string
	for _, l := range strings.Split(c, "\n") {
		l = strings.TrimLeft(strings.TrimSpace(l), "*")
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	c = strings.Join(lines, " ")
	lower := strings.ToLower(c)
	if !strings.HasPrefix(lower, "translators:") && !strings.HasPrefix(lower, "translator:") {
		return "", false
	}
	return strings.TrimSpace(c[strings.IndexByte(c, ':')+1:]), true
}

// TextDomain checks the text domain argument of translatable calls.
type TextDomain struct{}

func (TextDomain) Name() string        { return "Strings.TextDomain" }
func (TextDomain) Kinds() []token.Kind { return []token.Kind{token.Ident} }
func (TextDomain) Codes() []diag.Code {
	return []diag.Code{diag.TrnMissingTextdomain, diag.TrnInvalidTextdomain}
}

func (TextDomain) Process(sc *engine.Scan, idx int) error {
	call, info, ok := translatable(sc, idx)
	if !ok {
		return nil
	}
	at := info.DomainIndex()
	if !info.HasContext && info.ContextRequired && len(call.Args) >= 3 {
		// custom context-required names take (text, context, domain)
		at = 2
	}
	if len(call.Args) <= at {
		sc.Error(diag.TrnMissingTextdomain, idx, "Missing textdomain", nil)
		return nil
	}
	arg, single := call.ArgToken(at)
	if !single || sc.Stream.Kind(arg) != token.ConstString {
		return nil
	}
	_, domain, _ := unquote(sc.Token(arg).Text)
	if !sc.Config.ValidDomain(domain) {
		sc.Error(diag.TrnInvalidTextdomain, arg, fmt.Sprintf(
			`Invalid textdomain "%s". Must be one of the allowed domains or match allowed patterns.`, domain), nil)
	}
	return nil
}

var reHTMLTag = regexp.MustCompile(`<[^>]*>`)

const htmlMessage = `HTML found in translation string. Use sprintf() with %s placeholder instead. Example:
sprintf(
    __(
        'Text with %s link',
        'uncanny-automator'
    ),
    '<a href="url">link text</a>'
);`

// TranslationHTML flags markup inside translatable strings unless it is fed
// through sprintf with a placeholder.
type TranslationHTML struct{}

func (TranslationHTML) Name() string        { return "Strings.TranslationHtml" }
func (TranslationHTML) Kinds() []token.Kind { return []token.Kind{token.ConstString} }
func (TranslationHTML) Codes() []diag.Code  { return []diag.Code{diag.TrnHTMLInTranslation} }

func (TranslationHTML) Process(sc *engine.Scan, idx int) error {
	call, _, ok := firstArgOf(sc, idx)
	if !ok {
		return nil
	}
	_, body, _ := unquote(sc.Token(idx).Text)
	if !reHTMLTag.MatchString(body) {
		return nil
	}
	if hasPlaceholder(body, false) && inFormatting(sc.Stream, call.Ident) {
		return nil
	}
	sc.Error(diag.TrnHTMLInTranslation, idx, htmlMessage, nil)
	return nil
}

// inFormatting reports a call nested in sprintf/printf, or a statement that
// starts with sprintf, printf or echo sprintf.
func inFormatting(s *token.Stream, ident int) bool {
	if isFormatCall(enclosingCallName(s, ident)) {
		return true
	}
	j := ident
	for ; j >= 0; j-- {
		k := s.Kind(j)
		if k == token.Semicolon || k == token.OpenTag || k == token.LBrace || k == token.RBrace {
			break
		}
	}
	first := s.NextNonEmpty(j)
	if first < 0 {
		return false
	}
	if s.Kind(first) == token.KwEcho {
		first = s.NextNonEmpty(first)
	}
	return first >= 0 && s.Kind(first) == token.Ident && isFormatCall(s.At(first).Text)
}

var (
	quotingBlockers = []string{`"`, "<", ">", "href", "src", "target", "_blank", "http", "www.", ".com", ".org", `\\`}
	reOtherEscape   = regexp.MustCompile(`\\[^'"]`)
	rePositional    = regexp.MustCompile(`%\d+\$[sd]`)
)

// StringQuoting prefers double quotes over escaped single quotes in
// translatable strings.
type StringQuoting struct{}

func (StringQuoting) Name() string        { return "Strings.StringQuoting" }
func (StringQuoting) Kinds() []token.Kind { return []token.Kind{token.ConstString} }
func (StringQuoting) Codes() []diag.Code  { return []diag.Code{diag.TrnEscapedQuotes} }

func (StringQuoting) Process(sc *engine.Scan, idx int) error {
	if sc.Config.SkipQuoting(sc.Path) {
		return nil
	}
	q, body, ok := unquote(sc.Token(idx).Text)
	if !ok || q != '\'' || !strings.Contains(body, `\'`) {
		return nil
	}
	if _, _, ok := argOf(sc, idx); !ok {
		return nil
	}
	for _, b := range quotingBlockers {
		if strings.Contains(body, b) {
			return nil
		}
	}
	if reOtherEscape.MatchString(body) || rePositional.MatchString(body) || casing.IsDateFormat(body) {
		return nil
	}

	fixed := strings.ReplaceAll(body, `\'`, `'`)
	fixed = strings.ReplaceAll(fixed, "$", `\$`)
	sc.Error(diag.TrnEscapedQuotes, idx,
		"Use double quotes for strings containing single quotes in translation functions instead of escaping them",
		sc.Fix("switch to double quotes").Replace(idx, `"`+fixed+`"`))
	return nil
}
