package sniffs

import (
	"fmt"
	"strings"
	"unicode"

	"phpsniff/internal/diag"
	"phpsniff/internal/engine"
	"phpsniff/internal/token"
)

// FunctionComment requires a /** */ doc comment on named functions and
// methods with a body, and can generate one.
type FunctionComment struct{}

func (FunctionComment) Name() string        { return "Commenting.FunctionComment" }
func (FunctionComment) Kinds() []token.Kind { return []token.Kind{token.KwFunction} }
func (FunctionComment) Codes() []diag.Code {
	return []diag.Code{diag.DocMissingFunctionComment, diag.DocMissingConstructorComment, diag.DocInvalidFormat}
}

// funcDecl is a function declaration located in the stream.
type funcDecl struct {
	name       string
	first      int // first modifier or attribute, else the function keyword
	open       int
	close      int
	body       int // opening brace
	returnType string
}

func (FunctionComment) Process(sc *engine.Scan, idx int) error {
	d, ok := parseFuncDecl(sc.Stream, idx)
	if !ok {
		return nil
	}
	lower := strings.ToLower(d.name)
	ctor := lower == "__construct"
	if strings.HasPrefix(lower, "__") && !ctor {
		return nil
	}

	s := sc.Stream
	prev := s.PrevNonWhitespace(d.first)
	if prev >= 0 {
		switch s.Kind(prev) {
		case token.DocComment:
			return nil
		case token.Comment:
			sc.Error(diag.DocInvalidFormat, idx, fmt.Sprintf("Doc comment must start with /** for function %s", d.name), nil)
			return nil
		}
	}

	cs := sc.Fix("add doc comment")
	indent, ok := lineIndent(s, d.first)
	if ok {
		cs.InsertBefore(d.first, renderDocBlock(s, d, ctor, indent)+"\n"+indent)
	} else {
		cs.Abort()
		cs = nil
	}
	if ctor {
		sc.Warning(diag.DocMissingConstructorComment, idx, "Constructor is missing documentation comment.", cs)
		return nil
	}
	sc.Error(diag.DocMissingFunctionComment, idx, fmt.Sprintf("Function %s() is missing a doc comment.", d.name), cs)
	return nil
}

// parseFuncDecl accepts function declarations with a name and a body.
// Closures, abstract and interface methods return false.
func parseFuncDecl(s *token.Stream, fn int) (funcDecl, bool) {
	name := s.NextNonEmpty(fn)
	if name >= 0 && s.Kind(name) == token.Amp {
		name = s.NextNonEmpty(name)
	}
	if name < 0 || (s.Kind(name) != token.Ident && !s.Kind(name).IsKeyword()) {
		return funcDecl{}, false
	}
	open := s.NextNonEmpty(name)
	if open < 0 || s.Kind(open) != token.LParen {
		return funcDecl{}, false
	}
	closeIdx, ok := s.Match(open)
	if !ok {
		return funcDecl{}, false
	}
	d := funcDecl{name: s.At(name).Text, open: open, close: closeIdx, first: fn}

	j := s.NextNonEmpty(closeIdx)
	if j >= 0 && s.Kind(j) == token.Colon {
		start := j + 1
		for j = s.NextNonEmpty(j); j >= 0; j = s.NextNonEmpty(j) {
			if k := s.Kind(j); k == token.LBrace || k == token.Semicolon || k == token.EOF {
				break
			}
		}
		if j >= 0 {
			d.returnType = s.CodeText(start, j-1)
		}
	}
	if j < 0 || s.Kind(j) != token.LBrace {
		return funcDecl{}, false
	}
	d.body = j

	for p := s.PrevNonEmpty(fn); p >= 0; p = s.PrevNonEmpty(p) {
		k := s.Kind(p)
		if k.IsModifier() || (k == token.Ident && strings.EqualFold(s.At(p).Text, "readonly")) {
			d.first = p
			continue
		}
		if k == token.RBracket {
			if m, ok := s.Match(p); ok && s.Kind(m) == token.AttributeOpen {
				d.first = m
				p = m
				continue
			}
		}
		break
	}
	return d, true
}

// lineIndent returns the indentation of the line idx is on, provided idx is
// the first token of that line.
func lineIndent(s *token.Stream, idx int) (string, bool) {
	if idx == 0 {
		return "", true
	}
	prev := s.At(idx - 1)
	var text string
	switch prev.Kind {
	case token.Whitespace:
		text = prev.Text
		if !strings.Contains(text, "\n") {
			// "<?php " keeps one space in the open tag; anything else on the line disqualifies.
			if pp := s.At(idx - 2); idx >= 2 && pp.Kind == token.OpenTag && strings.HasSuffix(pp.Text, "\n") {
				return text, true
			}
			return "", false
		}
	case token.OpenTag:
		if strings.HasSuffix(prev.Text, "\n") {
			return "", true
		}
		return "", false
	default:
		return "", false
	}
	indent := text[strings.LastIndexByte(text, '\n')+1:]
	return indent, strings.Trim(indent, " \t") == ""
}

func renderDocBlock(s *token.Stream, d funcDecl, ctor bool, indent string) string {
	desc := "Constructor."
	if !ctor {
		desc = describeName(d.name)
	}
	params := parseParams(s, d.open, d.close)
	lines := []string{"/**", indent + " * " + desc}
	if len(params) > 0 {
		lines = append(lines, indent+" *")
		for _, p := range params {
			lines = append(lines, fmt.Sprintf("%s * @param %s $%s %s", indent, p.typ, p.name, paramDescription(p.name, ctor)))
		}
	}
	rt := d.returnType
	if (rt != "" && !strings.EqualFold(rt, "void")) || hasValuedReturn(s, d.body) {
		if rt == "" || strings.EqualFold(rt, "void") {
			rt = "mixed"
		}
		if len(params) == 0 {
			lines = append(lines, indent+" *")
		}
		lines = append(lines, indent+" * @return "+rt)
	}
	lines = append(lines, indent+" */")
	return strings.Join(lines, "\n")
}

// describeName turns get_user_ID or getUserID into "Get user id.".
func describeName(name string) string {
	var words []string
	for _, part := range strings.Split(name, "_") {
		words = append(words, splitCamel(part)...)
	}
	if len(words) == 0 {
		return name + "."
	}
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	r := []rune(words[0])
	r[0] = unicode.ToUpper(r[0])
	words[0] = string(r)
	return strings.Join(words, " ") + "."
}

// splitCamel splits at lower-to-upper boundaries and before the last capital
// of an acronym run: HTTPServerID -> HTTP Server ID.
func splitCamel(s string) []string {
	r := []rune(s)
	var out []string
	start := 0
	for i := 1; i < len(r); i++ {
		lowerToUpper := unicode.IsUpper(r[i]) && !unicode.IsUpper(r[i-1])
		acronymEnd := unicode.IsUpper(r[i]) && unicode.IsUpper(r[i-1]) && i+1 < len(r) && unicode.IsLower(r[i+1])
		if lowerToUpper || acronymEnd {
			out = append(out, string(r[start:i]))
			start = i
		}
	}
	if start < len(r) {
		out = append(out, string(r[start:]))
	}
	return out
}

type param struct {
	name string
	typ  string
}

func parseParams(s *token.Stream, open, closeIdx int) []param {
	var out []param
	for _, a := range splitArgs(s, open, closeIdx) {
		var typ strings.Builder
		for j := a.Start; j <= a.End; j++ {
			tok := s.At(j)
			switch {
			case tok.Kind == token.Variable:
				t := typ.String()
				if t == "" {
					t = "mixed"
				}
				out = append(out, param{name: strings.TrimPrefix(tok.Text, "$"), typ: t})
				j = a.End
			case tok.Kind == token.AttributeOpen:
				if m, ok := s.Match(j); ok {
					j = m
				}
			case tok.Kind.IsEmpty(), tok.Kind.IsVisibility(), tok.Kind == token.Amp, tok.Kind == token.Ellipsis:
			case tok.Kind == token.Ident && strings.EqualFold(tok.Text, "readonly"):
			default:
				typ.WriteString(tok.Text)
			}
		}
	}
	return out
}

// hasValuedReturn looks for "return <expr>" in the body, skipping nested
// function bodies.
func hasValuedReturn(s *token.Stream, body int) bool {
	end, ok := s.Match(body)
	if !ok {
		return false
	}
	for j := body + 1; j < end; j++ {
		switch s.Kind(j) {
		case token.KwFunction:
			b := s.FindNext(j+1, end, token.LBrace, token.Semicolon)
			if b >= 0 && s.Kind(b) == token.LBrace {
				if m, ok := s.Match(b); ok {
					j = m
				}
			}
		case token.KwReturn:
			if n := s.NextNonEmpty(j); n >= 0 && s.Kind(n) != token.Semicolon {
				return true
			}
		}
	}
	return false
}

var paramDescriptions = []struct{ key, desc string }{
	{"id", "The ID."},
	{"user_id", "The user ID."},
	{"post_id", "The post ID."},
	{"comment_id", "The comment ID."},
	{"term_id", "The term ID."},
	{"type", "The type."},
	{"name", "The name."},
	{"title", "The title."},
	{"slug", "The slug."},
	{"description", "The description."},
	{"content", "The content."},
	{"text", "The text."},
	{"html", "The HTML content."},
	{"url", "The URL."},
	{"link", "The link."},
	{"path", "The path."},
	{"file", "The file."},
	{"dir", "The directory."},
	{"directory", "The directory."},
	{"size", "The size."},
	{"width", "The width."},
	{"height", "The height."},
	{"length", "The length."},
	{"count", "The count."},
	{"number", "The number."},
	{"index", "The index."},
	{"position", "The position."},
	{"order", "The order."},
	{"key", "The key."},
	{"value", "The value."},
	{"data", "The data."},
	{"args", "The arguments."},
	{"params", "The parameters."},
	{"options", "The options."},
	{"settings", "The settings."},
	{"config", "The configuration."},
	{"meta", "The meta data."},
	{"context", "The context."},
	{"format", "The format."},
	{"style", "The style."},
	{"class", "The class."},
	{"object", "The object."},
	{"instance", "The instance."},
	{"callback", "The callback function."},
	{"handler", "The handler function."},
	{"function", "The function."},
	{"method", "The method."},
	{"action", "The action."},
	{"filter", "The filter."},
	{"query", "The query."},
	{"search", "The search term."},
	{"request", "The request."},
	{"response", "The response."},
	{"result", "The result."},
	{"output", "The output."},
	{"input", "The input."},
	{"source", "The source."},
	{"target", "The target."},
	{"destination", "The destination."},
	{"from", "The source."},
	{"to", "The destination."},
	{"start", "The start."},
	{"end", "The end."},
	{"begin", "The beginning."},
	{"finish", "The finish."},
	{"first", "The first item."},
	{"last", "The last item."},
	{"prefix", "The prefix."},
	{"suffix", "The suffix."},
	{"delimiter", "The delimiter."},
	{"separator", "The separator."},
	{"message", "The message."},
	{"error", "The error."},
	{"exception", "The exception."},
	{"status", "The status."},
	{"state", "The state."},
	{"condition", "The condition."},
	{"flag", "The flag."},
	{"use", "Whether to use."},
	{"enabled", "Whether enabled."},
	{"disabled", "Whether disabled."},
	{"active", "Whether active."},
	{"visible", "Whether visible."},
	{"hidden", "Whether hidden."},
	{"show", "Whether to show."},
	{"hide", "Whether to hide."},
	{"recursive", "Whether to process recursively."},
	{"force", "Whether to force."},
	{"skip", "Whether to skip."},
	{"overwrite", "Whether to overwrite."},
	{"replace", "Whether to replace."},
	{"default", "The default value."},
	{"fallback", "The fallback value."},
}

func paramDescription(name string, ctor bool) string {
	for _, p := range paramDescriptions {
		if p.key == name {
			return p.desc
		}
	}
	for _, p := range paramDescriptions {
		if strings.Contains(name, p.key) {
			return p.desc
		}
	}
	if ctor {
		return "Parameter value."
	}
	return "The " + strings.ReplaceAll(name, "_", " ") + "."
}
