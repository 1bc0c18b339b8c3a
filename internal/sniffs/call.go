package sniffs

import (
	"phpsniff/internal/config"
	"phpsniff/internal/engine"
	"phpsniff/internal/token"
)

// Arg is one call argument as token indices of its first and last
// non-empty tokens.
type Arg struct {
	Start, End int
}

// Single reports whether the argument is exactly one token.
func (a Arg) Single() bool { return a.Start == a.End }

// Call is a function call site: ident ( args ).
type Call struct {
	Name  string
	Ident int
	Open  int
	Close int
	Args  []Arg
}

// ArgToken returns the token of argument n when that argument is a single token.
func (c Call) ArgToken(n int) (int, bool) {
	if n >= len(c.Args) || !c.Args[n].Single() {
		return -1, false
	}
	return c.Args[n].Start, true
}

// notCallPrefix are tokens that turn name( into something other than a
// plain function call.
var notCallPrefix = map[token.Kind]bool{
	token.Arrow:         true,
	token.NullsafeArrow: true,
	token.DoubleColon:   true,
	token.KwFunction:    true,
	token.KwFn:          true,
	token.KwNew:         true,
	token.KwConst:       true,
	token.NsSeparator:   true,
}

// ParseCall recognises a plain function call at ident.
func ParseCall(s *token.Stream, ident int) (Call, bool) {
	if s.Kind(ident) != token.Ident {
		return Call{}, false
	}
	open := s.NextNonEmpty(ident)
	if open < 0 || s.Kind(open) != token.LParen {
		return Call{}, false
	}
	if prev := s.PrevNonEmpty(ident); prev >= 0 && notCallPrefix[s.Kind(prev)] {
		return Call{}, false
	}
	closer, ok := s.Match(open)
	if !ok {
		return Call{}, false
	}
	return Call{
		Name:  s.At(ident).Text,
		Ident: ident,
		Open:  open,
		Close: closer,
		Args:  splitArgs(s, open, closer),
	}, true
}

// splitArgs splits open..closer on depth-0 commas. A trailing comma does not
// produce an empty argument.
func splitArgs(s *token.Stream, open, closer int) []Arg {
	var args []Arg
	cur := Arg{Start: -1, End: -1}
	flush := func() {
		if cur.Start >= 0 {
			args = append(args, cur)
		}
		cur = Arg{Start: -1, End: -1}
	}
	for j := open + 1; j < closer; j++ {
		k := s.Kind(j)
		switch {
		case k == token.Comma:
			flush()
			continue
		case k.IsEmpty():
			continue
		}
		if cur.Start < 0 {
			cur.Start = j
		}
		if k.IsOpener() {
			if m, ok := s.Match(j); ok && m < closer {
				j = m
			}
		}
		cur.End = j
	}
	flush()
	return args
}

type callKey int

// callAt is ParseCall memoized for the scan, so every rule looking at the same
// identifier shares one parse.
func callAt(sc *engine.Scan, ident int) (Call, bool) {
	v := sc.Value(callKey(ident), func() any {
		c, ok := ParseCall(sc.Stream, ident)
		if !ok {
			return nil
		}
		return c
	})
	c, ok := v.(Call)
	return c, ok
}

// translatable resolves a translatable call at ident.
func translatable(sc *engine.Scan, ident int) (Call, config.CallInfo, bool) {
	tok := sc.Token(ident)
	if tok.Kind != token.Ident {
		return Call{}, config.CallInfo{}, false
	}
	info, ok := sc.Config.Calls.Lookup(tok.Text)
	if !ok {
		return Call{}, config.CallInfo{}, false
	}
	c, ok := callAt(sc, ident)
	return c, info, ok
}

// firstArgOf finds the translatable call whose first argument is exactly the
// token at idx.
func firstArgOf(sc *engine.Scan, idx int) (Call, config.CallInfo, bool) {
	s := sc.Stream
	open := s.PrevNonEmpty(idx)
	if open < 0 || s.Kind(open) != token.LParen {
		return Call{}, config.CallInfo{}, false
	}
	c, info, ok := translatable(sc, s.PrevNonEmpty(open))
	if !ok {
		return Call{}, config.CallInfo{}, false
	}
	if first, single := c.ArgToken(0); !single || first != idx {
		return Call{}, config.CallInfo{}, false
	}
	return c, info, true
}

// argOf finds the translatable call that has the token at idx as one of its
// direct arguments.
func argOf(sc *engine.Scan, idx int) (Call, config.CallInfo, bool) {
	open, ok := sc.Stream.Enclosing(idx)
	if !ok || sc.Stream.Kind(open) != token.LParen {
		return Call{}, config.CallInfo{}, false
	}
	return translatable(sc, sc.Stream.PrevNonEmpty(open))
}

// enclosingCallName returns the name of the innermost call whose parentheses
// contain idx, or "".
func enclosingCallName(s *token.Stream, idx int) string {
	open, ok := s.EnclosingKind(idx, token.LParen)
	if !ok {
		return ""
	}
	name := s.PrevNonEmpty(open)
	if s.Kind(name) != token.Ident {
		return ""
	}
	return s.At(name).Text
}

// statementStart reports whether idx is the first token of a statement.
func statementStart(s *token.Stream, idx int) bool {
	prev := s.PrevNonEmpty(idx)
	if prev < 0 {
		return true
	}
	switch s.Kind(prev) {
	case token.Semicolon, token.LBrace, token.RBrace, token.OpenTag, token.Colon:
		return true
	}
	return false
}
