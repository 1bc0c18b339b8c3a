package sniffs

import (
	"strings"

	"phpsniff/internal/diag"
	"phpsniff/internal/engine"
	"phpsniff/internal/token"
)

// YodaConditions wants literals on the left of equality checks in control
// structure conditions.
type YodaConditions struct{}

func (YodaConditions) Name() string { return "ControlStructures.YodaConditions" }
func (YodaConditions) Kinds() []token.Kind {
	return []token.Kind{token.EqEq, token.Identical, token.NotEq, token.NotIdentical}
}
func (YodaConditions) Codes() []diag.Code { return []diag.Code{diag.StyNotYoda} }

var conditionOwners = map[token.Kind]bool{
	token.KwIf: true, token.KwElseif: true, token.KwWhile: true,
	token.KwFor: true, token.KwForeach: true, token.KwSwitch: true,
}

// operandBoundary are tokens that may sit right outside a comparison.
var operandBoundary = map[token.Kind]bool{
	token.LParen: true, token.RParen: true, token.AndAnd: true, token.OrOr: true,
	token.KwAnd: true, token.KwOr: true, token.KwXor: true, token.Comma: true, token.Semicolon: true,
}

func (YodaConditions) Process(sc *engine.Scan, idx int) error {
	s := sc.Stream
	if !inCondition(s, idx) {
		return nil
	}
	left := s.PrevNonEmpty(idx)
	start, ok := variableOperand(s, left)
	if !ok || !operandBoundary[s.Kind(s.PrevNonEmpty(start))] {
		return nil
	}
	right := s.NextNonEmpty(idx)
	if right < 0 || !s.At(right).IsLiteral() {
		return nil
	}
	if after := s.NextNonEmpty(right); after < 0 || !operandBoundary[s.Kind(after)] || s.Kind(after) == token.LParen {
		return nil
	}

	cs := sc.Fix("swap comparison operands").
		Replace(start, s.At(right).Text).
		Replace(right, s.Text(start, left))
	for j := start + 1; j <= left; j++ {
		cs.Delete(j)
	}
	sc.Error(diag.StyNotYoda, idx, "Use Yoda conditions when checking a variable against a literal or constant", cs)
	return nil
}

func inCondition(s *token.Stream, idx int) bool {
	for open, ok := s.EnclosingKind(idx, token.LParen); ok; open, ok = s.EnclosingKind(open, token.LParen) {
		if conditionOwners[s.Kind(s.PrevNonEmpty(open))] {
			return true
		}
	}
	return false
}

// variableOperand walks back from the last token of the left operand over
// $var, $var[...]... or $var->prop and returns its first token.
func variableOperand(s *token.Stream, last int) (int, bool) {
	j := last
	switch s.Kind(j) {
	case token.Variable:
		return j, true
	case token.Ident:
		arrow := s.PrevNonEmpty(j)
		if s.Kind(arrow) != token.Arrow {
			return -1, false
		}
		v := s.PrevNonEmpty(arrow)
		return v, s.Kind(v) == token.Variable
	case token.RBracket:
		for s.Kind(j) == token.RBracket {
			open, ok := s.Match(j)
			if !ok || s.Kind(open) != token.LBracket {
				return -1, false
			}
			j = s.PrevNonEmpty(open)
		}
		return j, s.Kind(j) == token.Variable
	}
	return -1, false
}

// TrailingWhitespace removes spaces and tabs at the end of lines.
type TrailingWhitespace struct{}

func (TrailingWhitespace) Name() string { return "WhiteSpace.SuperfluousWhitespace" }
func (TrailingWhitespace) Kinds() []token.Kind {
	return []token.Kind{token.Whitespace, token.Comment, token.DocComment}
}
func (TrailingWhitespace) Codes() []diag.Code { return []diag.Code{diag.StyTrailingWhitespace} }

func (TrailingWhitespace) Process(sc *engine.Scan, idx int) error {
	tok := sc.Token(idx)
	atEOF := sc.Stream.Kind(idx+1) == token.EOF
	lastIsLine := atEOF || strings.HasPrefix(sc.Stream.At(idx+1).Text, "\n")
	if tok.Kind == token.Comment {
		lastIsLine = lastIsLine && (strings.HasPrefix(tok.Text, "//") || strings.HasPrefix(tok.Text, "#"))
	} else if tok.Kind == token.DocComment {
		lastIsLine = false
	}

	lines := strings.Split(tok.Text, "\n")
	for i := range lines {
		if i == len(lines)-1 && !lastIsLine {
			break
		}
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	fixed := strings.Join(lines, "\n")
	if fixed == tok.Text {
		return nil
	}
	sc.Error(diag.StyTrailingWhitespace, idx, "Whitespace found at end of line", sc.Fix("trim trailing whitespace").Replace(idx, fixed))
	return nil
}
