package token

import "strconv"

var kindNames = [...]string{
	Invalid:        "Invalid",
	EOF:            "EOF",
	InlineHTML:     "InlineHTML",
	OpenTag:        "OpenTag",
	OpenTagEcho:    "OpenTagEcho",
	CloseTag:       "CloseTag",
	Whitespace:     "Whitespace",
	Comment:        "Comment",
	DocComment:     "DocComment",
	Variable:       "Variable",
	Ident:          "Ident",
	ConstString:    "ConstString",
	InterpString:   "InterpString",
	Heredoc:        "Heredoc",
	IntLit:         "IntLit",
	FloatLit:       "FloatLit",
	LParen:         "LParen",
	RParen:         "RParen",
	LBrace:         "LBrace",
	RBrace:         "RBrace",
	LBracket:       "LBracket",
	RBracket:       "RBracket",
	AttributeOpen:  "AttributeOpen",
	Comma:          "Comma",
	Semicolon:      "Semicolon",
	Colon:          "Colon",
	DoubleColon:    "DoubleColon",
	NsSeparator:    "NsSeparator",
	Arrow:          "Arrow",
	NullsafeArrow:  "NullsafeArrow",
	DoubleArrow:    "DoubleArrow",
	Ellipsis:       "Ellipsis",
	Question:       "Question",
	Dollar:         "Dollar",
	At:             "At",
	Assign:         "Assign",
	AssignOp:       "AssignOp",
	CoalesceAssign: "CoalesceAssign",
	Coalesce:       "Coalesce",
	EqEq:           "EqEq",
	Identical:      "Identical",
	NotEq:          "NotEq",
	NotIdentical:   "NotIdentical",
	Lt:             "Lt",
	Gt:             "Gt",
	LtEq:           "LtEq",
	GtEq:           "GtEq",
	Spaceship:      "Spaceship",
	Plus:           "Plus",
	Minus:          "Minus",
	Star:           "Star",
	Pow:            "Pow",
	Slash:          "Slash",
	Percent:        "Percent",
	Dot:            "Dot",
	Bang:           "Bang",
	Amp:            "Amp",
	Pipe:           "Pipe",
	Caret:          "Caret",
	Tilde:          "Tilde",
	AndAnd:         "AndAnd",
	OrOr:           "OrOr",
	Shl:            "Shl",
	Shr:            "Shr",
	Inc:            "Inc",
	Dec:            "Dec",
	kindCount:      "",
}

func (k Kind) String() string {
	if k.IsKeyword() {
		if name, ok := keywordNames[k]; ok {
			return "Kw(" + name + ")"
		}
	}
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
