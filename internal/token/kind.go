package token

// Kind represents the category of a PHP source token.
type Kind uint8

const (
	// Invalid indicates a byte sequence the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of the source input. It has an empty span at len(content).
	EOF

	// InlineHTML is any text outside <?php ... ?>.
	InlineHTML
	// OpenTag is <?php or <? including one trailing whitespace byte.
	OpenTag
	// OpenTagEcho is <?=.
	OpenTagEcho
	// CloseTag is ?> including one trailing newline.
	CloseTag

	// Whitespace is a run of spaces, tabs and newlines.
	Whitespace
	// Comment is a //, # or /* */ comment. Line comments exclude the newline.
	Comment
	// DocComment is a /** */ comment.
	DocComment

	// Variable is $name.
	Variable
	// Ident is a bare name: function, class, constant or type name.
	Ident
	// ConstString is a quoted string without interpolation.
	ConstString
	// InterpString is a double-quoted or backtick string with interpolation.
	InterpString
	// Heredoc covers a whole heredoc or nowdoc including its closing label.
	Heredoc
	// IntLit is an integer literal.
	IntLit
	// FloatLit is a floating point literal.
	FloatLit

	keywordBeg
	KwAbstract
	KwAnd
	KwArray
	KwAs
	KwBreak
	KwCallable
	KwCase
	KwCatch
	KwClass
	KwClone
	KwConst
	KwContinue
	KwDeclare
	KwDefault
	KwDo
	KwEcho
	KwElse
	KwElseif
	KwEmpty
	KwExtends
	KwFalse
	KwFinal
	KwFinally
	KwFn
	KwFor
	KwForeach
	KwFunction
	KwGlobal
	KwGoto
	KwIf
	KwImplements
	KwInclude
	KwInstanceof
	KwInsteadof
	KwInterface
	KwIsset
	KwList
	KwMatch
	KwNamespace
	KwNew
	KwNull
	KwOr
	KwPrint
	KwPrivate
	KwProtected
	KwPublic
	KwRequire
	KwReturn
	KwStatic
	KwSwitch
	KwThrow
	KwTrait
	KwTrue
	KwTry
	KwUnset
	KwUse
	KwVar
	KwWhile
	KwXor
	KwYield
	keywordEnd

	// Delimiters.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	// AttributeOpen is #[ and is closed by RBracket.
	AttributeOpen

	Comma
	Semicolon
	Colon
	DoubleColon
	NsSeparator
	Arrow         // ->
	NullsafeArrow // ?->
	DoubleArrow   // =>
	Ellipsis      // ...
	Question
	Dollar
	At

	Assign         // =
	AssignOp       // += -= *= /= .= %= **= &= |= ^= <<= >>=
	CoalesceAssign // ??=
	Coalesce       // ??

	EqEq         // ==
	Identical    // ===
	NotEq        // != and <>
	NotIdentical // !==
	Lt
	Gt
	LtEq
	GtEq
	Spaceship // <=>

	Plus
	Minus
	Star
	Pow
	Slash
	Percent
	Dot
	Bang
	Amp
	Pipe
	Caret
	Tilde
	AndAnd
	OrOr
	Shl
	Shr
	Inc
	Dec

	kindCount
)

// NumKinds returns the number of token kinds, for tables indexed by Kind.
func NumKinds() int { return int(kindCount) }

// IsKeyword reports whether k is a reserved PHP keyword.
func (k Kind) IsKeyword() bool {
	return k > keywordBeg && k < keywordEnd
}

// IsEmpty reports whether tokens of kind k carry no code: whitespace and comments.
func (k Kind) IsEmpty() bool {
	return k == Whitespace || k == Comment || k == DocComment
}

// IsString reports whether k is any string literal kind.
func (k Kind) IsString() bool {
	return k == ConstString || k == InterpString || k == Heredoc
}

// IsComparison reports whether k is an equality operator.
func (k Kind) IsComparison() bool {
	switch k {
	case EqEq, Identical, NotEq, NotIdentical:
		return true
	default:
		return false
	}
}

// IsOpener reports whether k starts a paired delimiter.
func (k Kind) IsOpener() bool {
	return k == LParen || k == LBrace || k == LBracket || k == AttributeOpen
}

// IsCloser reports whether k ends a paired delimiter.
func (k Kind) IsCloser() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// Closes reports whether closer k pairs with opener open.
func (k Kind) Closes(open Kind) bool {
	switch k {
	case RParen:
		return open == LParen
	case RBrace:
		return open == LBrace
	case RBracket:
		return open == LBracket || open == AttributeOpen
	default:
		return false
	}
}

// IsModifier reports whether k is a visibility or declaration modifier.
func (k Kind) IsModifier() bool {
	switch k {
	case KwPublic, KwProtected, KwPrivate, KwStatic, KwAbstract, KwFinal, KwVar:
		return true
	default:
		return false
	}
}

// IsVisibility reports whether k is public, protected or private.
func (k Kind) IsVisibility() bool {
	return k == KwPublic || k == KwProtected || k == KwPrivate
}
