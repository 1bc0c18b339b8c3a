package diag

import (
	"fmt"
	"slices"
	"strings"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Tokenizer
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexUnterminatedHeredoc Code = 1004

	// Engine and driver
	IntRuleError         Code = 1101
	IntFixerUnconverged  Code = 1102
	IntScanTimeout       Code = 1103
	IntFileError         Code = 1104
	IntFixConflict       Code = 1105
	IntFixerNotAvailable Code = 1106

	// Casing
	CasIncorrectReservedWord Code = 2001
	CasPotentialCaseIssue    Code = 2002
	CasCapitalizedWords      Code = 2003

	// Translation
	TrnMissingContext                Code = 3001
	TrnUnescapedTranslation          Code = 3002
	TrnMissingTranslatorComment      Code = 3003
	TrnInsufficientTranslatorComment Code = 3004
	TrnMissingTextdomain             Code = 3005
	TrnInvalidTextdomain             Code = 3006
	TrnHTMLInTranslation             Code = 3007
	TrnEscapedQuotes                 Code = 3008

	// Documentation
	DocMissingFunctionComment    Code = 4001
	DocMissingConstructorComment Code = 4002
	DocInvalidFormat             Code = 4003

	// Compatibility
	CmpNullCoalescingAssignment Code = 5001
	CmpArraySpread              Code = 5002
	CmpTypedProperty            Code = 5003
	CmpArrowFunction            Code = 5004
	CmpNamedArgument            Code = 5005
	CmpNullsafeOperator         Code = 5006
	CmpMatchExpression          Code = 5007
	CmpAttribute                Code = 5008
	CmpConstructorPromotion     Code = 5009
	CmpUnionType                Code = 5010
	CmpForbiddenFeature         Code = 5011

	// Style
	StyNotYoda            Code = 6001
	StyForbiddenFunction  Code = 6002
	StyTrailingWhitespace Code = 6003
)

type codeInfo struct {
	name  string // PHPCS-style sniff code
	title string
}

var codeTable = map[Code]codeInfo{
	UnknownCode: {"Internal.Unknown", "unknown diagnostic"},

	LexUnknownChar:         {"Internal.Tokenizer.UnknownCharacter", "unexpected character"},
	LexUnterminatedString:  {"Internal.Tokenizer.UnterminatedString", "unterminated string literal"},
	LexUnterminatedComment: {"Internal.Tokenizer.UnterminatedComment", "unterminated block comment"},
	LexUnterminatedHeredoc: {"Internal.Tokenizer.UnterminatedHeredoc", "unterminated heredoc"},

	IntRuleError:         {"Internal.RuleError", "rule failed on a token"},
	IntFixerUnconverged:  {"Internal.FixerLoop.Unconverged", "fixes did not reach a fixed point"},
	IntScanTimeout:       {"Internal.Scan.Timeout", "file scan timed out"},
	IntFileError:         {"Internal.File.Error", "file could not be processed"},
	IntFixConflict:       {"Internal.Fixer.Conflict", "fix conflicts with another fix"},
	IntFixerNotAvailable: {"Internal.Fixer.NotAvailable", "fix could not be built"},

	CasIncorrectReservedWord: {"Strings.SentenceCase.IncorrectReservedWordCase", "reserved word has incorrect case"},
	CasPotentialCaseIssue:    {"Strings.SentenceCase.PotentialCaseIssue", "word might need case correction"},
	CasCapitalizedWords:      {"Strings.IntegrationSentenceCase.CapitalizedWords", "string is not in sentence case"},

	TrnMissingContext:                {"Strings.Context.MissingContext", "translation call lacks a context argument"},
	TrnUnescapedTranslation:          {"Strings.TranslationFunction.UnescapedTranslation", "translation output is not escaped"},
	TrnMissingTranslatorComment:      {"Strings.TranslatorComment.MissingTranslatorComment", "placeholder string lacks a translators comment"},
	TrnInsufficientTranslatorComment: {"Strings.TranslatorComment.InsufficientTranslatorComment", "translators comment is too short"},
	TrnMissingTextdomain:             {"Strings.TextDomain.MissingTextdomain", "translation call lacks a text domain"},
	TrnInvalidTextdomain:             {"Strings.TextDomain.InvalidTextdomain", "text domain is not allowed"},
	TrnHTMLInTranslation:             {"Strings.TranslationHtml.HTMLInTranslation", "HTML inside translatable string"},
	TrnEscapedQuotes:                 {"Strings.StringQuoting.EscapedQuotes", "escaped quotes in single-quoted string"},

	DocMissingFunctionComment:    {"Commenting.FunctionComment.MissingFunctionComment", "function has no doc comment"},
	DocMissingConstructorComment: {"Commenting.FunctionComment.MissingConstructorComment", "constructor has no doc comment"},
	DocInvalidFormat:             {"Commenting.FunctionDocBlock.InvalidFormat", "function comment is not a doc comment"},

	CmpNullCoalescingAssignment: {"Compatibility.PHP74.NullCoalescingAssignment", "??= requires PHP 7.4"},
	CmpArraySpread:              {"Compatibility.PHP74.ArraySpread", "array unpacking requires PHP 7.4"},
	CmpTypedProperty:            {"Compatibility.PHP74.TypedProperty", "typed properties require PHP 7.4"},
	CmpArrowFunction:            {"Compatibility.PHP74.ArrowFunction", "arrow functions require PHP 7.4"},
	CmpNamedArgument:            {"Compatibility.PHP80.NamedArgument", "named arguments require PHP 8.0"},
	CmpNullsafeOperator:         {"Compatibility.PHP80.NullsafeOperator", "?-> requires PHP 8.0"},
	CmpMatchExpression:          {"Compatibility.PHP80.MatchExpression", "match requires PHP 8.0"},
	CmpAttribute:                {"Compatibility.PHP80.Attribute", "attributes require PHP 8.0"},
	CmpConstructorPromotion:     {"Compatibility.PHP80.ConstructorPropertyPromotion", "constructor promotion requires PHP 8.0"},
	CmpUnionType:                {"Compatibility.PHP80.UnionType", "union types require PHP 8.0"},
	CmpForbiddenFeature:         {"Compatibility.PHP80.ForbiddenFeature", "PHP 8 keyword or type"},

	StyNotYoda:            {"ControlStructures.YodaConditions.NotYoda", "comparison is not in Yoda order"},
	StyForbiddenFunction:  {"Functions.ForbiddenFunctions.ForbiddenFunction", "function is forbidden"},
	StyTrailingWhitespace: {"WhiteSpace.SuperfluousWhitespace.EndLine", "trailing whitespace"},
}

// ID returns the short identifier, e.g. CAS2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 1100:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 1100 && ic < 2000:
		return fmt.Sprintf("INT%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CAS%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TRN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("DOC%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CMP%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("STY%04d", ic)
	}
	return "E0000"
}

// Name returns the dotted sniff code, e.g. Strings.SentenceCase.IncorrectReservedWordCase.
func (c Code) Name() string {
	info, ok := codeTable[c]
	if !ok {
		return codeTable[UnknownCode].name
	}
	return info.name
}

// Rule returns the sniff the code belongs to: Name without its last segment.
func (c Code) Rule() string {
	name := c.Name()
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

func (c Code) Title() string {
	info, ok := codeTable[c]
	if !ok {
		return codeTable[UnknownCode].title
	}
	return info.title
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode resolves a short id (CAS2001) or a dotted name.
func ParseCode(s string) (Code, bool) {
	for c, info := range codeTable {
		if c == UnknownCode {
			continue
		}
		if strings.EqualFold(s, c.ID()) || s == info.name {
			return c, true
		}
	}
	return UnknownCode, false
}

// Codes returns every known code in ascending order.
func Codes() []Code {
	out := make([]Code, 0, len(codeTable))
	for c := range codeTable {
		if c != UnknownCode {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}

// Matches reports whether selector names this code: short id, full name or rule prefix.
func (c Code) Matches(selector string) bool {
	if selector == "" {
		return false
	}
	name := c.Name()
	return strings.EqualFold(selector, c.ID()) ||
		selector == name ||
		strings.HasPrefix(name, selector+".")
}
