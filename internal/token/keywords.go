package token

import "strings"

var keywords = map[string]Kind{
	"abstract":     KwAbstract,
	"and":          KwAnd,
	"array":        KwArray,
	"as":           KwAs,
	"break":        KwBreak,
	"callable":     KwCallable,
	"case":         KwCase,
	"catch":        KwCatch,
	"class":        KwClass,
	"clone":        KwClone,
	"const":        KwConst,
	"continue":     KwContinue,
	"declare":      KwDeclare,
	"default":      KwDefault,
	"do":           KwDo,
	"echo":         KwEcho,
	"else":         KwElse,
	"elseif":       KwElseif,
	"empty":        KwEmpty,
	"extends":      KwExtends,
	"false":        KwFalse,
	"final":        KwFinal,
	"finally":      KwFinally,
	"fn":           KwFn,
	"for":          KwFor,
	"foreach":      KwForeach,
	"function":     KwFunction,
	"global":       KwGlobal,
	"goto":         KwGoto,
	"if":           KwIf,
	"implements":   KwImplements,
	"include":      KwInclude,
	"include_once": KwInclude,
	"instanceof":   KwInstanceof,
	"insteadof":    KwInsteadof,
	"interface":    KwInterface,
	"isset":        KwIsset,
	"list":         KwList,
	"namespace":    KwNamespace,
	"new":          KwNew,
	"null":         KwNull,
	"or":           KwOr,
	"print":        KwPrint,
	"private":      KwPrivate,
	"protected":    KwProtected,
	"public":       KwPublic,
	"require":      KwRequire,
	"require_once": KwRequire,
	"return":       KwReturn,
	"static":       KwStatic,
	"switch":       KwSwitch,
	"throw":        KwThrow,
	"trait":        KwTrait,
	"true":         KwTrue,
	"try":          KwTry,
	"unset":        KwUnset,
	"use":          KwUse,
	"var":          KwVar,
	"while":        KwWhile,
	"xor":          KwXor,
	"yield":        KwYield,
}

var keywordNames = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords)+1)
	for name, k := range keywords {
		if prev, ok := out[k]; ok && prev < name {
			continue
		}
		out[k] = name
	}
	out[KwMatch] = "match"
	return out
}()

// LookupKeyword reports the keyword kind for ident. PHP keywords are case-insensitive.
// "match" is not in the table: it is only a keyword before "(" and the lexer decides that.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(ident)]
	return k, ok
}
