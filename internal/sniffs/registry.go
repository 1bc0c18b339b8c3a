package sniffs

import "phpsniff/internal/engine"

// All returns the built-in rules in dispatch order. Whitespace runs first so
// its fixes land before rules that rewrite the same lines.
func All() []engine.Rule {
	return []engine.Rule{
		TrailingWhitespace{},
		SentenceCase{},
		IntegrationSentenceCase{},
		Context{},
		Escaping{},
		TranslatorComment{},
		TextDomain{},
		TranslationHTML{},
		StringQuoting{},
		FunctionComment{},
		Compatibility{},
		ForbiddenFunctions{},
		YodaConditions{},
	}
}

// Registry returns a registry holding All.
func Registry() *engine.Registry {
	return engine.NewRegistry().MustRegister(All()...)
}
