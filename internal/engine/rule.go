package engine

import (
	"slices"

	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/diag"
	"phpsniff/internal/token"
)

// Rule is one sniff. Process is called for every token of a registered kind.
type Rule interface {
	Name() string
	Kinds() []token.Kind
	Process(sc *Scan, idx int) error
}

// CodeLister is implemented by rules that declare the codes they emit.
type CodeLister interface {
	Codes() []diag.Code
}

// Registry holds rules in registration order.
type Registry struct {
	rules  []Rule
	byName map[string]Rule
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Rule)}
}

// Register adds rules. Names must be unique.
func (r *Registry) Register(rules ...Rule) error {
	for _, rule := range rules {
		name := rule.Name()
		if _, dup := r.byName[name]; dup {
			return errors.Errorf("rule %q registered twice", name)
		}
		r.byName[name] = rule
		r.rules = append(r.rules, rule)
	}
	return nil
}

// MustRegister is Register that panics on duplicates.
func (r *Registry) MustRegister(rules ...Rule) *Registry {
	if err := r.Register(rules...); err != nil {
		panic(err)
	}
	return r
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []Rule { return slices.Clone(r.rules) }

// Lookup finds a rule by name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	rule, ok := r.byName[name]
	return rule, ok
}

// RuleCodes returns the codes a rule declares, or nil.
func RuleCodes(r Rule) []diag.Code {
	if cl, ok := r.(CodeLister); ok {
		return cl.Codes()
	}
	return nil
}
