package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"slices"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/config"
	"phpsniff/internal/diag"
	"phpsniff/internal/lexer"
	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

// ctxCheckEvery is how many tokens are scanned between context checks.
const ctxCheckEvery = 512

// Engine dispatches tokens to rules. It is safe for concurrent use once built:
// all per-file state lives in Scan.
type Engine struct {
	cfg      *config.Compiled
	rules    []Rule
	dispatch [][]Rule
	disabled []string
}

// Result is the outcome of one scan.
type Result struct {
	Stream      *token.Stream
	Diagnostics []diag.Diagnostic
	// Aborted is set when the file had lex errors; Diagnostics then holds
	// only those.
	Aborted bool
}

// New builds an engine for the rules in reg that are not disabled by cfg.
func New(cfg *config.Compiled, reg *Registry) *Engine {
	e := &Engine{
		cfg:      cfg,
		dispatch: make([][]Rule, token.NumKinds()),
		disabled: slices.Clone(cfg.Config.Rules.Disable),
	}
	for _, r := range reg.Rules() {
		if e.ruleDisabled(r) {
			continue
		}
		e.rules = append(e.rules, r)
		seen := make(map[token.Kind]bool)
		for _, k := range r.Kinds() {
			if int(k) < len(e.dispatch) && !seen[k] {
				seen[k] = true
				e.dispatch[k] = append(e.dispatch[k], r)
			}
		}
	}
	return e
}

// Config returns the compiled configuration the engine runs with.
func (e *Engine) Config() *config.Compiled { return e.cfg }

// Rules returns the enabled rules in dispatch order.
func (e *Engine) Rules() []Rule { return slices.Clone(e.rules) }

func (e *Engine) ruleDisabled(r Rule) bool {
	codes := RuleCodes(r)
	for _, sel := range e.disabled {
		if sel == r.Name() {
			return true
		}
		if len(codes) == 0 {
			continue
		}
		all := true
		for _, c := range codes {
			if !c.Matches(sel) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func (e *Engine) codeDisabled(c diag.Code) bool {
	for _, sel := range e.disabled {
		if c.Matches(sel) {
			return true
		}
	}
	return false
}

// filterReporter drops diagnostics whose code is disabled.
type filterReporter struct {
	e    *Engine
	next diag.Reporter
}

func (f filterReporter) Report(d diag.Diagnostic) {
	if f.e.codeDisabled(d.Code) {
		return
	}
	f.next.Report(d)
}

// Lint tokenizes file and runs every enabled rule over it. The error is
// non-nil only when ctx ends mid-scan; Result then holds what was found so far.
func (e *Engine) Lint(ctx context.Context, file *source.File) (*Result, error) {
	bag := diag.NewBag(0)
	stream, lexErrs := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	res := &Result{Stream: stream}
	if lexErrs > 0 {
		bag.Sort()
		res.Diagnostics = bag.Items()
		res.Aborted = true
		zerolog.Ctx(ctx).Debug().Str("path", file.Path).Int("errors", lexErrs).Msg("lex errors, rules skipped")
		return res, nil
	}

	sc := newScan(ctx, stream, e.cfg, diag.NewDedupReporter(filterReporter{e: e, next: diag.BagReporter{Bag: bag}}))
	var err error
	for i := range stream.Len() {
		if i%ctxCheckEvery == 0 {
			if cerr := ctx.Err(); cerr != nil {
				err = errors.Errorf("scan %s: %w", file.Path, cerr)
				break
			}
		}
		for _, r := range e.dispatch[stream.Kind(i)] {
			e.run(sc, r, i)
		}
	}
	sc.rule = nil

	bag.Sort()
	res.Diagnostics = bag.Items()
	return res, err
}

// run calls r on token i and turns a panic or error into a diagnostic.
func (e *Engine) run(sc *Scan, r Rule, i int) {
	sc.rule = r
	defer func() {
		if p := recover(); p != nil {
			sc.Logger().Error().
				Str("rule", r.Name()).
				Str("path", sc.Path).
				Int("token", i).
				Interface("panic", p).
				Bytes("stack", debug.Stack()).
				Msg("rule panicked")
			e.ruleError(sc, r, i, fmt.Sprint(p))
		}
	}()
	if err := r.Process(sc, i); err != nil {
		sc.Logger().Error().Err(err).Str("rule", r.Name()).Str("path", sc.Path).Int("token", i).Msg("rule failed")
		e.ruleError(sc, r, i, err.Error())
	}
}

func (e *Engine) ruleError(sc *Scan, r Rule, i int, cause string) {
	tok := sc.Stream.At(i)
	diag.ReportError(sc.reporter, diag.IntRuleError, tok.Span, fmt.Sprintf("rule %s failed: %s", r.Name(), cause)).
		WithToken(i, tok.Line).
		Emit()
}
