package engine

import (
	"context"

	"github.com/rs/zerolog"

	"phpsniff/internal/config"
	"phpsniff/internal/diag"
	"phpsniff/internal/fix"
	"phpsniff/internal/token"
)

// Scan is the per-file context handed to rules. It lives for one pass.
type Scan struct {
	ctx    context.Context
	Stream *token.Stream
	Path   string
	Config *config.Compiled

	// Integration is true for files under an integration directory;
	// ContextName is the translation context derived from the path.
	Integration bool
	ContextName string

	reporter diag.Reporter
	rule     Rule
	lines    map[string]map[uint32]struct{}
	values   map[any]any
}

func newScan(ctx context.Context, stream *token.Stream, cfg *config.Compiled, r diag.Reporter) *Scan {
	path := stream.Path()
	return &Scan{
		ctx:         ctx,
		Stream:      stream,
		Path:        path,
		Config:      cfg,
		Integration: cfg.IsIntegration(path),
		ContextName: cfg.IntegrationName(path),
		reporter:    r,
		lines:       make(map[string]map[uint32]struct{}),
		values:      make(map[any]any),
	}
}

// Context returns the scan's context.
func (sc *Scan) Context() context.Context { return sc.ctx }

// Logger returns the context logger.
func (sc *Scan) Logger() *zerolog.Logger { return zerolog.Ctx(sc.ctx) }

// Token returns token i of the stream.
func (sc *Scan) Token(i int) token.Token { return sc.Stream.At(i) }

// FirstOnLine marks line as reported for the running rule. It returns false
// when the rule already reported that line during this scan.
func (sc *Scan) FirstOnLine(line uint32) bool {
	name := ""
	if sc.rule != nil {
		name = sc.rule.Name()
	}
	set := sc.lines[name]
	if set == nil {
		set = make(map[uint32]struct{})
		sc.lines[name] = set
	}
	if _, seen := set[line]; seen {
		return false
	}
	set[line] = struct{}{}
	return true
}

// Value returns a per-scan value shared between rules, building it on first use.
func (sc *Scan) Value(key any, build func() any) any {
	if v, ok := sc.values[key]; ok {
		return v
	}
	v := build()
	sc.values[key] = v
	return v
}

// Fix opens a changeset against the scan's stream.
func (sc *Scan) Fix(title string) *fix.Changeset {
	return fix.Begin(sc.Stream, title)
}

// Error reports an error anchored at token idx. A non-nil changeset is
// committed and attached; if the commit fails the diagnostic is still reported.
func (sc *Scan) Error(code diag.Code, idx int, msg string, cs *fix.Changeset, opts ...fix.Option) {
	sc.Report(diag.SevError, code, idx, msg, cs, opts...)
}

// Warning is Error with warning severity.
func (sc *Scan) Warning(code diag.Code, idx int, msg string, cs *fix.Changeset, opts ...fix.Option) {
	sc.Report(diag.SevWarning, code, idx, msg, cs, opts...)
}

func (sc *Scan) Report(sev diag.Severity, code diag.Code, idx int, msg string, cs *fix.Changeset, opts ...fix.Option) {
	tok := sc.Stream.At(idx)
	b := diag.NewReportBuilder(sc.reporter, sev, code, tok.Span, msg).WithToken(idx, tok.Line)
	if cs != nil {
		f, err := cs.Commit(opts...)
		if err != nil {
			sc.Logger().Debug().Err(err).Str("code", code.ID()).Str("path", sc.Path).Int("token", idx).Msg("fix dropped")
		} else {
			b.WithFix(f)
		}
	}
	b.Emit()
}
