package diag

import (
	"phpsniff/internal/source"
)

// NoToken marks diagnostics that are not anchored to a token (file-level problems).
const NoToken = -1

type Note struct {
	Span source.Span
	Msg  string
}

// Applicability tells the fixer how much to trust a fix.
type Applicability uint8

const (
	// AlwaysSafe fixes are mechanical and never change behaviour.
	AlwaysSafe Applicability = iota
	// SafeWithHeuristics fixes rely on a heuristic but are applied by default.
	SafeWithHeuristics
	// ManualReview fixes are suggestions only and never applied automatically.
	ManualReview
)

func (a Applicability) String() string {
	switch a {
	case AlwaysSafe:
		return "always-safe"
	case SafeWithHeuristics:
		return "safe-with-heuristics"
	case ManualReview:
		return "manual-review"
	}
	return "unknown"
}

// EditOp is the kind of change a TokenEdit makes.
type EditOp uint8

const (
	EditReplace EditOp = iota
	EditInsertBefore
	EditInsertAfter
	EditDelete
)

func (op EditOp) String() string {
	switch op {
	case EditReplace:
		return "replace"
	case EditInsertBefore:
		return "insert-before"
	case EditInsertAfter:
		return "insert-after"
	case EditDelete:
		return "delete"
	}
	return "unknown"
}

// TokenEdit changes one token of the stream the fix was built against.
type TokenEdit struct {
	Token int
	Op    EditOp
	Text  string
}

// Fix is a committed changeset: edits in queue order plus metadata.
type Fix struct {
	ID            string
	Title         string
	Applicability Applicability
	Edits         []TokenEdit
}

// Tokens returns the distinct token indices the fix touches, in first-seen order.
func (f Fix) Tokens() []int {
	out := make([]int, 0, len(f.Edits))
	seen := make(map[int]struct{}, len(f.Edits))
	for _, e := range f.Edits {
		if _, ok := seen[e.Token]; ok {
			continue
		}
		seen[e.Token] = struct{}{}
		out = append(out, e.Token)
	}
	return out
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Token    int
	Line     uint32
	Notes    []Note
	Fixes    []Fix
}

// Fixable reports whether the fixer may apply one of the diagnostic's fixes on its own.
func (d Diagnostic) Fixable() bool {
	for _, f := range d.Fixes {
		if f.Applicability != ManualReview && len(f.Edits) > 0 {
			return true
		}
	}
	return false
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
		Token:    NoToken,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}

// Unfixed drops the diagnostic's fixes and records why.
func (d Diagnostic) Unfixed(reason string) Diagnostic {
	d.Fixes = nil
	return d.WithNote(d.Primary, reason)
}
