package diag

import "phpsniff/internal/source"

// finding identifies a diagnostic for deduplication. Two sniffs may flag the
// same token; only the same code at the same token with the same message
// counts as a repeat.
type finding struct {
	code  Code
	file  source.FileID
	token int
	start uint32
	msg   string
}

// DedupReporter forwards each distinct finding once. The first report wins,
// so a later duplicate with a different severity or fix set is dropped.
type DedupReporter struct {
	next Reporter
	seen map[finding]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[finding]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	k := finding{code: d.Code, file: d.Primary.File, token: d.Token, start: d.Primary.Start, msg: d.Message}
	if _, dup := r.seen[k]; dup {
		return
	}
	r.seen[k] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}
