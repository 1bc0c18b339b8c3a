package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"phpsniff/internal/source"
)

// SnapshotOptions selects what Snapshot renders.
type SnapshotOptions struct {
	Notes bool
	Fixes bool
	// SkipVendor drops entries whose path has a vendor/ segment.
	SkipVendor bool
}

type snapshotEntry struct {
	path    string
	line    uint32
	col     uint32
	sev     Severity
	code    Code
	message string
	fixable bool
	extra   []string
}

// Snapshot renders diagnostics as stable text, one line per diagnostic:
//
//	src/a.php:3:9 error Strings.Context.MissingContext: message [fixable]
//
// Entries are sorted by path and position; notes and fixes follow their
// diagnostic, indented. With a nil fs positions come from Diagnostic.Line and
// the path and column are left out.
func Snapshot(diags []Diagnostic, fs *source.FileSet, opts SnapshotOptions) string {
	entries := make([]snapshotEntry, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		e := snapshotEntry{sev: d.Severity, code: d.Code, message: flatten(d.Message), fixable: d.Fixable(), line: d.Line}
		if fs != nil {
			e.path, e.line, e.col = locate(fs, d.Primary)
			if opts.SkipVendor && inVendor(e.path) {
				continue
			}
		}
		if opts.Notes {
			for _, n := range d.Notes {
				where := ""
				if fs != nil {
					p, l, c := locate(fs, n.Span)
					where = fmt.Sprintf("%s:%d:%d ", p, l, c)
				}
				e.extra = append(e.extra, "note: "+where+flatten(n.Msg))
			}
		}
		if opts.Fixes {
			for _, f := range d.Fixes {
				parts := make([]string, 0, len(f.Edits))
				for _, ed := range f.Edits {
					parts = append(parts, fmt.Sprintf("%s@%d=%q", ed.Op, ed.Token, ed.Text))
				}
				e.extra = append(e.extra, fmt.Sprintf("fix: %s (%s) %s", f.Title, f.Applicability, strings.Join(parts, " ")))
			}
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.path != b.path {
			return a.path < b.path
		}
		if a.line != b.line {
			return a.line < b.line
		}
		if a.col != b.col {
			return a.col < b.col
		}
		if a.sev != b.sev {
			return a.sev > b.sev
		}
		return a.code < b.code
	})

	var b strings.Builder
	for _, e := range entries {
		if e.path != "" {
			fmt.Fprintf(&b, "%s:%d:%d ", e.path, e.line, e.col)
		} else {
			fmt.Fprintf(&b, "%d ", e.line)
		}
		fmt.Fprintf(&b, "%s %s: %s", strings.ToLower(e.sev.String()), e.code.Name(), e.message)
		if e.fixable {
			b.WriteString(" [fixable]")
		}
		b.WriteByte('\n')
		for _, x := range e.extra {
			b.WriteString("  " + x + "\n")
		}
	}
	return b.String()
}

func locate(fs *source.FileSet, span source.Span) (path string, line, col uint32) {
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	path = filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	return strings.TrimPrefix(path, "./"), start.Line, start.Col
}

func inVendor(path string) bool {
	p := strings.TrimLeft(path, "/")
	return strings.HasPrefix(p, "vendor/") || strings.Contains(p, "/vendor/")
}

func flatten(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
