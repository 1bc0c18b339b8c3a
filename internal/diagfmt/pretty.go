package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"phpsniff/internal/diag"
	"phpsniff/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note, fix *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.FgMagenta),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
		fix:    mk(color.FgGreen),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes the diagnostics of bag (sorted beforehand) in human-readable
// form:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with a ^~~~ underline under the span, then notes
// and fixes when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := displayPath(fs, d.Primary.File, opts.PathMode)

	msg := strings.ReplaceAll(d.Message, "\n", "\n    ")
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s",
		p.path.Sprint(path), start.Line, start.Col,
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()), msg)
	if d.Fixable() {
		fmt.Fprint(w, p.fix.Sprint(" [fixable]"))
	}
	fmt.Fprintln(w)

	if d.Token != diag.NoToken {
		writeSnippet(w, f, start, end, opts.Context, p)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
				displayPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
	if opts.ShowFixes {
		for i, fx := range d.Fixes {
			fmt.Fprintf(w, "  %s %s (%s, %d edits)\n",
				p.fix.Sprintf("fix #%d:", i+1), fx.Title, fx.Applicability, len(fx.Edits))
			for _, e := range fx.Edits {
				if e.Op == diag.EditDelete {
					fmt.Fprintf(w, "      %s token %d\n", e.Op, e.Token)
					continue
				}
				fmt.Fprintf(w, "      %s token %d apply=%q\n", e.Op, e.Token, e.Text)
			}
		}
	}
}

func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, context int8, p palette) {
	first := max(int(start.Line)-int(context), 1)
	last := min(int(start.Line)+int(context), f.LineCount())
	width := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		line := f.GetLine(uint32(ln)) // #nosec G115 -- bounded by LineCount
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), line)
		if ln != int(start.Line) {
			continue
		}
		col := min(int(start.Col)-1, len(line))
		endCol := len(line)
		if end.Line == start.Line {
			endCol = min(max(int(end.Col)-1, col), len(line))
		}
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""),
			padTo(line[:col]), p.caret.Sprint(underline(line[col:endCol])))
	}
}

// padTo returns blanks covering prefix on screen, keeping tabs so the caret
// lines up whatever the tab width.
func padTo(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func underline(text string) string {
	n := max(runewidth.StringWidth(text), 1)
	return "^" + strings.Repeat("~", n-1)
}
