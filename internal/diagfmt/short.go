package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"phpsniff/internal/diag"
	"phpsniff/internal/source"
)

// Short writes one line per diagnostic:
//
//	<path>:<line>:<col>: <severity> <CODE> <sniff code>: <message>
//
// Multi-line messages are folded onto the line.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		fixable := ""
		if d.Fixable() {
			fixable = " (fixable)"
		}
		fmt.Fprintf(w, "%s:%d:%d: %s %s %s: %s%s\n",
			displayPath(fs, d.Primary.File, mode), start.Line, start.Col,
			severityWord(d.Severity), d.Code.ID(), d.Code.Name(), oneLine(d.Message), fixable)
	}
}

func severityWord(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
