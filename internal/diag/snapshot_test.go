package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"phpsniff/internal/source"
)

func TestSnapshot(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	userFile := fs.Add("/workspace/src/plugin.php", []byte("a\nb\n"), 0)
	vendorFile := fs.Add("/workspace/vendor/lib.php", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     CasPotentialCaseIssue,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     CasIncorrectReservedWord,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes:    []Note{{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "see here"}},
			Fixes: []Fix{{
				Title:         "use API",
				Applicability: AlwaysSafe,
				Edits:         []TokenEdit{{Token: 0, Op: EditReplace, Text: "A"}},
			}},
		},
		{
			Severity: SevError,
			Code:     StyNotYoda,
			Message:  "vendored",
			Primary:  source.Span{File: vendorFile, Start: 0, End: 1},
		},
	}

	got := Snapshot(diags, fs, SnapshotOptions{Notes: true, Fixes: true, SkipVendor: true})
	want := "src/plugin.php:1:1 error Strings.SentenceCase.IncorrectReservedWordCase: first line second [fixable]\n" +
		"  note: src/plugin.php:2:1 see here\n" +
		"  fix: use API (always-safe) replace@0=\"A\"\n" +
		"src/plugin.php:2:1 warning Strings.SentenceCase.PotentialCaseIssue: another\n"
	assert.Equal(t, want, got)

	withVendor := Snapshot(diags, fs, SnapshotOptions{})
	assert.Contains(t, withVendor, "vendor/lib.php:1:1 error ControlStructures.YodaConditions.NotYoda: vendored\n")
	assert.NotContains(t, withVendor, "note:")
}

func TestSnapshotWithoutFileSet(t *testing.T) {
	d := NewWarning(StyTrailingWhitespace, source.Span{}, "Whitespace found at end of line")
	d.Line = 4
	assert.Equal(t, "4 warning WhiteSpace.SuperfluousWhitespace.EndLine: Whitespace found at end of line\n",
		Snapshot([]Diagnostic{d}, nil, SnapshotOptions{}))
	assert.Empty(t, Snapshot(nil, nil, SnapshotOptions{}))
}
