package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/diag"
	"phpsniff/internal/source"
)

func TestJSONDiagnostic(t *testing.T) {
	fs, bag := sampleBag(t)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, 1, out.Errors)
	assert.Equal(t, 0, out.Warnings)
	assert.Equal(t, 1, out.Fixable)

	require.Len(t, out.Diagnostics, 1)
	d := out.Diagnostics[0]
	assert.Equal(t, "ERROR", d.Severity)
	assert.Equal(t, "TRN3001", d.Code)
	assert.Equal(t, "Strings.Context.MissingContext", d.Sniff)
	assert.Equal(t, uint32(2), d.Line)
	assert.True(t, d.Fixable)
	assert.Equal(t, LocationJSON{
		File: "settings.php", StartByte: 15, EndByte: 17,
		StartLine: 2, StartCol: 10, EndLine: 2, EndCol: 12,
	}, d.Location)

	require.Len(t, d.Notes, 1)
	assert.Equal(t, "assigned here", d.Notes[0].Message)

	require.Len(t, d.Fixes, 1)
	assert.Equal(t, "safe-with-heuristics", d.Fixes[0].Applicability)
	assert.Equal(t, []FixEditJSON{
		{Token: 5, Op: "replace", Text: "_x"},
		{Token: 9, Op: "insert-after", Text: ", 'Automator'"},
	}, d.Fixes[0].Edits)
}

func TestJSONWithoutOptionalParts(t *testing.T) {
	fs, bag := sampleBag(t)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeBasename})
	require.Len(t, out.Diagnostics, 1)
	d := out.Diagnostics[0]
	assert.Zero(t, d.Location.StartLine)
	assert.Nil(t, d.Notes)
	assert.Nil(t, d.Fixes)
	assert.True(t, d.Fixable)
}

func TestJSONMaxKeepsTotals(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("many.php", []byte("<?php\n$a = 1;   \n$b = 2;   \n$c = 3;   \n"))
	bag := diag.NewBag(10)
	for i, off := range []uint32{13, 24, 35} {
		d := diag.NewWarning(diag.StyTrailingWhitespace, source.Span{File: id, Start: off, End: off + 3}, "Whitespace found at end of line")
		d.Line = uint32(i + 2) // #nosec G115 -- small loop index
		bag.Add(d)
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	assert.Equal(t, 2, out.Count)
	assert.Len(t, out.Diagnostics, 2)
	assert.Equal(t, 3, out.Warnings)
}

func TestSarif(t *testing.T) {
	fs, bag := sampleBag(t)

	var buf bytes.Buffer
	require.NoError(t, Sarif(&buf, bag, fs, SarifRunMeta{
		ToolName:       "phpsniff",
		ToolVersion:    "1.2.3",
		InvocationArgs: []string{"check", "src"},
		Rules: []RuleMeta{{
			Name: "Strings.Context",
			Codes: []CodeMeta{{
				ID:    diag.TrnMissingContext.ID(),
				Name:  diag.TrnMissingContext.Name(),
				Title: diag.TrnMissingContext.Title(),
			}},
		}},
	}))

	var log map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log["version"])

	runs := log["runs"].([]any)
	require.Len(t, runs, 1)
	run := runs[0].(map[string]any)

	driver := run["tool"].(map[string]any)["driver"].(map[string]any)
	assert.Equal(t, "phpsniff", driver["name"])
	assert.Equal(t, "1.2.3", driver["version"])
	rules := driver["rules"].([]any)
	require.Len(t, rules, 1)
	assert.Equal(t, "TRN3001", rules[0].(map[string]any)["id"])

	results := run["results"].([]any)
	require.Len(t, results, 1)
	res := results[0].(map[string]any)
	assert.Equal(t, "TRN3001", res["ruleId"])
	assert.InDelta(t, 0, res["ruleIndex"], 0)
	assert.Equal(t, "error", res["level"])

	loc := res["locations"].([]any)[0].(map[string]any)["physicalLocation"].(map[string]any)
	assert.Equal(t, "/home/dev/plugin/src/core/settings.php", loc["artifactLocation"].(map[string]any)["uri"])
	region := loc["region"].(map[string]any)
	assert.InDelta(t, 2, region["startLine"], 0)
	assert.InDelta(t, 10, region["startColumn"], 0)
	assert.Len(t, res["relatedLocations"], 1)
}
