package diag

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/source"
)

func TestCodeIdentity(t *testing.T) {
	assert.Equal(t, "CAS2001", CasIncorrectReservedWord.ID())
	assert.Equal(t, "STY6003", StyTrailingWhitespace.ID())
	assert.Equal(t, "WhiteSpace.SuperfluousWhitespace.EndLine", StyTrailingWhitespace.Name())
	assert.Equal(t, "WhiteSpace.SuperfluousWhitespace", StyTrailingWhitespace.Rule())

	c, ok := ParseCode("sty6003")
	require.True(t, ok)
	assert.Equal(t, StyTrailingWhitespace, c)
	c, ok = ParseCode("ControlStructures.YodaConditions.NotYoda")
	require.True(t, ok)
	assert.Equal(t, StyNotYoda, c)
	_, ok = ParseCode("Nope.Nope")
	assert.False(t, ok)

	codes := Codes()
	assert.True(t, slices.IsSorted(codes))
	assert.NotContains(t, codes, UnknownCode)
}

func TestCodeMatches(t *testing.T) {
	assert.True(t, StyTrailingWhitespace.Matches("STY6003"))
	assert.True(t, StyTrailingWhitespace.Matches("WhiteSpace.SuperfluousWhitespace"))
	assert.True(t, StyTrailingWhitespace.Matches("WhiteSpace"))
	assert.False(t, StyTrailingWhitespace.Matches("WhiteSpace.Superfluous"))
	assert.False(t, StyTrailingWhitespace.Matches(""))
}

func TestBagLimitAndCounts(t *testing.T) {
	bag := NewBag(2)
	fixable := NewError(StyTrailingWhitespace, source.Span{Start: 5, End: 6}, "ws").
		WithFix(Fix{Title: "trim", Edits: []TokenEdit{{Token: 1, Op: EditDelete}}})
	assert.True(t, bag.Add(NewWarning(StyNotYoda, source.Span{Start: 9, End: 10}, "yoda")))
	assert.True(t, bag.Add(fixable))
	assert.False(t, bag.Add(NewError(StyNotYoda, source.Span{}, "dropped")))

	assert.Equal(t, 2, bag.Len())
	assert.Equal(t, 1, bag.Dropped())
	assert.True(t, bag.HasErrors())
	errs, warns, fix := bag.Counts()
	assert.Equal(t, []int{1, 1, 1}, []int{errs, warns, fix})

	bag.Sort()
	assert.Equal(t, uint32(5), bag.Items()[0].Primary.Start)
}

func TestBagSortBreaksTiesBySeverityThenCode(t *testing.T) {
	bag := NewBag(0)
	sp := source.Span{Start: 1, End: 2}
	bag.Add(NewWarning(StyTrailingWhitespace, sp, "b"))
	bag.Add(NewWarning(StyNotYoda, sp, "a"))
	bag.Add(NewError(StyTrailingWhitespace, sp, "c"))
	bag.Sort()
	items := bag.Items()
	assert.Equal(t, SevError, items[0].Severity)
	assert.Equal(t, StyNotYoda, items[1].Code)
	assert.Equal(t, StyTrailingWhitespace, items[2].Code)
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	rep := NewDedupReporter(BagReporter{Bag: bag})
	d := NewError(StyNotYoda, source.Span{Start: 3, End: 4}, "flip it")
	d.Token = 2
	rep.Report(d)
	rep.Report(d)
	other := d
	other.Token = 5
	rep.Report(other)
	assert.Equal(t, 2, bag.Len())

	var nilRep *DedupReporter
	assert.NotPanics(t, func() { nilRep.Report(d) })
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, StyNotYoda, source.Span{}, "m").
		WithToken(4, 7).
		WithNote(source.Span{}, "n")
	b.Emit()
	b.Emit()
	require.Equal(t, 1, bag.Len())
	got := bag.Items()[0]
	assert.Equal(t, 4, got.Token)
	assert.Equal(t, uint32(7), got.Line)
	assert.Len(t, got.Notes, 1)
}

func TestFixableAndStrings(t *testing.T) {
	d := NewWarning(StyNotYoda, source.Span{}, "m")
	assert.False(t, d.Fixable())
	assert.Equal(t, "always-safe", AlwaysSafe.String())
	assert.Equal(t, "insert-before", EditInsertBefore.String())
	assert.Equal(t, "WARNING", SevWarning.String())
	assert.Equal(t, "INFO", SevInfo.String())
	assert.Equal(t, "UNKNOWN", Severity(9).String())
	assert.True(t, SevWarning < SevError)
}
