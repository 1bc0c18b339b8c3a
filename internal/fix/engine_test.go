package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/diag"
	"phpsniff/internal/fix"
	"phpsniff/internal/lexer"
	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

func lex(t *testing.T, src string) *token.Stream {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.php", []byte(src)))
	stream, errs := lexer.Tokenize(file, lexer.Options{})
	require.Zero(t, errs)
	return stream
}

// find returns the index of the first token with the given text.
func find(t *testing.T, s *token.Stream, text string) int {
	t.Helper()
	for i, tok := range s.Tokens {
		if tok.Text == text {
			return i
		}
	}
	t.Fatalf("token %q not found", text)
	return -1
}

func diagAt(s *token.Stream, idx int, code diag.Code, f diag.Fix) diag.Diagnostic {
	tok := s.At(idx)
	return diag.NewError(code, tok.Span, "test").WithFix(f)
}

func TestChangesetLifecycle(t *testing.T) {
	s := lex(t, "<?php $a = 'x';")
	idx := find(t, s, "'x'")

	cs := fix.Begin(s, "quote")
	cs.Replace(idx, `"x"`)
	assert.Equal(t, 1, cs.Len())

	f, err := cs.Commit(fix.WithID("q1"))
	require.NoError(t, err)
	assert.Equal(t, "q1", f.ID)
	assert.Equal(t, diag.AlwaysSafe, f.Applicability)
	assert.Equal(t, []diag.TokenEdit{{Token: idx, Op: diag.EditReplace, Text: `"x"`}}, f.Edits)
	assert.True(t, cs.Closed())

	cs.Replace(idx, "y")
	assert.ErrorIs(t, cs.Err(), fix.ErrClosed)
	_, err = cs.Commit()
	assert.ErrorIs(t, err, fix.ErrClosed)
}

func TestChangesetErrors(t *testing.T) {
	s := lex(t, "<?php $a;")

	_, err := fix.Begin(s, "empty").Commit()
	assert.ErrorIs(t, err, fix.ErrEmpty)

	_, err = fix.Begin(s, "range").Replace(0, "x").Delete(s.Len()).Commit()
	assert.ErrorIs(t, err, fix.ErrOutOfRange)

	cs := fix.Begin(s, "aborted")
	cs.Replace(1, "$b")
	cs.Abort()
	_, err = cs.Commit()
	assert.ErrorIs(t, err, fix.ErrClosed)
}

func TestApplyRendersInTokenOrder(t *testing.T) {
	s := lex(t, "<?php f( 'a', 'b' );")
	a := find(t, s, "'a'")
	b := find(t, s, "'b'")
	comma := find(t, s, ",")

	f1, err := fix.Begin(s, "ctx").
		InsertBefore(comma, ", 'Ctx'").
		Commit()
	require.NoError(t, err)
	f2, err := fix.Begin(s, "quotes").
		Replace(a, `"a"`).
		InsertAfter(b, " /* b */").
		Commit()
	require.NoError(t, err)

	diags := []diag.Diagnostic{
		diagAt(s, comma, diag.TrnMissingContext, f1),
		diagAt(s, a, diag.TrnEscapedQuotes, f2),
	}
	res, err := fix.Apply(s, diags, fix.ApplyOptions{})
	require.NoError(t, err)
	assert.Equal(t, `<?php f( "a", 'Ctx', 'b' /* b */ );`, string(res.Output))
	assert.Len(t, res.Applied, 2)
	assert.Empty(t, res.Rejected)
}

func TestApplyRejectsConflictingChangeset(t *testing.T) {
	s := lex(t, "<?php echo 'may';")
	idx := find(t, s, "'may'")

	first, err := fix.Begin(s, "first").Replace(idx, "'May'").Commit()
	require.NoError(t, err)
	second, err := fix.Begin(s, "second").Replace(idx, `"may"`).Commit()
	require.NoError(t, err)

	diags := []diag.Diagnostic{
		diagAt(s, idx, diag.CasIncorrectReservedWord, first),
		diagAt(s, idx, diag.TrnEscapedQuotes, second),
	}
	res, err := fix.Apply(s, diags, fix.ApplyOptions{})
	require.NoError(t, err)

	assert.Equal(t, "<?php echo 'May';", string(res.Output))
	require.Len(t, res.Applied, 1)
	assert.Equal(t, diag.CasIncorrectReservedWord, res.Applied[0].Code)
	assert.Equal(t, []int{1}, res.Rejected)
	require.Len(t, res.Skipped, 1)
	assert.True(t, errors.Is(res.Skipped[0].Err, fix.ErrConflict))

	fix.Downgrade(diags, res)
	assert.Empty(t, diags[1].Fixes)
	assert.Len(t, diags[1].Notes, 1)
	assert.NotEmpty(t, diags[0].Fixes)
}

func TestApplySkipsManualReview(t *testing.T) {
	s := lex(t, "<?php __( 'x' );")
	idx := find(t, s, "__")

	f, err := fix.Begin(s, "escape").Replace(idx, "esc_html__").
		Commit(fix.WithApplicability(diag.ManualReview))
	require.NoError(t, err)

	res, err := fix.Apply(s, []diag.Diagnostic{diagAt(s, idx, diag.TrnUnescapedTranslation, f)}, fix.ApplyOptions{})
	assert.ErrorIs(t, err, fix.ErrNoFixes)
	assert.Equal(t, "<?php __( 'x' );", string(res.Output))
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "requires manual review", res.Skipped[0].Reason)
}

func TestApplyModes(t *testing.T) {
	s := lex(t, "<?php $a = 1; $b = 2;")
	one := find(t, s, "1")
	two := find(t, s, "2")

	build := func() []diag.Diagnostic {
		f1, _ := fix.Begin(s, "one").Replace(one, "10").Commit()
		f2, _ := fix.Begin(s, "two").Replace(two, "20").Commit()
		return []diag.Diagnostic{
			diagAt(s, two, diag.StyNotYoda, f2),
			diagAt(s, one, diag.StyTrailingWhitespace, f1),
		}
	}

	res, err := fix.Apply(s, build(), fix.ApplyOptions{Mode: fix.ApplyModeOnce})
	require.NoError(t, err)
	assert.Equal(t, "<?php $a = 10; $b = 2;", string(res.Output))

	res, err = fix.Apply(s, build(), fix.ApplyOptions{Mode: fix.ApplyModeCode, Target: diag.StyNotYoda.ID()})
	require.NoError(t, err)
	assert.Equal(t, "<?php $a = 1; $b = 20;", string(res.Output))

	_, err = fix.Apply(s, build(), fix.ApplyOptions{Mode: fix.ApplyModeCode, Target: "CAS2001"})
	assert.ErrorIs(t, err, fix.ErrNoFixes)
}

func TestApplySkipsDuplicateFixIDs(t *testing.T) {
	s := lex(t, "<?php $a;")
	idx := find(t, s, ";")

	f1, _ := fix.Begin(s, "a").InsertAfter(idx, "\n").Commit(fix.WithID("dup"))
	f2, _ := fix.Begin(s, "b").InsertAfter(idx, "\n").Commit(fix.WithID("dup"))

	diags := []diag.Diagnostic{
		diagAt(s, idx, diag.StyTrailingWhitespace, f1),
		diagAt(s, idx, diag.StyTrailingWhitespace, f2),
	}
	res, err := fix.Apply(s, diags, fix.ApplyOptions{})
	require.NoError(t, err)
	assert.Len(t, res.Applied, 1)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "duplicate fix id", res.Skipped[0].Reason)
}

func TestApplyDeleteAndLastReplaceWins(t *testing.T) {
	s := lex(t, "<?php $a = 1 ;")
	ws := find(t, s, "1") + 1
	one := find(t, s, "1")

	f, err := fix.Begin(s, "tidy").Delete(ws).Replace(one, "2").Replace(one, "3").Commit()
	require.NoError(t, err)
	res, err := fix.Apply(s, []diag.Diagnostic{diagAt(s, one, diag.StyTrailingWhitespace, f)}, fix.ApplyOptions{})
	require.NoError(t, err)
	assert.Equal(t, "<?php $a = 3;", string(res.Output))
}
