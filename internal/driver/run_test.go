package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/config"
	"phpsniff/internal/diag"
	"phpsniff/internal/engine"
	"phpsniff/internal/sniffs"
	"phpsniff/internal/source"
)

func newEngine(t *testing.T, rules ...engine.Rule) *engine.Engine {
	t.Helper()
	compiled, err := config.Compile(config.Default())
	require.NoError(t, err)
	reg := engine.NewRegistry()
	require.NoError(t, reg.Register(rules...))
	return engine.New(compiled, reg)
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestRunCheck(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"clean.php": "<?php\n$a = 1;\n",
		"dirty.php": "<?php\n$a = 1;   \n$b = 2;\t\n",
	})
	eng := newEngine(t, sniffs.TrailingWhitespace{})

	events := make(chan Event, 64)
	rep, err := Run(testContext(t), eng, []string{root}, Options{Jobs: 2, Events: events})
	require.NoError(t, err)

	require.Len(t, rep.Files, 2)
	assert.Empty(t, rep.Files[0].Diagnostics)
	dirty := rep.Files[1]
	assert.Equal(t, filepath.Join(root, "dirty.php"), dirty.Path)
	require.Len(t, dirty.Diagnostics, 2)
	assert.Equal(t, diag.StyTrailingWhitespace, dirty.Diagnostics[0].Code)
	assert.Equal(t, uint32(2), dirty.Diagnostics[0].Line)
	assert.Equal(t, uint32(3), dirty.Diagnostics[1].Line)

	errs, warns, fixable := rep.Counts()
	assert.Equal(t, 2, errs+warns)
	assert.Equal(t, 2, fixable)
	assert.Equal(t, int64(2), rep.Stats.Files)
	assert.Equal(t, "dirty.php", filepath.Base(rep.FileSet.Get(dirty.FileID).Path))

	var done int
	for ev := range events {
		if ev.Status == StatusDone {
			done++
		}
	}
	assert.Equal(t, 2, done)

	names := make([]string, 0, len(rep.Timings.Phases))
	for _, p := range rep.Timings.Phases {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"discover", "load", "scan", "collect"}, names)
}

func TestRunIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.php":         "<?php\n$a = 1;  \n",
		"b/c.php":       "<?php\n\t\n$c = 3; \n",
		"vendor/x.php":  "<?php\n$x = 1; \n",
		"b/d/empty.php": "<?php\n",
	})
	eng := newEngine(t, sniffs.TrailingWhitespace{})

	snapshot := func(jobs int) string {
		rep, err := Run(testContext(t), eng, []string{root}, Options{Jobs: jobs})
		require.NoError(t, err)
		var all []diag.Diagnostic
		for _, f := range rep.Files {
			all = append(all, f.Diagnostics...)
		}
		rep.FileSet.SetBaseDir(root)
		return diag.Snapshot(all, rep.FileSet, diag.SnapshotOptions{Fixes: true, SkipVendor: true})
	}

	serial := snapshot(1)
	assert.Equal(t, serial, snapshot(4))
	assert.Contains(t, serial, "a.php:2:8 error WhiteSpace.SuperfluousWhitespace.EndLine: Whitespace found at end of line [fixable]\n")
	assert.Contains(t, serial, "b/c.php:3:8 error")
	assert.NotContains(t, serial, "vendor/")
}

func TestRunFixWritesBack(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "win.php")
	original := "\xEF\xBB\xBF<?php\r\n$a = 1;   \r\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o640))
	eng := newEngine(t, sniffs.TrailingWhitespace{})

	rep, err := Run(testContext(t), eng, []string{path}, Options{Fix: true})
	require.NoError(t, err)
	require.Len(t, rep.Files, 1)

	res := rep.Files[0]
	require.NotNil(t, res.Fix)
	assert.True(t, res.Fix.Changed)
	assert.True(t, res.Fix.Converged)
	assert.True(t, res.Fix.Written)
	assert.Equal(t, 1, res.Fix.Applied)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, int64(1), rep.Stats.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBF<?php\r\n$a = 1;\r\n", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	}

	// the file set now holds the rewritten text
	assert.Equal(t, "<?php\n$a = 1;\n", string(rep.FileSet.Get(res.FileID).Content))
}

func TestRunFixDryRun(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.php")
	original := "<?php\n$a = 1;   \n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))
	eng := newEngine(t, sniffs.TrailingWhitespace{})

	rep, err := Run(testContext(t), eng, []string{path}, Options{Fix: true, DryRun: true})
	require.NoError(t, err)

	res := rep.Files[0]
	require.NotNil(t, res.Fix)
	assert.True(t, res.Fix.Changed)
	assert.False(t, res.Fix.Written)
	assert.Equal(t, "<?php\n$a = 1;\n", string(res.Fix.Output))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestRunUsesCache(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.php": "<?php\n$a = 1;   \n"})
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	eng := newEngine(t, sniffs.TrailingWhitespace{})
	opts := Options{Cache: cache}

	first, err := Run(testContext(t), eng, []string{root}, opts)
	require.NoError(t, err)
	require.False(t, first.Files[0].Cached)
	require.Len(t, first.Files[0].Diagnostics, 1)

	second, err := Run(testContext(t), eng, []string{root}, opts)
	require.NoError(t, err)
	res := second.Files[0]
	assert.True(t, res.Cached)
	assert.Equal(t, int64(1), second.Stats.Cached)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, first.Files[0].Diagnostics[0].Message, res.Diagnostics[0].Message)
	assert.Equal(t, res.FileID, res.Diagnostics[0].Primary.File)

	// fix runs bypass the cache
	fixed, err := Run(testContext(t), eng, []string{root}, Options{Cache: cache, Fix: true, DryRun: true})
	require.NoError(t, err)
	assert.False(t, fixed.Files[0].Cached)
}

func TestRunMaxDiagnostics(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.php": "<?php\n$a = 1; \n$b = 2; \n$c = 3; \n"})
	eng := newEngine(t, sniffs.TrailingWhitespace{})

	rep, err := Run(testContext(t), eng, []string{root}, Options{MaxDiagnostics: 2})
	require.NoError(t, err)
	assert.Len(t, rep.Files[0].Diagnostics, 2)
	assert.Equal(t, 1, rep.Files[0].Dropped)
}

func TestRunCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.php": "<?php\n"})
	eng := newEngine(t, sniffs.TrailingWhitespace{})

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()
	_, err := Run(ctx, eng, []string{root}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestTokenize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.php")
	require.NoError(t, os.WriteFile(path, []byte("<?php\r\necho 'hi';\r\n"), 0o644))

	res, err := Tokenize(path, 10)
	require.NoError(t, err)
	assert.Zero(t, res.Bag.Len())
	assert.Equal(t, "<?php\necho 'hi';\n", res.Stream.Text(0, res.Stream.Len()))
}

func TestCacheKey(t *testing.T) {
	a := source.NewFile(0, "src/a.php", []byte("<?php\n"), 0)
	b := source.NewFile(0, "src/b.php", []byte("<?php\n"), 0)

	base := CacheKey(a, "fp1", "1.0.0")
	assert.Equal(t, base, CacheKey(a, "fp1", "1.0.0"))
	assert.NotEqual(t, base, CacheKey(b, "fp1", "1.0.0"))
	assert.NotEqual(t, base, CacheKey(a, "fp2", "1.0.0"))
	assert.NotEqual(t, base, CacheKey(a, "fp1", "1.0.1"))
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	key := combineDigest([32]byte{1}, "k")

	var out CachedFile
	hit, err := cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	d := diag.NewWarning(diag.StyNotYoda, source.Span{File: 3, Start: 4, End: 9}, "Use Yoda conditions")
	require.NoError(t, cache.Put(key, &CachedFile{Path: "a.php", Diagnostics: []diag.Diagnostic{d}}))

	hit, err = cache.Get(key, &out)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, d, out.Diagnostics[0])

	require.NoError(t, cache.DropAll())
	hit, err = cache.Get(key, &CachedFile{})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestWriteBackKeepsLineEndings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.php")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, writeBack(path, []byte("<?php\n$a;\n"), source.FileNormalizedCRLF))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal([]byte("<?php\r\n$a;\r\n"), data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
