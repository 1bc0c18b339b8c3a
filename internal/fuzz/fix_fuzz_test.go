package fuzztests

import (
	"bytes"
	"context"
	"testing"

	"phpsniff/internal/config"
	"phpsniff/internal/diag"
	"phpsniff/internal/engine"
	"phpsniff/internal/sniffs"
	"phpsniff/internal/source"
)

// FuzzFixLoop runs every rule and the fixer over arbitrary input. The loop
// must not fail and must reach a fixed point with nothing fixable left.
// Fixing the same input twice must give the same text.
func FuzzFixLoop(f *testing.F) {
	addCorpusSeeds(f)
	compiled, err := config.Compile(config.Default())
	if err != nil {
		f.Fatalf("compile default config: %v", err)
	}
	eng := engine.New(compiled, sniffs.Registry())
	ctx := context.Background()

	f.Fuzz(func(t *testing.T, input []byte) {
		input, _ = source.Normalize(clampSeed(input))
		path := "src/integrations/fuzz/actions/fuzz.php"

		first, err := eng.Fix(ctx, source.NewFile(0, path, input, source.FileVirtual), engine.FixOptions{})
		if err != nil {
			t.Fatalf("fix: %v", err)
		}
		second, err := eng.Fix(ctx, source.NewFile(0, path, input, source.FileVirtual), engine.FixOptions{})
		if err != nil {
			t.Fatalf("fix: %v", err)
		}
		if !bytes.Equal(first.Output, second.Output) {
			t.Fatalf("fix output differs between runs")
		}
		if first.Final == nil || second.Final == nil {
			t.Fatalf("missing final scan")
		}
		if !first.Converged {
			t.Fatalf("fix loop did not converge after %d passes", first.Passes)
		}
		for _, d := range first.Final.Diagnostics {
			if d.Fixable() {
				t.Fatalf("fixable %s left after fixing: %s", d.Code.Name(), d.Message)
			}
		}
		opts := diag.SnapshotOptions{Notes: true, Fixes: true}
		if a, b := diag.Snapshot(first.Final.Diagnostics, nil, opts), diag.Snapshot(second.Final.Diagnostics, nil, opts); a != b {
			t.Fatalf("final diagnostics differ between runs:\n%s\n---\n%s", a, b)
		}
	})
}
