package fuzztests

import (
	"testing"

	"phpsniff/internal/diag"
	"phpsniff/internal/lexer"
	"phpsniff/internal/source"
	"phpsniff/internal/testkit"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.php", input))

		bag := diag.NewBag(64)
		stream, _ := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err := testkit.CheckStreamInvariants(stream, file); err != nil {
			t.Fatalf("stream invariants: %v", err)
		}
	})
}
