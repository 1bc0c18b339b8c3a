package driver

import (
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/diag"
	"phpsniff/internal/lexer"
	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Stream  *token.Stream
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it, collecting lex errors into the bag.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, errors.Errorf("tokenize %s: %w", path, err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	stream, _ := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Stream:  stream,
		Bag:     bag,
	}, nil
}
