package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

func sampleStream(fs *source.FileSet) *token.Stream {
	id := fs.AddVirtual("t.php", []byte("<?php echo 1;"))
	file := fs.Get(id)
	return token.NewStream(file, []token.Token{
		{Kind: token.OpenTag, Span: source.Span{File: id, Start: 0, End: 6}, Text: "<?php ", Line: 1},
		{Kind: token.KwEcho, Span: source.Span{File: id, Start: 6, End: 10}, Text: "echo", Line: 1},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 13, End: 13}, Line: 1},
	})
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	stream := sampleStream(fs)

	var buf bytes.Buffer
	require.NoError(t, FormatTokensJSON(&buf, stream))

	var out []TokenOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "echo", out[1].Text)
	assert.Equal(t, token.KwEcho.String(), out[1].Kind)
	assert.Equal(t, 2, out[2].Index)
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	stream := sampleStream(fs)

	var buf bytes.Buffer
	require.NoError(t, FormatTokensPretty(&buf, stream, fs))
	assert.Contains(t, buf.String(), `"echo" at 1:7-1:11`)
}
