package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"phpsniff/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.php", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	assert.False(t, cursor.EOF())
	assert.Equal(t, byte('a'), cursor.Peek())
	assert.Equal(t, byte('a'), cursor.Bump())
	assert.Equal(t, byte('\n'), cursor.Bump())
	assert.Equal(t, byte('b'), cursor.Bump())
	assert.True(t, cursor.EOF())
	assert.Equal(t, byte(0), cursor.Peek())
	assert.Equal(t, byte(0), cursor.Bump())
}

func TestCursorPeekHelpers(t *testing.T) {
	cursor := NewCursor(createFile("abc"))

	b0, b1, ok := cursor.Peek2()
	assert.True(t, ok)
	assert.Equal(t, []byte{'a', 'b'}, []byte{b0, b1})

	_, _, _, ok = cursor.Peek3()
	assert.True(t, ok)

	cursor.Bump()
	_, _, _, ok = cursor.Peek3()
	assert.False(t, ok)
	assert.Equal(t, byte('c'), cursor.PeekAt(1))
	assert.Equal(t, byte(0), cursor.PeekAt(2))
}

func TestCursorMarkResetAndSpan(t *testing.T) {
	cursor := NewCursor(createFile("<?php echo"))
	m := cursor.Mark()
	assert.True(t, cursor.HasPrefix("<?php"))
	cursor.Advance(5)

	sp := cursor.SpanFrom(m)
	assert.Equal(t, uint32(0), sp.Start)
	assert.Equal(t, uint32(5), sp.End)

	cursor.Reset(m)
	assert.Equal(t, uint32(0), cursor.Off)
	assert.True(t, cursor.Eat('<'))
	assert.False(t, cursor.Eat('!'))
}

func TestCursorAdvanceClamps(t *testing.T) {
	cursor := NewCursor(createFile("ab"))
	cursor.Advance(10)
	assert.True(t, cursor.EOF())
	assert.Equal(t, uint32(2), cursor.Off)
	assert.Empty(t, cursor.Rest())
}
