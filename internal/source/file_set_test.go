package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("plugin.php", []byte("<?php echo 1;"), 0)
	if id1 != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Replace(id1, []byte("<?php echo 2;"))
	if id2 != 1 {
		t.Errorf("expected second FileID to be 1, got %d", id2)
	}

	latest, ok := fs.GetLatest("plugin.php")
	if !ok || latest != id2 {
		t.Fatalf("expected latest id %d, got %d (ok=%v)", id2, latest, ok)
	}

	if got := string(fs.Get(id1).Content); got != "<?php echo 1;" {
		t.Errorf("old version changed: %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("expected 2 versions, got %d", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.php", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], val)
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
	if file.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", file.LineCount())
	}
}

func TestLoadNormalizesAndRestores(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.php")
	raw := []byte("\xEF\xBB\xBF<?php\r\necho 'x';\r\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)

	if got := string(file.Content); got != "<?php\necho 'x';\n" {
		t.Errorf("unexpected normalized content %q", got)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("expected BOM and CRLF flags, got %b", file.Flags)
	}
	if got := Restore(file.Content, file.Flags); string(got) != string(raw) {
		t.Errorf("Restore mismatch: %q", got)
	}
}

func TestResolveAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.php", []byte("<?php\n$a = 1;\n$b = 2;"))
	file := fs.Get(id)

	start, end := fs.Resolve(Span{File: id, Start: 6, End: 8})
	if start != (LineCol{Line: 2, Col: 1}) || end != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("unexpected resolve %+v %+v", start, end)
	}

	// the newline byte belongs to the line it terminates
	if lc := file.LineCol(5); lc.Line != 1 || lc.Col != 6 {
		t.Errorf("newline resolved to %+v", lc)
	}

	cases := map[uint32]string{0: "", 1: "<?php", 2: "$a = 1;", 3: "$b = 2;", 4: ""}
	for line, want := range cases {
		if got := file.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}
