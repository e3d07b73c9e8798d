package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("lib.rs", []byte("struct A;"), 0)
	id2 := fs.Add("lib.rs", []byte("struct B;"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("expected ids 0 and 1, got %d and %d", id1, id2)
	}

	latest, ok := fs.GetLatest("lib.rs")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "struct A;" {
		t.Errorf("first version content = %q", got)
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.rs", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("LineIdx length = %d, want %d", len(file.LineIdx), len(expected))
	}
	for i, v := range expected {
		if file.LineIdx[i] != v {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], v)
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.rs", []byte("struct A {\n    x: u8,\n}\n"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"file start", 0, LineCol{Line: 1, Col: 1}},
		{"newline belongs to its line", 10, LineCol{Line: 1, Col: 11}},
		{"second line", 15, LineCol{Line: 2, Col: 5}},
		{"third line", 22, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
			}
		})
	}
}

func TestTextAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.rs", []byte("first\nsecond\nthird"))

	if got := fs.Text(Span{File: id, Start: 6, End: 12}); got != "second" {
		t.Errorf("Text = %q, want %q", got, "second")
	}
	if got := fs.Text(Span{File: id, Start: 6, End: 100}); got != "" {
		t.Errorf("out of range Text = %q, want empty", got)
	}

	file := fs.Get(id)
	for line, want := range map[uint32]string{1: "first", 2: "second", 3: "third", 4: "", 0: ""} {
		if got := file.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.rs")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFstruct A;\r\nstruct B;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if got := string(file.Content); got != "struct A;\nstruct B;\n" {
		t.Errorf("content = %q", got)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", file.Flags)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Errorf("Cover = %v", got)
	}
	// другой файл - span не меняется
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("Cover across files = %v, want %v", got, a)
	}
	if !a.Contains(Span{File: 1, Start: 12, End: 20}) {
		t.Error("expected Contains")
	}
	if a.ZeroideToEnd().Len() != 0 || a.ZeroideToEnd().Start != 20 {
		t.Errorf("ZeroideToEnd = %v", a.ZeroideToEnd())
	}
}

func TestFormatPathRelativeOutsideBase(t *testing.T) {
	base := t.TempDir()
	other := t.TempDir()
	f := File{Path: filepath.ToSlash(filepath.Join(other, "x.rs"))}
	if got := f.FormatPath("relative", base); !filepath.IsAbs(filepath.FromSlash(got)) {
		t.Errorf("expected absolute path for file outside base, got %q", got)
	}
	inside := File{Path: filepath.ToSlash(filepath.Join(base, "src", "x.rs"))}
	if got := inside.FormatPath("relative", base); got != "src/x.rs" {
		t.Errorf("relative path = %q, want src/x.rs", got)
	}
}
