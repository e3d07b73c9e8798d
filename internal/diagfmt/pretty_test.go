package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"rsderive/internal/diag"
	"rsderive/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/lib.rs", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/lib.rs:1:9"},
		{"Relative path", PathModeRelative, "src/lib.rs:1:9"},
		{"Basename only", PathModeBasename, "lib.rs:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			for _, want := range []string{tt.contains, "ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, output)
				}
			}
		})
	}
}

// TestPrettySnippet проверяет строку контекста и подчёркивание
func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("#[derive(Builder)]\nstruct Point(u8, u8);\n")
	fileID := fs.AddVirtual("point.rs", content)

	bag := diag.NewBag(4)
	d := diag.New(diag.SevError, diag.DeriveShapeNotNamedStruct,
		source.Span{File: fileID, Start: 26, End: 31},
		"this derive macro only works on structs with named fields")
	d = d.WithNote(source.Span{File: fileID, Start: 0, End: 18}, "derive requested here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	output := buf.String()

	want := []string{
		"point.rs:2:8: ERROR DRV4101: this derive macro only works on structs with named fields\n",
		" 2 | struct Point(u8, u8);\n",
		"   |        ^~~~~\n",
		"  note: point.rs:1:1: derive requested here\n",
		" 1 | #[derive(Builder)]\n",
		"   | ^~~~~~~~~~~~~~~~~~\n",
	}
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("Expected output to contain %q, got:\n%s", w, output)
		}
	}
}

// TestPrettyContext проверяет вывод соседних строк
func TestPrettyContext(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.rs", []byte("struct A {\n    x: Vec<u8>,\n}\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.DeriveEachNotCollection,
		source.Span{File: fileID, Start: 18, End: 25}, "`each` requires a `Vec<T>` field"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	output := buf.String()
	for _, w := range []string{" 1 | struct A {", " 2 |     x: Vec<u8>,", " 3 | }", "   |        ^~~~~~"} {
		if !strings.Contains(output, w) {
			t.Errorf("Expected output to contain %q, got:\n%s", w, output)
		}
	}
}

func TestUnderlineWide(t *testing.T) {
	// 'я' занимает 2 байта и одну колонку, '世' - 3 байта и две колонки
	line := "я世x"
	if got := underline(line, 6, 7); got != "   ^" {
		t.Errorf("underline = %q", got)
	}
	if got := underline(line, 3, 6); got != " ^~" {
		t.Errorf("underline = %q", got)
	}
	if got := underline("ab", 3, 3); got != "  ^" {
		t.Errorf("underline at end = %q", got)
	}
}
