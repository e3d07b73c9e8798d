package lexer

import (
	"testing"

	"rsderive/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	file := createFile("a\nb")
	cursor := NewCursor(file)

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek() = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("Peek/Bump after EOF must return 0")
	}
}

func TestMarkResetSpan(t *testing.T) {
	file := createFile("struct S;")
	cursor := NewCursor(file)
	m := cursor.Mark()
	for range 6 {
		cursor.Bump()
	}
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 6 || sp.File != file.ID {
		t.Fatalf("unexpected span %v", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 0 {
		t.Fatalf("Reset did not rewind, off=%d", cursor.Off)
	}
}

func TestPeekHelpers(t *testing.T) {
	file := createFile("ab")
	cursor := NewCursor(file)
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if _, _, _, ok := cursor.Peek3(); ok {
		t.Fatal("Peek3 must fail on 2-byte input")
	}
	if cursor.PeekAt(1) != 'b' || cursor.PeekAt(2) != 0 {
		t.Fatal("PeekAt mismatch")
	}
	if cursor.Eat('b') {
		t.Fatal("Eat must not consume a mismatching byte")
	}
	if !cursor.Eat('a') || cursor.Off != 1 {
		t.Fatal("Eat must consume a matching byte")
	}
}
