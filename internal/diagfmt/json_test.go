package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"rsderive/internal/diag"
	"rsderive/internal/source"
)

func shapeBag(fs *source.FileSet) *diag.Bag {
	content := []byte("#[derive(Builder)]\nstruct Point(u8, u8);\n")
	fileID := fs.AddVirtual("src/point.rs", content)

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevError,
		diag.DeriveShapeNotNamedStruct,
		source.Span{File: fileID, Start: 26, End: 31},
		"this derive macro only works on structs with named fields",
	)
	d = d.WithNote(source.Span{File: fileID, Start: 31, End: 39}, "tuple structs are not supported")
	bag.Add(d)
	return bag
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	bag := shapeBag(fs)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d (%d)", output.Count, len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" {
		t.Errorf("Expected severity=ERROR, got %s", d.Severity)
	}
	if d.Code != "DRV4101" {
		t.Errorf("Expected code=DRV4101, got %s", d.Code)
	}
	if d.Location.File != "point.rs" {
		t.Errorf("Expected basename path, got %s", d.Location.File)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 8 {
		t.Errorf("Expected 2:8, got %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "tuple structs are not supported" {
		t.Errorf("Expected one note, got %+v", d.Notes)
	}
}

// TestJSONWithoutPositions проверяет что line/col опускаются
func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	bag := shapeBag(fs)

	out, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeBasename})
	if err != nil {
		t.Fatal(err)
	}
	loc := out.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartCol != 0 {
		t.Errorf("positions must be omitted, got %+v", loc)
	}
	if loc.StartByte != 26 || loc.EndByte != 31 {
		t.Errorf("byte offsets = %d-%d", loc.StartByte, loc.EndByte)
	}
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Errorf("notes must be omitted without IncludeNotes")
	}
}

// TestJSONMaxLimit проверяет обрезку вывода
func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("lib.rs", []byte("struct A;\nstruct B;\nstruct C;\n"))
	bag := diag.NewBag(10)
	for i := range uint32(3) {
		bag.Add(diag.New(diag.SevError, diag.DeriveShapeNotNamedStruct,
			source.Span{File: fileID, Start: 10*i + 7, End: 10*i + 8}, "shape"))
	}

	out, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 {
		t.Errorf("Expected 2 diagnostics, got %d", out.Count)
	}
}
