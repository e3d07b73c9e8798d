package parser

import (
	"fmt"
	"strings"
	"testing"

	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/lexer"
	"rsderive/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(src))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	result := ParseFile(lx, builder, Options{Reporter: reporter, MaxErrors: 100})
	return builder, result.File, bag
}

// mustStruct парсит src без ошибок и возвращает первый struct.
func mustStruct(t *testing.T, src string) (*ast.Builder, *ast.StructItem) {
	t.Helper()
	builder, fileID, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	for _, id := range builder.Files.Get(fileID).Items {
		if s, ok := builder.Items.Struct(id); ok {
			return builder, s
		}
	}
	t.Fatalf("no struct in %q", src)
	return nil, nil
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}
