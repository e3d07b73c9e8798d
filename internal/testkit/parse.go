package testkit

import (
	"fmt"
	"strings"
	"testing"

	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/lexer"
	"rsderive/internal/parser"
	"rsderive/internal/source"
)

// Parsed bundles everything produced by parsing one virtual file.
type Parsed struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse lexes and parses src as a virtual file named name.
func Parse(tb testing.TB, name, src string) *Parsed {
	tb.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	file := fs.Get(id)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter, MaxErrors: 100})
	return &Parsed{FileSet: fs, File: file, Builder: builder, FileID: res.File, Bag: bag}
}

// MustParse is Parse that fails the test on any diagnostic or broken span.
func MustParse(tb testing.TB, src string) *Parsed {
	tb.Helper()
	p := Parse(tb, "test.rs", src)
	if p.Bag.Len() > 0 {
		tb.Fatalf("unexpected diagnostics: %s", Summary(p.Bag))
	}
	if err := CheckSpanInvariants(p.Builder, p.FileID, p.File); err != nil {
		tb.Fatalf("span invariants: %v", err)
	}
	return p
}

// Items returns the top-level items in source order.
func (p *Parsed) Items() []ast.ItemID {
	return p.Builder.Files.Get(p.FileID).Items
}

// StructItem finds the struct, union or enum item declared with name.
func (p *Parsed) StructItem(tb testing.TB, name string) ast.ItemID {
	tb.Helper()
	for _, id := range p.Items() {
		if st, ok := p.Builder.Items.Struct(id); ok && st.Name == name {
			return id
		}
		if en, ok := p.Builder.Items.Enum(id); ok && en.Name == name {
			return id
		}
	}
	tb.Fatalf("no item named %s", name)
	return ast.NoItemID
}

// Text returns the source under sp.
func (p *Parsed) Text(sp source.Span) string {
	return p.FileSet.Text(sp)
}

// Summary renders diagnostics as `[CODE] message; ...`.
func Summary(bag *diag.Bag) string {
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
