package fuzztests

import (
	"testing"
	"time"

	"rsderive/internal/ast"
	"rsderive/internal/derive"
	"rsderive/internal/diag"
	"rsderive/internal/lexer"
	"rsderive/internal/parser"
	"rsderive/internal/source"
	"rsderive/internal/testkit"
)

// parseTimeout is the maximum time allowed for one input; longer means the
// parser is likely looping in error recovery.
const parseTimeout = 5 * time.Second

type parsed struct {
	fs      *source.FileSet
	file    *source.File
	builder *ast.Builder
	fileID  ast.FileID
	bag     *diag.Bag
}

func parseInput(input []byte) parsed {
	fs := source.NewFileSet()
	id := fs.AddVirtual("fuzz.rs", input)
	file := fs.Get(id)

	bag := diag.NewBag(128)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter, MaxErrors: 128})
	return parsed{fs: fs, file: file, builder: builder, fileID: res.File, bag: bag}
}

func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		p := parseInput(clampInput(input))
		if p.bag.HasErrors() {
			return
		}
		if err := testkit.CheckSpanInvariants(p.builder, p.fileID, p.file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang runs the parser under a deadline.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("#[derive(Builder)] struct S { a: Vec<"))
	f.Add([]byte("struct S<T where T: { }"))
	f.Add([]byte("#[debug(bound = )] struct S {}"))
	f.Add([]byte("seq!(N in 0..{ })"))
	f.Add([]byte("mod m { mod n { struct S { a: u8, } }"))
	f.Add([]byte("struct S { a: <T as Trait>::Out, b: fn(u8) -> }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = parseInput(input)
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzExpandFile feeds every syntactically valid input to the generators:
// failures must come back as diagnostics and compile_error! fragments.
func FuzzExpandFile(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("#[derive(Builder, CustomDebug)] struct S<'a, T: Clone> where T: Send { #[builder(each = \"x\")] a: Vec<&'a T>, b: Option<T> }"))
	f.Add([]byte("#[derive(CustomDebug)] #[debug(bound = \"T::X: Debug\")] struct S<T> { #[debug = \"{:?}\"] a: T }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		p := parseInput(clampInput(input))
		if p.bag.HasErrors() {
			return
		}
		exp := derive.Expander{Config: derive.DefaultConfig(), Reporter: diag.BagReporter{Bag: p.bag}}
		out := exp.ExpandFile(p.builder, p.fileID)
		if got, want := out.Failures(), countErrors(p.bag); got > want {
			t.Fatalf("%d failed fragments but %d error diagnostics", got, want)
		}
		_ = out.Render("fuzz.rs")
	})
}

func countErrors(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	return n
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
