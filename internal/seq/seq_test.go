package seq_test

import (
	"testing"

	"rsderive/internal/diag"
	"rsderive/internal/record"
	"rsderive/internal/seq"
	"rsderive/internal/testkit"
	"rsderive/internal/token"
)

func parseInvocation(t *testing.T, src string) (*testkit.Parsed, *seq.Invocation, error) {
	t.Helper()
	p := testkit.MustParse(t, src)
	id := p.Items()[0]
	call, ok := p.Builder.Items.MacroCall(id)
	if !ok {
		t.Fatalf("%q: first item is not a macro call", src)
	}
	if call.Name() != "seq" {
		t.Fatalf("macro name = %q", call.Name())
	}
	inv, err := seq.Parse(call.Tokens, p.Builder.Items.Get(id).Span)
	return p, inv, err
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "paste and substitute",
			src:  "seq!(N in 0..3 { fn f~N() -> u64 { N * 2 } });",
			want: "fn f0() -> u64 { 0 * 2 }\nfn f1() -> u64 { 1 * 2 }\nfn f2() -> u64 { 2 * 2 }\n",
		},
		{
			name: "repeat section",
			src:  "seq!(N in 1..=3 { enum Irq { #(Irq~N,)* } });",
			want: "enum Irq { Irq1, Irq2, Irq3, }\n",
		},
		{
			name: "multi line with doc comment",
			src:  "seq!(N in 0..2 {\n    /// Register N.\n    const R~N: u8 = N;\n});",
			want: "/// Register N.\nconst R0: u8 = 0;\n/// Register N.\nconst R1: u8 = 1;\n",
		},
		{
			name: "empty range",
			src:  "seq!(N in 4..4 { struct S~N; });",
			want: "",
		},
		{
			name: "paste suffix",
			src:  "seq!(I in 0..2 { fn get~I~_mut() {} });",
			want: "fn get0_mut() {}\nfn get1_mut() {}\n",
		},
		{
			name: "spaced tilde is not pasted",
			src:  "seq!(N in 0..1 { const X: i32 = a ~ N; });",
			want: "const X: i32 = a ~ 0;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, inv, err := parseInvocation(t, tt.src)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := inv.Expand(); got != tt.want {
				t.Fatalf("Expand:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestValues(t *testing.T) {
	tests := []struct {
		src  string
		want []int64
	}{
		{"seq!(N in -2..=2 {});", []int64{-2, -1, 0, 1, 2}},
		{"seq!(N in 0x10..0x12 {});", []int64{16, 17}},
		{"seq!(N in 1_0u8..12 {});", []int64{10, 11}},
		{"seq!(N in 0..0 {});", []int64{}},
	}
	for _, tt := range tests {
		_, inv, err := parseInvocation(t, tt.src)
		if err != nil {
			t.Fatalf("%s: %v", tt.src, err)
		}
		got := inv.Values()
		if len(got) != len(tt.want) {
			t.Fatalf("%s: values = %v, want %v", tt.src, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%s: values = %v, want %v", tt.src, got, tt.want)
			}
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src    string
		code   diag.Code
		locate string
	}{
		{"seq!(1 in 0..2 {});", diag.SeqExpectIdent, "1"},
		{"seq!(N of 0..2 {});", diag.SeqExpectIn, "of"},
		{"seq!(N in a..2 {});", diag.SeqExpectInt, "a"},
		{"seq!(N in 0...2 {});", diag.SeqExpectRange, "..."},
		{"seq!(N in 0..2 ());", diag.SeqExpectBody, "("},
		{"seq!(N in 0..2 {} x);", diag.SeqTrailingInput, "x"},
		{"seq!(N in 3..1 {});", diag.SeqEmptyRange, "3..1"},
		{"seq!(N in 0..1000000 {});", diag.SeqRangeTooLarge, "0..1000000"},
		{"seq!(N in 99999999999999999999..1 {});", diag.SeqExpectInt, "99999999999999999999"},
		{"seq!(N in 0..);", diag.SeqExpectInt, ""},
	}
	for _, tt := range tests {
		p, _, err := parseInvocation(t, tt.src)
		rerr, ok := record.AsError(err)
		if !ok {
			t.Errorf("%s: expected located error, got %v", tt.src, err)
			continue
		}
		if rerr.Code != tt.code {
			t.Errorf("%s: code = %s, want %s", tt.src, rerr.Code.ID(), tt.code.ID())
		}
		if got := p.Text(rerr.Span); got != tt.locate {
			t.Errorf("%s: located at %q, want %q", tt.src, got, tt.locate)
		}
	}
}

func TestMacroCallShape(t *testing.T) {
	p := testkit.MustParse(t, "seq! { N in 0..2 { struct S~N; } }")
	call, ok := p.Builder.Items.MacroCall(p.Items()[0])
	if !ok {
		t.Fatal("expected macro call")
	}
	if call.Delim != token.LBrace {
		t.Fatalf("delimiter = %v, want {", call.Delim)
	}
	inv, err := seq.Parse(call.Tokens, p.Builder.Items.Get(p.Items()[0]).Span)
	if err != nil {
		t.Fatal(err)
	}
	if got := inv.Expand(); got != "struct S0;\nstruct S1;\n" {
		t.Fatalf("Expand = %q", got)
	}
}
