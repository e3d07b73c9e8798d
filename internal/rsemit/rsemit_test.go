package rsemit_test

import (
	"testing"

	"rsderive/internal/rsemit"
	"rsderive/internal/testkit"
)

func TestPrinterTypes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"String", "String"},
		{"::std::vec::Vec< u8 >", "::std::vec::Vec<u8>"},
		{"Option::<T>", "Option::<T>"},
		{"&'a mut [u8]", "&'a mut [u8]"},
		{"&T", "&T"},
		{"*const u8", "*const u8"},
		{"*mut T", "*mut T"},
		{"[u8;  4]", "[u8; 4]"},
		{"()", "()"},
		{"(u8,)", "(u8,)"},
		{"(u8, T)", "(u8, T)"},
		{"HashMap<K, Vec<V>>", "HashMap<K, Vec<V>>"},
		{"<T as Trait>::Value", "<T as Trait>::Value"},
		{"<T>::Value", "<T>::Value"},
		{"T::Value", "T::Value"},
		{"Box<dyn Fn(u8) -> u16 + Send + 'static>", "Box<dyn Fn(u8) -> u16 + Send + 'static>"},
		{"Box<dyn for<'a> Fn(&'a str)>", "Box<dyn for<'a> Fn(&'a str)>"},
		{"unsafe extern \"C\" fn(u8, ...) -> !", "unsafe extern \"C\" fn(u8, ...) -> !"},
		{"fn()", "fn()"},
		{"impl Iterator<Item = u8>", "impl Iterator<Item = u8>"},
		{"Box<dyn Iterator<Item: Debug>>", "Box<dyn Iterator<Item: Debug>>"},
		{"Foo<'a, 3, { N }>", "Foo<'a, 3, { N }>"},
		{"Box<dyn ?Sized>", "Box<dyn ?Sized>"},
		{"(T)", "(T)"},
		{"PhantomData<fn() -> T>", "PhantomData<fn() -> T>"},
	}
	for _, tt := range tests {
		p := testkit.Parse(t, "types.rs", "struct S { f: "+tt.src+" }")
		if p.Bag.Len() > 0 {
			t.Errorf("%s: %s", tt.src, testkit.Summary(p.Bag))
			continue
		}
		st, _ := p.Builder.Items.Struct(p.Items()[0])
		got := rsemit.NewPrinter(p.Builder.Types).Type(st.Fields[0].Type)
		if got != tt.want {
			t.Errorf("Type(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestPrinterGenerics(t *testing.T) {
	p := testkit.MustParse(t, `
struct S<'a, 'b: 'a, T: Clone + ?Sized = u8, const N: usize = 3>
where
    T: for<'x> Fn(&'x u8),
    'b: 'a,
{
    f: &'a T,
}
`)
	st, _ := p.Builder.Items.Struct(p.Items()[0])
	pr := rsemit.NewPrinter(p.Builder.Types)

	if got, want := pr.ImplGenerics(&st.Generics, map[string][]string{"T": {"::std::fmt::Debug"}}),
		"<'a, 'b: 'a, T: Clone + ?Sized + ::std::fmt::Debug, const N: usize>"; got != want {
		t.Errorf("ImplGenerics = %q, want %q", got, want)
	}
	if got, want := pr.DeclGenerics(&st.Generics), "<'a, 'b: 'a, T: Clone + ?Sized = u8, const N: usize = 3>"; got != want {
		t.Errorf("DeclGenerics = %q, want %q", got, want)
	}
	if got, want := rsemit.TypeGenerics(&st.Generics), "<'a, 'b, T, N>"; got != want {
		t.Errorf("TypeGenerics = %q, want %q", got, want)
	}
	preds := pr.WherePredicates(&st.Generics)
	if got, want := rsemit.WhereClause(preds), " where T: for<'x> Fn(&'x u8), 'b: 'a"; got != want {
		t.Errorf("WhereClause = %q, want %q", got, want)
	}
	if rsemit.WhereClause(nil) != "" || rsemit.TypeGenerics(nil) != "" || pr.ImplGenerics(nil, nil) != "" {
		t.Error("empty generics must render as empty strings")
	}
}

func TestWriter(t *testing.T) {
	w := rsemit.NewWriter()
	w.Open("impl S")
	w.Open("fn f(&self)")
	w.Line("self")
	w.Close("")
	w.Newline()
	w.Linef("const X: u8 = %d;", 3)
	w.Close("")
	want := "impl S {\n    fn f(&self) {\n        self\n    }\n\n    const X: u8 = 3;\n}\n"
	if got := w.String(); got != want {
		t.Fatalf("writer output:\n%s\nwant:\n%s", got, want)
	}
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"0b{:08b}":      `"0b{:08b}"`,
		`say "hi"`:      `"say \"hi\""`,
		"a\\b":          `"a\\b"`,
		"line\nnext":    `"line\nnext"`,
		"tab\t\x00":     `"tab\t\0"`,
		"\x07bell":      `"\u{7}bell"`,
		"юникод":        `"юникод"`,
		"field missing": `"field missing"`,
	}
	for in, want := range tests {
		if got := rsemit.Quote(in); got != want {
			t.Errorf("Quote(%q) = %s, want %s", in, got, want)
		}
	}
}
