package driver

import (
	"path/filepath"
	"testing"

	"rsderive/internal/token"
)

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "field.rs")
	writeFile(t, src, `#[derive(CustomDebug)]
struct Field<T> {
    value: T,
    #[debug = "0b{:08b}"]
    bitmask: u8,
}
`)
	res, err := Inspect(src, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %v", res.Bag.Items())
	}
	if len(res.Records) != 1 {
		t.Fatalf("records = %d", len(res.Records))
	}
	rec := res.Records[0]
	if rec.Name != "Field" || len(rec.Fields) != 2 || rec.Fields[1].Format != "0b{:08b}" {
		t.Fatalf("record = %+v", rec)
	}
	if len(rec.Params) != 1 || !rec.Params[0].Direct {
		t.Fatalf("params = %+v", rec.Params)
	}
}

func TestInspectSyntaxError(t *testing.T) {
	src := filepath.Join(t.TempDir(), "bad.rs")
	writeFile(t, src, "struct {")
	res, err := Inspect(src, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Bag.HasErrors() || len(res.Records) != 0 {
		t.Fatalf("records = %v, diagnostics = %v", res.Records, res.Bag.Items())
	}
}

func TestTokenizeAndParse(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.rs")
	writeFile(t, src, "struct A { x: u8 }\n")

	tr, err := Tokenize(src, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(tr.Tokens); n == 0 || tr.Tokens[n-1].Kind != token.EOF {
		t.Fatalf("tokens = %v", tr.Tokens)
	}

	pr, err := Parse(src, 0)
	if err != nil {
		t.Fatal(err)
	}
	if pr.Bag.HasErrors() {
		t.Fatalf("diagnostics: %v", pr.Bag.Items())
	}
	if f := pr.Builder.Files.Get(pr.FileID); f == nil || len(f.Items) != 1 {
		t.Fatal("expected one item")
	}

	if _, err := Parse(filepath.Join(t.TempDir(), "missing.rs"), 0); err == nil {
		t.Fatal("expected error for missing file")
	}
}
