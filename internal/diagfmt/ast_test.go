package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"rsderive/internal/testkit"
)

func TestFormatASTPretty(t *testing.T) {
	p := testkit.MustParse(t, `
#[derive(Builder)]
pub struct Command<T: Clone> {
    #[builder(each = "arg")]
    args: Vec<T>,
}
fn main() {}
`)
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, p.Builder, p.FileID, p.FileSet); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"├─ Item[0]: struct",
		"│  ├─ Vis: pub",
		"│  ├─ Attr: #[derive(Builder)]",
		"│  ├─ Name: Command",
		"│  ├─ Generics: <T: Clone>",
		"│  └─ Fields (named)",
		"│     └─ args: Vec<T>",
		"│        └─ Attr: #[builder(each = \"arg\")]",
		"└─ Item[1]: fn",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatASTJSON(t *testing.T) {
	p := testkit.MustParse(t, "enum E<T> { A(T), B { x: u8 } }\nseq!(N in 0..2 {});\n")
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, p.Builder, p.FileID); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("items = %d", len(root.Children))
	}
	enum := root.Children[0]
	if enum.Kind != "enum" || enum.Text != "E" || enum.Fields["generics"] != "<T>" {
		t.Errorf("enum node = %+v", enum)
	}
	if len(enum.Children) != 2 || enum.Children[0].Kind != "tuple" || enum.Children[1].Children[0].Text != "x" {
		t.Errorf("variants = %+v", enum.Children)
	}
	if root.Children[1].Kind != "macro" || root.Children[1].Text != "seq" {
		t.Errorf("macro node = %+v", root.Children[1])
	}
}
