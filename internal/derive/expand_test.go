package derive_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsderive/internal/derive"
	"rsderive/internal/diag"
	"rsderive/internal/testkit"
)

func expand(t *testing.T, src string) (*testkit.Parsed, derive.Output) {
	t.Helper()
	p := testkit.MustParse(t, src)
	e := &derive.Expander{Config: derive.DefaultConfig(), Reporter: &diag.BagReporter{Bag: p.Bag}}
	return p, e.ExpandFile(p.Builder, p.FileID)
}

func TestExpandFileOrder(t *testing.T) {
	_, out := expand(t, `
use std::marker::PhantomData;

#[derive(Clone, Builder, CustomDebug)]
pub struct First {
    name: String,
}

#[derive(Debug)]
struct Ignored {
    x: u8,
}

seq!(N in 0..2 {
    fn f~N() {}
});

#[derive(derive_debug::CustomDebug)]
struct Second<T> {
    marker: PhantomData<T>,
}
`)
	require.Len(t, out.Fragments, 4)
	kinds := make([]string, len(out.Fragments))
	for i, f := range out.Fragments {
		kinds[i] = f.Derive + ":" + f.Item
		assert.False(t, f.Failed(), kinds[i])
	}
	assert.Equal(t, []string{"Builder:First", "CustomDebug:First", "seq:seq!", "CustomDebug:Second"}, kinds)
	assert.Equal(t, "fn f0() {}\nfn f1() {}\n", out.Fragments[2].Text)
	assert.Contains(t, out.Fragments[3].Text, "impl<T> ::std::fmt::Debug for Second<T> {")
	assert.Equal(t, 0, out.Failures())
}

func TestExpandFileShapeErrors(t *testing.T) {
	p, out := expand(t, `
#[derive(Builder)]
struct Point(u8, u8);

#[derive(CustomDebug)]
enum E { A }

#[derive(Builder)]
struct Ok {
    a: u8,
}
`)
	require.Len(t, out.Fragments, 3)
	assert.Equal(t, 2, out.Failures())
	for _, f := range out.Fragments[:2] {
		require.True(t, f.Failed())
		assert.Equal(t, diag.DeriveShapeNotNamedStruct, f.Err.Code)
		assert.Equal(t,
			"::core::compile_error!(\"this derive macro only works on structs with named fields\");\n",
			f.Text)
	}
	assert.False(t, out.Fragments[2].Failed())

	require.Equal(t, 2, p.Bag.Len(), testkit.Summary(p.Bag))
	for _, d := range p.Bag.Items() {
		assert.Equal(t, diag.DeriveShapeNotNamedStruct, d.Code)
	}
	assert.Equal(t, "Point", p.Text(p.Bag.Items()[0].Primary))
}

func TestExpandFileSeqError(t *testing.T) {
	p, out := expand(t, `seq!(N in 3..1 {});`)
	require.Len(t, out.Fragments, 1)
	require.True(t, out.Fragments[0].Failed())
	assert.Equal(t, diag.SeqEmptyRange, out.Fragments[0].Err.Code)
	assert.Equal(t, 1, p.Bag.Len())
}

func TestRender(t *testing.T) {
	_, out := expand(t, `
#[derive(CustomDebug)]
struct A { x: u8 }
#[derive(CustomDebug)]
struct B { y: u8 }
`)
	got := string(out.Render("src/lib.rs"))
	require.True(t, strings.HasPrefix(got, derive.Header+"\n// source: src/lib.rs\n\n#[automatically_derived]\n"), got)
	assert.Contains(t, got, "}\n\n#[automatically_derived]\nimpl ::std::fmt::Debug for B {")
	assert.True(t, strings.HasSuffix(got, "}\n"))
}

func TestRenderEmpty(t *testing.T) {
	_, out := expand(t, `struct Plain { a: u8 }`)
	assert.True(t, out.Empty())
	assert.Equal(t, derive.Header+"\n// source: x.rs\n", string(out.Render("x.rs")))
}

func TestInspect(t *testing.T) {
	p := testkit.MustParse(t, `
#[derive(Builder, CustomDebug)]
pub struct Field<T: Trait, M> {
    #[builder(each = "value")]
    values: Vec<T::Value>,
    #[debug = "{:?}"]
    tag: Option<u8>,
    marker: PhantomData<M>,
}

#[derive(Builder)]
struct Tuple(u8);
`)
	reps := derive.Inspect(p.Builder, p.FileID, derive.DefaultConfig())
	require.Len(t, reps, 2)

	rep := reps[0]
	assert.Equal(t, "Field", rep.Name)
	assert.Equal(t, []string{"Builder", "CustomDebug"}, rep.Derives)
	require.Len(t, rep.Fields, 3)
	assert.Equal(t, derive.FieldReport{Name: "values", Type: "Vec<T::Value>", Kind: "repeated", Inner: "T::Value", Accessor: "value"}, rep.Fields[0])
	assert.Equal(t, derive.FieldReport{Name: "tag", Type: "Option<u8>", Kind: "optional", Inner: "u8", Format: "{:?}"}, rep.Fields[1])
	assert.Equal(t, "plain", rep.Fields[2].Kind)

	require.Len(t, rep.Params, 2)
	assert.Equal(t, derive.ParamReport{Name: "T", Decision: "associated-only", Assoc: []string{"T::Value"}}, rep.Params[0])
	assert.Equal(t, derive.ParamReport{Name: "M", Decision: "marker-only", Marker: true}, rep.Params[1])
	assert.Equal(t, []string{"T::Value: ::std::fmt::Debug"}, rep.Predicates)

	assert.Equal(t, "Tuple", reps[1].Name)
	assert.Equal(t, "this derive macro only works on structs with named fields", reps[1].Error)
}
