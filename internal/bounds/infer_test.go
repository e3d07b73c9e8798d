package bounds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsderive/internal/bounds"
	"rsderive/internal/diag"
	"rsderive/internal/introspect"
	"rsderive/internal/record"
	"rsderive/internal/testkit"
)

const debugTrait = "::std::fmt::Debug"

func infer(t *testing.T, src string) (*testkit.Parsed, bounds.Result, error) {
	t.Helper()
	p := testkit.MustParse(t, src)
	decl, err := record.FromItem(p.Builder, p.Items()[len(p.Items())-1])
	require.NoError(t, err)
	res, err := bounds.Infer(decl, introspect.DefaultConfig(), debugTrait)
	return p, res, err
}

func decisions(res bounds.Result) map[string]bounds.Decision {
	out := make(map[string]bounds.Decision, len(res.Params))
	for _, p := range res.Params {
		out[p.Name] = p.Decision
	}
	return out
}

func TestInferDecisions(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  map[string]bounds.Decision
		preds []string
	}{
		{
			name: "direct",
			src:  "struct S<T> { a: T }",
			want: map[string]bounds.Decision{"T": bounds.BoundDirect},
		},
		{
			name: "direct nested in generic args",
			src:  "struct S<T, U> { a: Vec<Box<T>>, b: &'static [U] }",
			want: map[string]bounds.Decision{"T": bounds.BoundDirect, "U": bounds.BoundDirect},
		},
		{
			name: "marker only",
			src:  "struct S<T> { a: u8, m: ::std::marker::PhantomData<T> }",
			want: map[string]bounds.Decision{"T": bounds.SkipMarker},
		},
		{
			name: "marker with tuple and fn",
			src:  "struct S<T, U> { m: PhantomData<(T, fn() -> U)> }",
			want: map[string]bounds.Decision{"T": bounds.SkipMarker, "U": bounds.SkipMarker},
		},
		{
			name: "marker and direct",
			src:  "struct S<T> { m: PhantomData<T>, v: Option<T> }",
			want: map[string]bounds.Decision{"T": bounds.BoundDirect},
		},
		{
			name:  "associated only",
			src:   "trait Trait { type Value; }\nstruct Field<T: Trait> { values: Vec<T::Value> }",
			want:  map[string]bounds.Decision{"T": bounds.BoundAssoc},
			preds: []string{"T::Value: ::std::fmt::Debug"},
		},
		{
			name:  "associated distinct in first seen order",
			src:   "struct S<T: Trait> { a: T::B, b: Vec<T::A>, c: Option<T::B>, d: <T as Other>::C }",
			want:  map[string]bounds.Decision{"T": bounds.BoundAssoc},
			preds: []string{"T::B: ::std::fmt::Debug", "T::A: ::std::fmt::Debug", "<T as Other>::C: ::std::fmt::Debug"},
		},
		{
			name: "direct wins over associated",
			src:  "struct S<T: Trait> { a: T, b: T::Value }",
			want: map[string]bounds.Decision{"T": bounds.BoundDirect},
		},
		{
			name: "associated inside marker is marker use",
			src:  "struct S<T: Trait> { m: PhantomData<T::Value> }",
			want: map[string]bounds.Decision{"T": bounds.SkipMarker},
		},
		{
			name:  "marker plus associated",
			src:   "struct S<T: Trait> { m: PhantomData<T>, v: T::Value }",
			want:  map[string]bounds.Decision{"T": bounds.BoundAssoc},
			preds: []string{"T::Value: ::std::fmt::Debug"},
		},
		{
			name: "unused",
			src:  "struct S<T> { a: u8 }",
			want: map[string]bounds.Decision{"T": bounds.BoundUnused},
		},
		{
			name: "global path is not a param",
			src:  "struct S<T> { a: ::T }",
			want: map[string]bounds.Decision{"T": bounds.BoundUnused},
		},
		{
			name: "lifetimes and consts ignored",
			src:  "struct S<'a, T, const N: usize> { a: &'a [T; N] }",
			want: map[string]bounds.Decision{"T": bounds.BoundDirect},
		},
		{
			name: "trait object args",
			src:  "struct S<T, U> { f: Box<dyn Fn(T) -> U> }",
			want: map[string]bounds.Decision{"T": bounds.BoundDirect, "U": bounds.BoundDirect},
		},
		{
			name: "qualified self with assoc args",
			src:  "struct S<T, U> { a: <T as Iterator<U>>::Item }",
			want: map[string]bounds.Decision{"T": bounds.BoundAssoc, "U": bounds.BoundDirect},
			preds: []string{
				"<T as Iterator<U>>::Item: ::std::fmt::Debug",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res, err := infer(t, tt.src)
			require.NoError(t, err)
			assert.False(t, res.Override)
			assert.Equal(t, tt.want, decisions(res))
			if tt.preds == nil {
				assert.Empty(t, res.Predicates)
			} else {
				assert.Equal(t, tt.preds, res.Predicates)
			}
		})
	}
}

func TestParamBounds(t *testing.T) {
	_, res, err := infer(t, "struct S<A, B, C: Trait, D> { a: A, m: PhantomData<B>, c: C::X }")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"A": {debugTrait},
		"D": {debugTrait},
	}, res.ParamBounds(debugTrait))
}

func TestInferOverride(t *testing.T) {
	p, res, err := infer(t, `
#[debug(bound = "T::Value:Debug, U: ::std::fmt::Debug + 'static")]
pub struct Wrapper<T: Trait, U> {
    field: Field<T>,
    u: U,
}
`)
	require.NoError(t, err)
	assert.True(t, res.Override)
	assert.Equal(t, `"T::Value:Debug, U: ::std::fmt::Debug + 'static"`, p.Text(res.OverrideSpan))
	assert.Equal(t, []string{"T::Value: Debug", "U: ::std::fmt::Debug + 'static"}, res.Predicates)
	assert.Equal(t, map[string]bounds.Decision{"T": bounds.Overridden, "U": bounds.Overridden}, decisions(res))
	assert.Empty(t, res.ParamBounds(debugTrait))
}

func TestInferOverrideEmpty(t *testing.T) {
	_, res, err := infer(t, `#[debug(bound = "")] struct S<T> { a: T }`)
	require.NoError(t, err)
	assert.True(t, res.Override)
	assert.Empty(t, res.Predicates)
}

func TestInferOverrideErrors(t *testing.T) {
	tests := []struct {
		name   string
		attr   string
		code   diag.Code
		locate string
	}{
		{"unparsable", `#[debug(bound = "T::Value Debug")]`, diag.DeriveBoundParse, `"T::Value Debug"`},
		{"unknown key", `#[debug(bounds = "T: Debug")]`, diag.DeriveAttrUnknownKey, `debug(bounds = "T: Debug")`},
		{"name value on type", `#[debug = "T: Debug"]`, diag.DeriveAttrUnknownKey, `debug = "T: Debug"`},
		{"non string", `#[debug(bound = 3)]`, diag.DeriveAttrBadLiteral, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, err := infer(t, tt.attr+" struct S<T> { a: T }")
			rerr, ok := record.AsError(err)
			require.True(t, ok, "expected located error, got %v", err)
			assert.Equal(t, tt.code, rerr.Code)
			assert.Equal(t, tt.locate, p.Text(rerr.Span))
		})
	}
}

func TestScanUsage(t *testing.T) {
	p := testkit.MustParse(t, "struct S<T: Trait> { a: T::A, b: PhantomData<T>, c: T::A }")
	decl, err := record.FromItem(p.Builder, p.Items()[0])
	require.NoError(t, err)
	usages := bounds.Scan(decl, introspect.DefaultConfig())
	require.Len(t, usages, 1)
	u := usages[0]
	assert.Equal(t, "T", u.Param)
	assert.False(t, u.Direct)
	assert.True(t, u.Marker)
	require.Len(t, u.Assoc, 1)
	assert.Equal(t, "T::A", u.Assoc[0].Text)
	assert.Equal(t, "T::A", p.Text(u.Assoc[0].Span))
}
