package derive_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsderive/internal/bounds"
	"rsderive/internal/derive"
	"rsderive/internal/diag"
	"rsderive/internal/record"
	"rsderive/internal/testkit"
)

func declOf(t *testing.T, src, name string) *record.Decl {
	t.Helper()
	p := testkit.MustParse(t, src)
	decl, err := record.FromItem(p.Builder, p.StructItem(t, name))
	require.NoError(t, err)
	return decl
}

const commandSrc = `
pub struct Command {
    executable: String,
    #[builder(each = "arg")]
    args: Vec<String>,
    #[builder(each = "env")]
    env: Vec<String>,
    current_dir: Option<String>,
}
`

const commandBuilder = `#[automatically_derived]
pub struct CommandBuilder {
    executable: ::core::option::Option<String>,
    args: Vec<String>,
    env: Vec<String>,
    current_dir: ::core::option::Option<String>,
}

#[automatically_derived]
impl Command {
    pub fn builder() -> CommandBuilder {
        CommandBuilder {
            executable: ::core::option::Option::None,
            args: ::core::default::Default::default(),
            env: ::core::default::Default::default(),
            current_dir: ::core::option::Option::None,
        }
    }
}

#[automatically_derived]
impl CommandBuilder {
    pub fn executable(&mut self, executable: String) -> &mut Self {
        self.executable = ::core::option::Option::Some(executable);
        self
    }

    pub fn arg(&mut self, arg: String) -> &mut Self {
        self.args.push(arg);
        self
    }

    pub fn args(&mut self, args: Vec<String>) -> &mut Self {
        self.args = args;
        self
    }

    pub fn env(&mut self, env: String) -> &mut Self {
        self.env.push(env);
        self
    }

    pub fn current_dir(&mut self, current_dir: String) -> &mut Self {
        self.current_dir = ::core::option::Option::Some(current_dir);
        self
    }

    pub fn build(&mut self) -> ::core::result::Result<Command, ::std::boxed::Box<dyn ::std::error::Error>> {
        if self.executable.is_none() {
            return ::core::result::Result::Err(::std::format!("{} field missing", "executable").into());
        }
        ::core::result::Result::Ok(Command {
            executable: ::core::clone::Clone::clone(&self.executable).unwrap(),
            args: ::core::clone::Clone::clone(&self.args),
            env: ::core::clone::Clone::clone(&self.env),
            current_dir: ::core::clone::Clone::clone(&self.current_dir),
        })
    }
}
`

func TestBuilderCommand(t *testing.T) {
	decl := declOf(t, commandSrc, "Command")
	got, err := derive.Builder(decl, derive.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, commandBuilder, got)
}

func TestBuilderMissingFieldOrder(t *testing.T) {
	decl := declOf(t, `struct S { b: u8, a: Option<u8>, c: u16 }`, "S")
	got, err := derive.Builder(decl, derive.DefaultConfig())
	require.NoError(t, err)

	ib := strings.Index(got, `"{} field missing", "b"`)
	ic := strings.Index(got, `"{} field missing", "c"`)
	require.True(t, ib >= 0 && ic >= 0, got)
	assert.Less(t, ib, ic, "checks follow declaration order")
	assert.NotContains(t, got, `"{} field missing", "a"`, "optional fields are never required")
}

func TestBuilderGeneric(t *testing.T) {
	decl := declOf(t, `pub struct Pair<'a, T: Clone = u8> where T: Send { left: &'a T, right: Option<T> }`, "Pair")
	got, err := derive.Builder(decl, derive.DefaultConfig())
	require.NoError(t, err)

	assert.Contains(t, got, "pub struct PairBuilder<'a, T: Clone = u8> where T: Send {")
	assert.Contains(t, got, "impl<'a, T: Clone> Pair<'a, T> where T: Send {")
	assert.Contains(t, got, "pub fn builder() -> PairBuilder<'a, T> {")
	assert.Contains(t, got, "impl<'a, T: Clone> PairBuilder<'a, T> where T: Send {")
	assert.Contains(t, got, "pub fn right(&mut self, right: T) -> &mut Self {")
	assert.Contains(t, got, "::core::result::Result<Pair<'a, T>, ::std::boxed::Box<dyn ::std::error::Error>>")
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		msg  string
	}{
		{
			name: "each on non collection",
			src:  `struct S { #[builder(each = "x")] xs: Option<u8> }`,
			code: diag.DeriveEachNotCollection,
			msg:  "`each` requires a `Vec<T>` field",
		},
		{
			name: "unknown key",
			src:  `struct S { #[builder(eac = "x")] xs: Vec<u8> }`,
			code: diag.DeriveAttrUnknownKey,
			msg:  "expected `builder(each = \"...\")`",
		},
		{
			name: "accessor collides with field",
			src:  `struct S { x: u8, #[builder(each = "x")] xs: Vec<u8> }`,
			code: diag.DeriveAttrBadLiteral,
			msg:  "`each` accessor `x` conflicts with another builder method",
		},
		{
			name: "accessor collides with build",
			src:  `struct S { #[builder(each = "build")] xs: Vec<u8> }`,
			code: diag.DeriveAttrBadLiteral,
			msg:  "`each` accessor `build` conflicts with another builder method",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := declOf(t, tt.src, "S")
			_, err := derive.Builder(decl, derive.DefaultConfig())
			rerr, ok := record.AsError(err)
			require.True(t, ok, "error %v", err)
			assert.Equal(t, tt.code, rerr.Code)
			assert.Equal(t, tt.msg, rerr.Msg)
		})
	}
}

const fieldDebug = `#[automatically_derived]
impl<T: Trait> ::std::fmt::Debug for Field<T> where T::Value: ::std::fmt::Debug {
    fn fmt(&self, fmt: &mut ::std::fmt::Formatter<'_>) -> ::std::fmt::Result {
        fmt.debug_struct("Field")
            .field("values", &self.values)
            .finish()
    }
}
`

func TestDebugAssociatedOnly(t *testing.T) {
	decl := declOf(t, `
pub trait Trait {
    type Value;
}

pub struct Field<T: Trait> {
    values: Vec<T::Value>,
}
`, "Field")
	got, res, err := derive.Debug(decl, derive.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, fieldDebug, got)
	require.Len(t, res.Params, 1)
	assert.Equal(t, bounds.BoundAssoc, res.Params[0].Decision)
}

func TestDebugMarkerAndFormat(t *testing.T) {
	decl := declOf(t, `
pub struct Tagged<T, U> {
    #[debug = "0b{:08b}"]
    bitmask: u8,
    value: U,
    marker: PhantomData<T>,
}
`, "Tagged")
	got, res, err := derive.Debug(decl, derive.DefaultConfig())
	require.NoError(t, err)

	assert.Contains(t, got, "impl<T, U: ::std::fmt::Debug> ::std::fmt::Debug for Tagged<T, U> {")
	assert.Contains(t, got, `.field("bitmask", &::core::format_args!("0b{:08b}", &self.bitmask))`)
	assert.Contains(t, got, `.field("value", &self.value)`)
	assert.Contains(t, got, `.field("marker", &self.marker)`)
	assert.Less(t, strings.Index(got, `"bitmask"`), strings.Index(got, `"value"`))
	assert.Less(t, strings.Index(got, `"value"`), strings.Index(got, `"marker"`))

	dec := map[string]bounds.Decision{}
	for _, p := range res.Params {
		dec[p.Name] = p.Decision
	}
	assert.Equal(t, bounds.SkipMarker, dec["T"])
	assert.Equal(t, bounds.BoundDirect, dec["U"])
}

func TestDebugEmptyFormatIsKept(t *testing.T) {
	decl := declOf(t, `struct S { #[debug = ""] a: u8 }`, "S")
	got, _, err := derive.Debug(decl, derive.DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, got, `.field("a", &::core::format_args!("", &self.a))`)
}

func TestDebugOverride(t *testing.T) {
	decl := declOf(t, `
#[debug(bound = "T::Value: Debug")]
pub struct Wrapper<T: Trait> {
    field: Field<T>,
}
`, "Wrapper")
	got, res, err := derive.Debug(decl, derive.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, res.Override)
	assert.Contains(t, got, "impl<T: Trait> ::std::fmt::Debug for Wrapper<T> where T::Value: Debug {")
}

func TestDebugFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"list form", `struct S { #[debug(x)] a: u8 }`, diag.DeriveAttrUnknownKey},
		{"integer literal", `struct S { #[debug = 3] a: u8 }`, diag.DeriveAttrBadLiteral},
		{"bad override", `#[debug(bound = "T Debug")] struct S<T> { a: T }`, diag.DeriveBoundParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := declOf(t, tt.src, "S")
			_, _, err := derive.Debug(decl, derive.DefaultConfig())
			rerr, ok := record.AsError(err)
			require.True(t, ok, "error %v", err)
			assert.Equal(t, tt.code, rerr.Code)
		})
	}
}

func TestDebugCustomTrait(t *testing.T) {
	cfg := derive.DefaultConfig()
	cfg.DebugTrait = "::core::fmt::Debug"
	decl := declOf(t, `struct S<T> { a: T }`, "S")
	got, _, err := derive.Debug(decl, cfg)
	require.NoError(t, err)
	assert.Contains(t, got, "impl<T: ::core::fmt::Debug> ::core::fmt::Debug for S<T> {")
	assert.Contains(t, got, "fmt: &mut ::core::fmt::Formatter<'_>) -> ::core::fmt::Result {")
}
