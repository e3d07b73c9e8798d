package introspect

import (
	"fmt"

	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/lexer"
	"rsderive/internal/record"
	"rsderive/internal/source"
)

type Kind uint8

const (
	Plain Kind = iota
	Optional
	Repeated
)

func (k Kind) String() string {
	switch k {
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	default:
		return "plain"
	}
}

// Config names the wrapper identifiers. Only the last path segment is
// compared, so `std::option::Option<T>` and `Option<T>` are the same shape.
type Config struct {
	Option     string
	Collection string
	Marker     string
}

func DefaultConfig() Config {
	return Config{Option: "Option", Collection: "Vec", Marker: "PhantomData"}
}

type Classification struct {
	Kind Kind
	// Inner is the wrapped type for Optional and Repeated fields.
	Inner ast.TypeID
	// Accessor is the singular method name of a Repeated field.
	Accessor     string
	AccessorSpan source.Span
}

// Classify decides how the builder stores and sets field f.
func Classify(decl *record.Decl, f *record.Field, cfg Config) (Classification, error) {
	accessor, accSpan, hasEach, err := EachAccessor(f)
	if err != nil {
		return Classification{}, err
	}
	if hasEach {
		inner, ok := WrapperInner(decl.Types, f.Type, cfg.Collection)
		if !ok {
			sp := f.Span
			if ty := decl.Types.Get(f.Type); ty != nil {
				sp = ty.Span
			}
			return Classification{}, record.Errorf(diag.DeriveEachNotCollection, sp,
				"`each` requires a `%s<T>` field", cfg.Collection).
				WithNote(accSpan, "accessor declared here")
		}
		return Classification{Kind: Repeated, Inner: inner, Accessor: accessor, AccessorSpan: accSpan}, nil
	}
	if inner, ok := OptionalInner(decl.Types, f.Type, cfg.Option); ok {
		return Classification{Kind: Optional, Inner: inner}, nil
	}
	return Classification{Kind: Plain}, nil
}

// OptionalInner returns T for `Option<T>` (name is the wrapper identifier).
func OptionalInner(types *ast.Types, ty ast.TypeID, name string) (ast.TypeID, bool) {
	return WrapperInner(types, ty, name)
}

// WrapperInner returns the single type argument of a path type whose last
// segment is name. Lifetimes, consts, bindings or a second argument make the
// shape unrecognized.
func WrapperInner(types *ast.Types, ty ast.TypeID, name string) (ast.TypeID, bool) {
	t := types.Get(ty)
	if t == nil || t.Kind != ast.TypePath {
		return ast.NoTypeID, false
	}
	seg := t.Path.LastSegment()
	if seg == nil || seg.Name != name || seg.Args == nil || seg.Args.Kind != ast.ArgsAngle {
		return ast.NoTypeID, false
	}
	if len(seg.Args.Args) != 1 || seg.Args.Args[0].Kind != ast.ArgType {
		return ast.NoTypeID, false
	}
	return seg.Args.Args[0].Type, true
}

const eachShape = "expected `builder(each = \"...\")`"

// EachAccessor reads `#[builder(each = "name")]` from the field. When the
// attribute is repeated the last `each` wins.
func EachAccessor(f *record.Field) (name string, sp source.Span, ok bool, err error) {
	for _, attr := range record.AttrsNamed(f.Attrs, "builder") {
		if attr.Meta.Kind != ast.MetaList || len(attr.Meta.List) == 0 {
			return "", source.Span{}, false, record.Errorf(diag.DeriveAttrUnknownKey, attr.Meta.Span, eachShape)
		}
		for i := range attr.Meta.List {
			nested := &attr.Meta.List[i]
			if !nested.Is("each") || nested.Kind != ast.MetaNameValue {
				return "", source.Span{}, false, record.Errorf(diag.DeriveAttrUnknownKey, attr.Meta.Span, eachShape).
					WithNote(nested.Span, "unsupported entry")
			}
			value, litSpan, isStr := record.StringLit(nested)
			if !isStr {
				return "", source.Span{}, false, record.Errorf(diag.DeriveAttrBadLiteral, litSpan, eachShape).
					WithNote(litSpan, "expected a string literal")
			}
			if !lexer.IsIdent(value) {
				return "", source.Span{}, false, record.Errorf(diag.DeriveAttrBadLiteral, litSpan, eachShape).
					WithNote(litSpan, fmt.Sprintf("%q is not a valid identifier", value))
			}
			name, sp, ok = value, litSpan, true
		}
	}
	return name, sp, ok, nil
}
