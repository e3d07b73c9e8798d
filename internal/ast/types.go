package ast

import (
	"rsderive/internal/source"
)

type TypeKind uint8

const (
	TypePath        TypeKind = iota // a::B<T>
	TypeQualified                   // <T as Tr>::X, <T>::X
	TypeRef                         // &'a mut T
	TypePtr                         // *const T, *mut T
	TypeSlice                       // [T]
	TypeArray                       // [T; N]
	TypeTuple                       // (A, B), ()
	TypeFn                          // for<'a> unsafe extern "C" fn(A) -> B
	TypeTraitObject                 // dyn A + B, impl A, bare A + 'a
	TypeNever                       // !
	TypeInfer                       // _
	TypeParen                       // (T)
	TypeMacro                       // m!(...) in type position
)

var typeKindNames = [...]string{
	TypePath:        "path",
	TypeQualified:   "qualified",
	TypeRef:         "ref",
	TypePtr:         "ptr",
	TypeSlice:       "slice",
	TypeArray:       "array",
	TypeTuple:       "tuple",
	TypeFn:          "fn",
	TypeTraitObject: "trait-object",
	TypeNever:       "never",
	TypeInfer:       "infer",
	TypeParen:       "paren",
	TypeMacro:       "macro",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "unknown"
}

// Type is a flat node; the fields in use depend on Kind.
type Type struct {
	Kind TypeKind
	Span source.Span

	// TypePath, TypeQualified (trailing segments), TypeMacro.
	Path Path
	// TypeQualified: `<QSelf as QTrait>::Path`; QTrait is nil for `<QSelf>::Path`.
	QSelf  TypeID
	QTrait *Path

	// TypeRef.
	Lifetime string
	Mut      bool
	// TypePtr: Mut selects `*mut`, otherwise `*const`.

	// TypeRef, TypePtr, TypeSlice, TypeArray, TypeParen.
	Elem TypeID
	// TypeArray length expression, TypeMacro body; raw source text.
	Text string

	// TypeTuple.
	Elems []TypeID

	// TypeFn.
	Fn *FnSig

	// TypeTraitObject.
	Dyn    bool
	Impl   bool
	Bounds []Bound
}

type FnSig struct {
	ForLifetimes []string
	Unsafe       bool
	// Abi is the raw ABI string literal (`"C"`), empty for `extern` without one.
	Abi      string
	Extern   bool
	Params   []TypeID
	Variadic bool
	Ret      TypeID
}

type Types struct {
	Arena *Arena[Type]
}

func NewTypes(capHint uint) *Types {
	return &Types{Arena: NewArena[Type](capHint)}
}

func (t *Types) New(ty Type) TypeID {
	return TypeID(t.Arena.Allocate(ty))
}

func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}

// Walk visits id and every type nested in it (including types inside
// generic arguments and bounds), depth-first, pre-order. Returning false from
// visit skips the children of the visited node.
func (t *Types) Walk(id TypeID, visit func(TypeID, *Type) bool) {
	ty := t.Get(id)
	if ty == nil || !visit(id, ty) {
		return
	}
	walkPath := func(p *Path) {
		for i := range p.Segments {
			t.walkArgs(p.Segments[i].Args, visit)
		}
	}
	switch ty.Kind {
	case TypePath:
		walkPath(&ty.Path)
	case TypeQualified:
		t.Walk(ty.QSelf, visit)
		if ty.QTrait != nil {
			walkPath(ty.QTrait)
		}
		walkPath(&ty.Path)
	case TypeRef, TypePtr, TypeSlice, TypeArray, TypeParen:
		t.Walk(ty.Elem, visit)
	case TypeTuple:
		for _, e := range ty.Elems {
			t.Walk(e, visit)
		}
	case TypeFn:
		for _, p := range ty.Fn.Params {
			t.Walk(p, visit)
		}
		t.Walk(ty.Fn.Ret, visit)
	case TypeTraitObject:
		for i := range ty.Bounds {
			t.walkBound(&ty.Bounds[i], visit)
		}
	}
}

func (t *Types) walkArgs(args *GenericArgs, visit func(TypeID, *Type) bool) {
	if args == nil {
		return
	}
	for i := range args.Args {
		a := &args.Args[i]
		switch a.Kind {
		case ArgType:
			t.Walk(a.Type, visit)
		case ArgBinding:
			t.walkArgs(a.NameArgs, visit)
			t.Walk(a.Type, visit)
		case ArgConstraint:
			t.walkArgs(a.NameArgs, visit)
			for j := range a.Bounds {
				t.walkBound(&a.Bounds[j], visit)
			}
		}
	}
	for _, in := range args.Inputs {
		t.Walk(in, visit)
	}
	t.Walk(args.Output, visit)
}

func (t *Types) walkBound(b *Bound, visit func(TypeID, *Type) bool) {
	if b.Kind != BoundTrait {
		return
	}
	for i := range b.Path.Segments {
		t.walkArgs(b.Path.Segments[i].Args, visit)
	}
}
