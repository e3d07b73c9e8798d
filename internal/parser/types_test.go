package parser

import (
	"testing"

	"rsderive/internal/ast"
)

func TestParseFieldTypes(t *testing.T) {
	tests := []struct {
		ty   string
		kind ast.TypeKind
	}{
		{"u8", ast.TypePath},
		{"Vec<Vec<u8>>", ast.TypePath},
		{"HashMap<String, Vec<Option<T>>>", ast.TypePath},
		{"::core::option::Option<T>", ast.TypePath},
		{"Vec::<T>", ast.TypePath},
		{"&'a mut T", ast.TypeRef},
		{"&&str", ast.TypeRef},
		{"*const T", ast.TypePtr},
		{"*mut [u8]", ast.TypePtr},
		{"[u8; 4]", ast.TypeArray},
		{"[T; N * 2]", ast.TypeArray},
		{"[T]", ast.TypeSlice},
		{"(A, B)", ast.TypeTuple},
		{"()", ast.TypeTuple},
		{"(T,)", ast.TypeTuple},
		{"(T)", ast.TypeParen},
		{"fn(u8) -> u8", ast.TypeFn},
		{"unsafe extern \"C\" fn(x: i32, ...)", ast.TypeFn},
		{"for<'a> fn(&'a u8)", ast.TypeFn},
		{"Box<dyn Fn(u8) -> bool + Send + 'static>", ast.TypePath},
		{"dyn Debug", ast.TypeTraitObject},
		{"impl Iterator<Item = u8>", ast.TypeTraitObject},
		{"!", ast.TypeNever},
		{"_", ast.TypeInfer},
		{"<T as Trait>::Value", ast.TypeQualified},
		{"<T>::Value", ast.TypeQualified},
		{"Vec<<T as Trait>::Value>", ast.TypePath},
		{"T::Value", ast.TypePath},
		{"PhantomData<fn() -> T>", ast.TypePath},
		{"Box<dyn for<'a> Fn(&'a u8)>", ast.TypePath},
		{"Foo<Item<'a> = u8, Other: Clone>", ast.TypePath},
		{"Foo<{ N + 1 }, 3, -1, true>", ast.TypePath},
		{"my_type!(u8)", ast.TypeMacro},
		{"Self", ast.TypePath},
	}
	for _, tt := range tests {
		builder, s := mustStruct(t, "struct S { f: "+tt.ty+" }")
		got := builder.Types.Get(s.Fields[0].Type)
		if got.Kind != tt.kind {
			t.Errorf("%q: got kind %v, want %v", tt.ty, got.Kind, tt.kind)
		}
	}
}

func TestParseNestedGenericArgs(t *testing.T) {
	builder, s := mustStruct(t, "struct S<T: Trait> { a: Vec<Vec<T::Value>>, b: PhantomData<T> }")
	a := builder.Types.Get(s.Fields[0].Type)
	outer := a.Path.LastSegment()
	if outer.Name != "Vec" || outer.Args == nil || len(outer.Args.TypeArgs()) != 1 {
		t.Fatalf("unexpected outer Vec: %+v", outer)
	}
	inner := builder.Types.Get(outer.Args.TypeArgs()[0])
	innermost := builder.Types.Get(inner.Path.LastSegment().Args.TypeArgs()[0])
	if len(innermost.Path.Segments) != 2 || innermost.Path.Segments[0].Name != "T" || innermost.Path.Last() != "Value" {
		t.Fatalf("unexpected innermost path: %+v", innermost.Path)
	}

	var names []string
	builder.Types.Walk(s.Fields[0].Type, func(_ ast.TypeID, ty *ast.Type) bool {
		if ty.Kind == ast.TypePath {
			names = append(names, ty.Path.Last())
		}
		return true
	})
	if len(names) != 3 || names[0] != "Vec" || names[2] != "Value" {
		t.Fatalf("unexpected walk order: %v", names)
	}
}

func TestParseQualifiedPath(t *testing.T) {
	builder, s := mustStruct(t, "struct S<T> { a: <T as Iterator>::Item }")
	q := builder.Types.Get(s.Fields[0].Type)
	if q.Kind != ast.TypeQualified || q.QTrait == nil || q.QTrait.Last() != "Iterator" || q.Path.Last() != "Item" {
		t.Fatalf("unexpected qualified type: %+v", q)
	}
	if self := builder.Types.Get(q.QSelf); self.Path.Last() != "T" {
		t.Fatalf("unexpected qself: %+v", self)
	}
}

func TestParseWhereClauseText(t *testing.T) {
	tests := []struct {
		text  string
		preds int
		ok    bool
	}{
		{"T::Value: Debug", 1, true},
		{"T::Value: ::std::fmt::Debug, U: Clone + 'static,", 2, true},
		{"for<'a> &'a T: Debug", 1, true},
		{"'a: 'b", 1, true},
		{"where T: Debug", 1, true},
		{"<T as Trait>::Value: Debug", 1, true},
		{"T:", 1, true},
		{"", 0, true},
		{"T::Value Debug", 0, false},
		{"T: Debug {", 0, false},
		{"T: \"unterminated", 0, false},
	}
	for _, tt := range tests {
		types := ast.NewTypes(0)
		preds, err := ParseWhereClause(types, tt.text)
		if (err == nil) != tt.ok {
			t.Errorf("%q: err = %v, want ok=%v", tt.text, err, tt.ok)
			continue
		}
		if len(preds) != tt.preds {
			t.Errorf("%q: got %d predicates, want %d", tt.text, len(preds), tt.preds)
		}
	}
}
