package record

import (
	"strings"

	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/source"
)

// Decl is a named-field struct prepared for the generators.
type Decl struct {
	Item     ast.ItemID
	Name     string
	NameSpan source.Span
	Span     source.Span
	Vis      ast.Visibility
	Generics *ast.Generics
	Fields   []Field
	Attrs    []ast.Attr
	// Types is the arena that owns every ast.TypeID referenced by the decl.
	Types *ast.Types
}

type Field struct {
	Index    int
	Name     string
	NameSpan source.Span
	Span     source.Span
	Vis      ast.Visibility
	Type     ast.TypeID
	Attrs    []ast.Attr
}

// DisplayName strips the raw-identifier prefix: `r#type` prints as `type`.
func DisplayName(name string) string {
	return strings.TrimPrefix(name, "r#")
}

const shapeMessage = "this derive macro only works on structs with named fields"

// FromItem converts a struct item into a Decl. Every other shape (tuple and
// unit structs, enums, unions, non-type items) is rejected with an error
// located at the item name.
func FromItem(b *ast.Builder, id ast.ItemID) (*Decl, error) {
	item := b.Items.Get(id)
	if item == nil {
		return nil, Errorf(diag.DeriveShapeNotNamedStruct, source.Span{}, "%s", shapeMessage)
	}
	switch item.Kind {
	case ast.ItemStruct:
	case ast.ItemUnion:
		st, _ := b.Items.Struct(id)
		return nil, Errorf(diag.DeriveShapeNotNamedStruct, st.NameSpan, "%s", shapeMessage).
			WithNote(item.Span, "unions are not supported")
	case ast.ItemEnum:
		en, _ := b.Items.Enum(id)
		return nil, Errorf(diag.DeriveShapeNotNamedStruct, en.NameSpan, "%s", shapeMessage).
			WithNote(item.Span, "enums are not supported")
	default:
		return nil, Errorf(diag.DeriveShapeNotNamedStruct, item.Span, "%s", shapeMessage)
	}

	st, _ := b.Items.Struct(id)
	if st.Style != ast.StructNamed {
		return nil, Errorf(diag.DeriveShapeNotNamedStruct, st.NameSpan, "%s", shapeMessage).
			WithNote(item.Span, st.Style.String()+" structs are not supported")
	}

	decl := &Decl{
		Item:     id,
		Name:     st.Name,
		NameSpan: st.NameSpan,
		Span:     item.Span,
		Vis:      item.Vis,
		Generics: &st.Generics,
		Attrs:    item.Attrs,
		Types:    b.Types,
		Fields:   make([]Field, 0, len(st.Fields)),
	}
	for i := range st.Fields {
		f := &st.Fields[i]
		decl.Fields = append(decl.Fields, Field{
			Index:    i,
			Name:     f.Name,
			NameSpan: f.NameSpan,
			Span:     f.Span,
			Vis:      f.Vis,
			Type:     f.Type,
			Attrs:    f.Attrs,
		})
	}
	return decl, nil
}

// Type returns the field type node.
func (d *Decl) Type(f *Field) *ast.Type {
	return d.Types.Get(f.Type)
}
