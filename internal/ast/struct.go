package ast

import (
	"rsderive/internal/source"
)

type StructStyle uint8

const (
	StructNamed StructStyle = iota // struct S { a: T }
	StructTuple                    // struct S(T);
	StructUnit                     // struct S;
)

func (s StructStyle) String() string {
	switch s {
	case StructTuple:
		return "tuple"
	case StructUnit:
		return "unit"
	default:
		return "named"
	}
}

// StructItem is the payload of struct and union items.
type StructItem struct {
	Name     string
	NameSpan source.Span
	Generics Generics
	Style    StructStyle
	Fields   []Field
}

// Field is a named field (Name set) or a positional tuple field (Name empty).
type Field struct {
	Name     string
	NameSpan source.Span
	Span     source.Span
	Attrs    []Attr
	Vis      Visibility
	Type     TypeID
}

type EnumItem struct {
	Name     string
	NameSpan source.Span
	Generics Generics
	Variants []Variant
}

type Variant struct {
	Name   string
	Span   source.Span
	Attrs  []Attr
	Style  StructStyle
	Fields []Field
	// Discriminant is the raw text after `=`, if any.
	Discriminant string
}
