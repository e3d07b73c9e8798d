package ast

import (
	"rsderive/internal/source"
	"rsderive/internal/token"
)

// Attr описывает атрибут вида `#[meta]` или `#![meta]`.
type Attr struct {
	Span  source.Span
	Inner bool
	Meta  Meta
}

type MetaKind uint8

const (
	MetaPath      MetaKind = iota // #[path]
	MetaNameValue                 // #[path = lit]
	MetaList                      // #[path(nested, ...)]
	MetaLit                       // "lit" nested inside a list
	MetaRaw                       // anything that is not a meta; Text keeps the tokens
)

func (k MetaKind) String() string {
	switch k {
	case MetaPath:
		return "path"
	case MetaNameValue:
		return "name-value"
	case MetaList:
		return "list"
	case MetaLit:
		return "lit"
	default:
		return "raw"
	}
}

type Meta struct {
	Kind MetaKind
	Span source.Span
	Path Path
	// Lit is set for MetaNameValue with a literal value and for MetaLit.
	Lit *Lit
	// List holds nested metas for MetaList.
	List []Meta
	// Text is the raw source of the value (MetaNameValue with a non-literal
	// value) or of the whole meta (MetaRaw).
	Text string
}

// Is reports whether the meta path is the single identifier name.
func (m *Meta) Is(name string) bool {
	return len(m.Path.Segments) == 1 && !m.Path.Global && m.Path.Segments[0].Name == name
}

// Lit is a literal token together with its decoded value.
type Lit struct {
	Kind token.Kind
	Span source.Span
	Text string
	// Value is the unescaped content for string-like and char literals,
	// the source text otherwise.
	Value string
	// Valid is false when the literal could not be decoded.
	Valid bool
}

func (l *Lit) IsString() bool {
	return l != nil && (l.Kind == token.StringLit || l.Kind == token.RawStringLit)
}
