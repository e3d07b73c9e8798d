package record

import (
	"rsderive/internal/ast"
	"rsderive/internal/source"
)

// Derive is one entry of a `#[derive(...)]` list.
type Derive struct {
	// Name is the last path segment: `Builder` for `my_crate::Builder`.
	Name string
	Path ast.Path
	Span source.Span
}

// Derives collects derive requests in attribute order.
func Derives(attrs []ast.Attr) []Derive {
	var out []Derive
	for i := range attrs {
		m := &attrs[i].Meta
		if attrs[i].Inner || m.Kind != ast.MetaList || !m.Is("derive") {
			continue
		}
		for j := range m.List {
			nested := &m.List[j]
			if nested.Kind != ast.MetaPath {
				continue
			}
			out = append(out, Derive{Name: nested.Path.Last(), Path: nested.Path, Span: nested.Span})
		}
	}
	return out
}

// HasDerive reports whether any derive list names name.
func HasDerive(attrs []ast.Attr, name string) bool {
	for _, d := range Derives(attrs) {
		if d.Name == name {
			return true
		}
	}
	return false
}

// AttrsNamed returns the outer attributes whose path is the identifier name.
func AttrsNamed(attrs []ast.Attr, name string) []*ast.Attr {
	var out []*ast.Attr
	for i := range attrs {
		if !attrs[i].Inner && attrs[i].Meta.Is(name) {
			out = append(out, &attrs[i])
		}
	}
	return out
}

// StringLit returns the decoded string of a name-value meta. ok is false
// when the value is missing, not a string, or not decodable.
func StringLit(m *ast.Meta) (value string, sp source.Span, ok bool) {
	if m.Kind != ast.MetaNameValue && m.Kind != ast.MetaLit {
		return "", m.Span, false
	}
	if m.Lit == nil {
		return "", m.Span, false
	}
	if !m.Lit.IsString() || !m.Lit.Valid {
		return "", m.Lit.Span, false
	}
	return m.Lit.Value, m.Lit.Span, true
}
