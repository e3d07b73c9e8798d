// Package introspect classifies struct fields for the generators.
//
// Recognition is purely syntactic: a field is Optional when its outermost
// path segment is the configured optional wrapper with exactly one type
// argument, Repeated when it carries `#[builder(each = "...")]` over the
// configured collection wrapper, Plain otherwise. Type aliases are not
// resolved. WrapperInner is the only place wrapper shapes are matched; the
// bound inference reuses it for marker detection.
package introspect
