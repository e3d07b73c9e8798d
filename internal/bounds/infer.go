package bounds

import (
	"fmt"

	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/introspect"
	"rsderive/internal/parser"
	"rsderive/internal/record"
	"rsderive/internal/rsemit"
	"rsderive/internal/source"
)

// Decision is the outcome for one type parameter.
type Decision uint8

const (
	// BoundDirect: T is used directly and gets `T: Trait`.
	BoundDirect Decision = iota
	// SkipMarker: T only appears inside the marker wrapper.
	SkipMarker
	// BoundAssoc: T only appears through associated paths, each of which
	// gets a predicate instead of T.
	BoundAssoc
	// BoundUnused: T does not appear in any field and is bounded anyway.
	BoundUnused
	// Overridden: `#[debug(bound = "...")]` replaced the inference.
	Overridden
)

func (d Decision) String() string {
	switch d {
	case BoundDirect:
		return "direct"
	case SkipMarker:
		return "marker-only"
	case BoundAssoc:
		return "associated-only"
	case BoundUnused:
		return "unused"
	case Overridden:
		return "override"
	default:
		return "unknown"
	}
}

// Param is the inference result for one type parameter.
type Param struct {
	Name     string
	Decision Decision
	Usage    Usage
}

// Bounded reports whether the parameter itself receives the trait bound.
func (p Param) Bounded() bool {
	return p.Decision == BoundDirect || p.Decision == BoundUnused
}

// Result is what the Debug impl adds to the declared generics.
type Result struct {
	Params []Param
	// Predicates are extra where-predicates, rendered: one per associated
	// path (`T::Value: ::std::fmt::Debug`) or the override list verbatim.
	Predicates []string
	// Override is set when the manual bound attribute was used.
	Override     bool
	OverrideSpan source.Span
}

// ParamBounds returns the extra bound texts per bounded parameter, in the
// form expected by rsemit.Printer.ImplGenerics.
func (r *Result) ParamBounds(trait string) map[string][]string {
	out := make(map[string][]string)
	for _, p := range r.Params {
		if p.Bounded() {
			out[p.Name] = []string{trait}
		}
	}
	return out
}

// Infer computes the bounds for the Debug impl of decl. trait is the bound
// text (`::std::fmt::Debug`).
func Infer(decl *record.Decl, cfg introspect.Config, trait string) (Result, error) {
	override, sp, ok, err := OverrideText(decl)
	if err != nil {
		return Result{}, err
	}
	if ok {
		preds, perr := parser.ParseWhereClause(decl.Types, override)
		if perr != nil {
			return Result{}, record.Errorf(diag.DeriveBoundParse, sp,
				"invalid `debug(bound = ...)` predicate: %v", perr)
		}
		printer := rsemit.NewPrinter(decl.Types)
		res := Result{Override: true, OverrideSpan: sp, Predicates: make([]string, 0, len(preds))}
		for i := range preds {
			res.Predicates = append(res.Predicates, printer.Predicate(&preds[i]))
		}
		for _, gp := range decl.Generics.TypeParams() {
			res.Params = append(res.Params, Param{Name: gp.Name, Decision: Overridden, Usage: Usage{Param: gp.Name}})
		}
		return res, nil
	}

	usages := Scan(decl, cfg)
	res := Result{Params: make([]Param, 0, len(usages))}
	for _, u := range usages {
		p := Param{Name: u.Param, Usage: u}
		switch {
		case u.Direct:
			p.Decision = BoundDirect
		case len(u.Assoc) > 0:
			p.Decision = BoundAssoc
			for _, a := range u.Assoc {
				res.Predicates = append(res.Predicates, fmt.Sprintf("%s: %s", a.Text, trait))
			}
		case u.Marker:
			p.Decision = SkipMarker
		default:
			p.Decision = BoundUnused
		}
		res.Params = append(res.Params, p)
	}
	return res, nil
}

const boundShape = "expected `debug(bound = \"...\")`"

// OverrideText reads `#[debug(bound = "...")]` from the type attributes.
// sp is the span of the string literal.
func OverrideText(decl *record.Decl) (text string, sp source.Span, ok bool, err error) {
	for _, attr := range record.AttrsNamed(decl.Attrs, "debug") {
		if attr.Meta.Kind != ast.MetaList || len(attr.Meta.List) == 0 {
			return "", source.Span{}, false, record.Errorf(diag.DeriveAttrUnknownKey, attr.Meta.Span, boundShape)
		}
		for i := range attr.Meta.List {
			nested := &attr.Meta.List[i]
			if !nested.Is("bound") || nested.Kind != ast.MetaNameValue {
				return "", source.Span{}, false, record.Errorf(diag.DeriveAttrUnknownKey, attr.Meta.Span, boundShape).
					WithNote(nested.Span, "unsupported entry")
			}
			value, litSpan, isStr := record.StringLit(nested)
			if !isStr {
				return "", source.Span{}, false, record.Errorf(diag.DeriveAttrBadLiteral, litSpan, boundShape).
					WithNote(litSpan, "expected a string literal")
			}
			text, sp, ok = value, litSpan, true
		}
	}
	return text, sp, ok, nil
}
