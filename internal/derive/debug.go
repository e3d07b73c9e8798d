package derive

import (
	"fmt"

	"rsderive/internal/ast"
	"rsderive/internal/bounds"
	"rsderive/internal/diag"
	"rsderive/internal/record"
	"rsderive/internal/rsemit"
	"rsderive/internal/source"
)

// Debug generates the Debug impl for decl with inferred bounds. The bounds
// result is returned for inspection.
func Debug(decl *record.Decl, cfg Config) (string, bounds.Result, error) {
	formats := make([]string, len(decl.Fields))
	custom := make([]bool, len(decl.Fields))
	for i := range decl.Fields {
		format, _, ok, err := FieldFormat(&decl.Fields[i])
		if err != nil {
			return "", bounds.Result{}, err
		}
		formats[i], custom[i] = format, ok
	}
	res, err := bounds.Infer(decl, cfg.Names, cfg.DebugTrait)
	if err != nil {
		return "", bounds.Result{}, err
	}

	printer := rsemit.NewPrinter(decl.Types)
	preds := printer.WherePredicates(decl.Generics)
	preds = append(preds, res.Predicates...)
	header := fmt.Sprintf("impl%s %s for %s%s%s",
		printer.ImplGenerics(decl.Generics, res.ParamBounds(cfg.DebugTrait)),
		cfg.DebugTrait,
		decl.Name,
		rsemit.TypeGenerics(decl.Generics),
		rsemit.WhereClause(preds),
	)
	module := cfg.fmtModule()

	w := rsemit.NewWriter()
	w.Line("#[automatically_derived]")
	w.Open(header)
	w.Open(fmt.Sprintf("fn fmt(&self, fmt: &mut %s::Formatter<'_>) -> %s::Result", module, module))
	w.Linef("fmt.debug_struct(%s)", rsemit.Quote(record.DisplayName(decl.Name)))
	w.IndentPush()
	for i := range decl.Fields {
		f := &decl.Fields[i]
		label := rsemit.Quote(record.DisplayName(f.Name))
		if !custom[i] {
			w.Linef(".field(%s, &self.%s)", label, f.Name)
			continue
		}
		w.Linef(".field(%s, &::core::format_args!(%s, &self.%s))", label, rsemit.Quote(formats[i]), f.Name)
	}
	w.Line(".finish()")
	w.IndentPop()
	w.Close("")
	w.Close("")
	return w.String(), res, nil
}

const formatShape = "expected `debug = \"...\"`"

// FieldFormat reads `#[debug = "..."]` from a field. The format string is
// passed through as written; its placeholders are checked by rustc when the
// generated code compiles. The last attribute wins.
func FieldFormat(f *record.Field) (format string, sp source.Span, ok bool, err error) {
	for _, attr := range record.AttrsNamed(f.Attrs, "debug") {
		if attr.Meta.Kind != ast.MetaNameValue {
			return "", source.Span{}, false, record.Errorf(diag.DeriveAttrUnknownKey, attr.Meta.Span, formatShape)
		}
		value, litSpan, isStr := record.StringLit(&attr.Meta)
		if !isStr {
			return "", source.Span{}, false, record.Errorf(diag.DeriveAttrBadLiteral, litSpan, formatShape).
				WithNote(litSpan, "expected a string literal")
		}
		format, sp, ok = value, litSpan, true
	}
	return format, sp, ok, nil
}
