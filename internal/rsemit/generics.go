package rsemit

import (
	"strings"

	"rsderive/internal/ast"
)

// ImplGenerics renders the parameter list for an `impl<...>` header: bounds
// are kept, defaults are dropped. extra adds bound texts to type params by
// name. Empty generics render as "".
func (p *Printer) ImplGenerics(g *ast.Generics, extra map[string][]string) string {
	return p.params(g, extra, false)
}

// DeclGenerics renders the parameter list of a type declaration, defaults
// included.
func (p *Printer) DeclGenerics(g *ast.Generics) string {
	return p.params(g, nil, true)
}

func (p *Printer) params(g *ast.Generics, extra map[string][]string, defaults bool) string {
	if g == nil || len(g.Params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(g.Params))
	for i := range g.Params {
		gp := &g.Params[i]
		var sb strings.Builder
		switch gp.Kind {
		case ast.ParamLifetime:
			sb.WriteString(gp.Name)
			if len(gp.Bounds) > 0 {
				sb.WriteString(": ")
				p.writeBounds(&sb, gp.Bounds)
			}
		case ast.ParamConst:
			sb.WriteString("const ")
			sb.WriteString(gp.Name)
			sb.WriteString(": ")
			p.writeType(&sb, gp.ConstType)
			if defaults && gp.DefaultText != "" {
				sb.WriteString(" = ")
				sb.WriteString(gp.DefaultText)
			}
		default:
			sb.WriteString(gp.Name)
			bounds := make([]string, 0, len(gp.Bounds)+1)
			for j := range gp.Bounds {
				var bb strings.Builder
				p.writeBound(&bb, &gp.Bounds[j])
				bounds = append(bounds, bb.String())
			}
			bounds = append(bounds, extra[gp.Name]...)
			if len(bounds) > 0 {
				sb.WriteString(": ")
				sb.WriteString(strings.Join(bounds, " + "))
			}
			if defaults && gp.Default.IsValid() {
				sb.WriteString(" = ")
				p.writeType(&sb, gp.Default)
			}
		}
		parts = append(parts, sb.String())
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// TypeGenerics renders the argument list naming every parameter:
// `<'a, T, N>`.
func TypeGenerics(g *ast.Generics) string {
	if g == nil || len(g.Params) == 0 {
		return ""
	}
	names := make([]string, len(g.Params))
	for i := range g.Params {
		names[i] = g.Params[i].Name
	}
	return "<" + strings.Join(names, ", ") + ">"
}

// WherePredicates renders the declared where-clause of g.
func (p *Printer) WherePredicates(g *ast.Generics) []string {
	if g == nil {
		return nil
	}
	out := make([]string, 0, len(g.Where))
	for i := range g.Where {
		out = append(out, p.Predicate(&g.Where[i]))
	}
	return out
}

// WhereClause joins predicate texts into ` where A: B, C: D`, or "" when
// there are none. The leading space lets callers append it to a header.
func WhereClause(preds []string) string {
	if len(preds) == 0 {
		return ""
	}
	return " where " + strings.Join(preds, ", ")
}
