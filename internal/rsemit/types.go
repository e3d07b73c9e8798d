package rsemit

import (
	"strings"

	"rsderive/internal/ast"
)

// Printer renders AST nodes owned by one type arena.
type Printer struct {
	types *ast.Types
}

func NewPrinter(types *ast.Types) *Printer {
	return &Printer{types: types}
}

// Type renders a type in canonical spacing: `&'a mut Vec<T>`.
func (p *Printer) Type(id ast.TypeID) string {
	var sb strings.Builder
	p.writeType(&sb, id)
	return sb.String()
}

// Path renders a path with its generic arguments.
func (p *Printer) Path(path *ast.Path) string {
	var sb strings.Builder
	p.writePath(&sb, path)
	return sb.String()
}

// Bounds renders `A + B + 'a`.
func (p *Printer) Bounds(bounds []ast.Bound) string {
	var sb strings.Builder
	p.writeBounds(&sb, bounds)
	return sb.String()
}

// Predicate renders one where-predicate.
func (p *Printer) Predicate(pred *ast.WherePredicate) string {
	var sb strings.Builder
	if pred.Kind == ast.PredLifetime {
		sb.WriteString(pred.Lifetime)
		sb.WriteString(":")
		if len(pred.Bounds) > 0 {
			sb.WriteByte(' ')
			p.writeBounds(&sb, pred.Bounds)
		}
		return sb.String()
	}
	writeForLifetimes(&sb, pred.ForLifetimes)
	p.writeType(&sb, pred.Type)
	sb.WriteString(":")
	if len(pred.Bounds) > 0 {
		sb.WriteByte(' ')
		p.writeBounds(&sb, pred.Bounds)
	}
	return sb.String()
}

func (p *Printer) writeType(sb *strings.Builder, id ast.TypeID) {
	ty := p.types.Get(id)
	if ty == nil {
		sb.WriteString("_")
		return
	}
	switch ty.Kind {
	case ast.TypePath:
		p.writePath(sb, &ty.Path)
	case ast.TypeQualified:
		sb.WriteByte('<')
		p.writeType(sb, ty.QSelf)
		if ty.QTrait != nil {
			sb.WriteString(" as ")
			p.writePath(sb, ty.QTrait)
		}
		sb.WriteByte('>')
		for i := range ty.Path.Segments {
			sb.WriteString("::")
			p.writeSegment(sb, &ty.Path.Segments[i])
		}
	case ast.TypeRef:
		sb.WriteByte('&')
		if ty.Lifetime != "" {
			sb.WriteString(ty.Lifetime)
			sb.WriteByte(' ')
		}
		if ty.Mut {
			sb.WriteString("mut ")
		}
		p.writeType(sb, ty.Elem)
	case ast.TypePtr:
		if ty.Mut {
			sb.WriteString("*mut ")
		} else {
			sb.WriteString("*const ")
		}
		p.writeType(sb, ty.Elem)
	case ast.TypeSlice:
		sb.WriteByte('[')
		p.writeType(sb, ty.Elem)
		sb.WriteByte(']')
	case ast.TypeArray:
		sb.WriteByte('[')
		p.writeType(sb, ty.Elem)
		sb.WriteString("; ")
		sb.WriteString(ty.Text)
		sb.WriteByte(']')
	case ast.TypeTuple:
		sb.WriteByte('(')
		for i, e := range ty.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			p.writeType(sb, e)
		}
		if len(ty.Elems) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
	case ast.TypeFn:
		p.writeFn(sb, ty.Fn)
	case ast.TypeTraitObject:
		switch {
		case ty.Dyn:
			sb.WriteString("dyn ")
		case ty.Impl:
			sb.WriteString("impl ")
		}
		p.writeBounds(sb, ty.Bounds)
	case ast.TypeNever:
		sb.WriteByte('!')
	case ast.TypeInfer:
		sb.WriteByte('_')
	case ast.TypeParen:
		sb.WriteByte('(')
		p.writeType(sb, ty.Elem)
		sb.WriteByte(')')
	case ast.TypeMacro:
		p.writePath(sb, &ty.Path)
		sb.WriteString("!(")
		sb.WriteString(ty.Text)
		sb.WriteByte(')')
	}
}

func (p *Printer) writeFn(sb *strings.Builder, fn *ast.FnSig) {
	if fn == nil {
		sb.WriteString("fn()")
		return
	}
	writeForLifetimes(sb, fn.ForLifetimes)
	if fn.Unsafe {
		sb.WriteString("unsafe ")
	}
	if fn.Extern {
		sb.WriteString("extern ")
		if fn.Abi != "" {
			sb.WriteString(fn.Abi)
			sb.WriteByte(' ')
		}
	}
	sb.WriteString("fn(")
	for i, param := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		p.writeType(sb, param)
	}
	if fn.Variadic {
		if len(fn.Params) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
	}
	sb.WriteByte(')')
	if fn.Ret.IsValid() {
		sb.WriteString(" -> ")
		p.writeType(sb, fn.Ret)
	}
}

func (p *Printer) writePath(sb *strings.Builder, path *ast.Path) {
	if path.Global {
		sb.WriteString("::")
	}
	for i := range path.Segments {
		if i > 0 {
			sb.WriteString("::")
		}
		p.writeSegment(sb, &path.Segments[i])
	}
}

func (p *Printer) writeSegment(sb *strings.Builder, seg *ast.PathSegment) {
	sb.WriteString(seg.Name)
	if seg.Args != nil {
		p.writeArgs(sb, seg.Args)
	}
}

func (p *Printer) writeArgs(sb *strings.Builder, args *ast.GenericArgs) {
	if args.Kind == ast.ArgsParen {
		sb.WriteByte('(')
		for i, in := range args.Inputs {
			if i > 0 {
				sb.WriteString(", ")
			}
			p.writeType(sb, in)
		}
		sb.WriteByte(')')
		if args.Output.IsValid() {
			sb.WriteString(" -> ")
			p.writeType(sb, args.Output)
		}
		return
	}
	if args.Turbofish {
		sb.WriteString("::")
	}
	sb.WriteByte('<')
	for i := range args.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		a := &args.Args[i]
		switch a.Kind {
		case ast.ArgType:
			p.writeType(sb, a.Type)
		case ast.ArgLifetime:
			sb.WriteString(a.Lifetime)
		case ast.ArgConst:
			sb.WriteString(a.Text)
		case ast.ArgBinding:
			sb.WriteString(a.Name)
			if a.NameArgs != nil {
				p.writeArgs(sb, a.NameArgs)
			}
			sb.WriteString(" = ")
			p.writeType(sb, a.Type)
		case ast.ArgConstraint:
			sb.WriteString(a.Name)
			if a.NameArgs != nil {
				p.writeArgs(sb, a.NameArgs)
			}
			sb.WriteString(": ")
			p.writeBounds(sb, a.Bounds)
		}
	}
	sb.WriteByte('>')
}

func (p *Printer) writeBounds(sb *strings.Builder, bounds []ast.Bound) {
	for i := range bounds {
		if i > 0 {
			sb.WriteString(" + ")
		}
		p.writeBound(sb, &bounds[i])
	}
}

func (p *Printer) writeBound(sb *strings.Builder, b *ast.Bound) {
	if b.Kind == ast.BoundLifetime {
		sb.WriteString(b.Lifetime)
		return
	}
	if b.Paren {
		sb.WriteByte('(')
	}
	writeForLifetimes(sb, b.ForLifetimes)
	if b.MaybeConst {
		sb.WriteString("~const ")
	}
	if b.Maybe {
		sb.WriteByte('?')
	}
	p.writePath(sb, &b.Path)
	if b.Paren {
		sb.WriteByte(')')
	}
}

func writeForLifetimes(sb *strings.Builder, lifetimes []string) {
	if len(lifetimes) == 0 {
		return
	}
	sb.WriteString("for<")
	sb.WriteString(strings.Join(lifetimes, ", "))
	sb.WriteString("> ")
}
