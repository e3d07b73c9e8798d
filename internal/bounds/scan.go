package bounds

import (
	"rsderive/internal/ast"
	"rsderive/internal/introspect"
	"rsderive/internal/record"
	"rsderive/internal/rsemit"
	"rsderive/internal/source"
)

// Usage records how one type parameter occurs in the field types.
type Usage struct {
	Param  string
	Direct bool
	Marker bool
	// Assoc lists the distinct associated-type paths rooted at Param in
	// first-seen order.
	Assoc []AssocPath
}

// AssocPath is one associated-type path such as `T::Value`.
type AssocPath struct {
	Type ast.TypeID
	Text string
	Span source.Span
}

type scanner struct {
	types   *ast.Types
	printer *rsemit.Printer
	marker  string
	byName  map[string]*Usage
}

// Scan classifies every type parameter of decl. The result follows the
// declaration order of type parameters; lifetimes and const params are not
// included.
func Scan(decl *record.Decl, cfg introspect.Config) []Usage {
	params := decl.Generics.TypeParams()
	usages := make([]Usage, len(params))
	s := &scanner{
		types:   decl.Types,
		printer: rsemit.NewPrinter(decl.Types),
		marker:  cfg.Marker,
		byName:  make(map[string]*Usage, len(params)),
	}
	for i, gp := range params {
		usages[i].Param = gp.Name
		s.byName[gp.Name] = &usages[i]
	}
	if len(params) == 0 {
		return usages
	}
	for i := range decl.Fields {
		s.walk(decl.Fields[i].Type, false)
	}
	return usages
}

func (s *scanner) walk(id ast.TypeID, inMarker bool) {
	s.types.Walk(id, func(tid ast.TypeID, ty *ast.Type) bool {
		switch ty.Kind {
		case ast.TypePath:
			if !inMarker {
				if inner, ok := introspect.WrapperInner(s.types, tid, s.marker); ok {
					s.walk(inner, true)
					return false
				}
			}
			s.visitPath(tid, ty, inMarker)
		case ast.TypeQualified:
			if u := s.paramOf(ty.QSelf); u != nil {
				s.record(u, tid, ty, inMarker)
				s.walkPathArgs(ty.QTrait, inMarker)
				s.walkPathArgs(&ty.Path, inMarker)
				return false
			}
		}
		return true
	})
}

func (s *scanner) visitPath(tid ast.TypeID, ty *ast.Type, inMarker bool) {
	if ty.Path.Global || len(ty.Path.Segments) == 0 {
		return
	}
	u := s.byName[ty.Path.Segments[0].Name]
	if u == nil {
		return
	}
	if len(ty.Path.Segments) == 1 {
		if inMarker {
			u.Marker = true
		} else {
			u.Direct = true
		}
		return
	}
	s.record(u, tid, ty, inMarker)
}

// record notes an associated path. Inside a marker it only counts as marker use.
func (s *scanner) record(u *Usage, tid ast.TypeID, ty *ast.Type, inMarker bool) {
	if inMarker {
		u.Marker = true
		return
	}
	text := s.printer.Type(tid)
	for _, a := range u.Assoc {
		if a.Text == text {
			return
		}
	}
	u.Assoc = append(u.Assoc, AssocPath{Type: tid, Text: text, Span: ty.Span})
}

// paramOf returns the usage for a bare `T` type.
func (s *scanner) paramOf(id ast.TypeID) *Usage {
	ty := s.types.Get(id)
	if ty == nil || ty.Kind != ast.TypePath || !ty.Path.IsIdent() {
		return nil
	}
	return s.byName[ty.Path.Segments[0].Name]
}

func (s *scanner) walkPathArgs(p *ast.Path, inMarker bool) {
	if p == nil {
		return
	}
	for i := range p.Segments {
		args := p.Segments[i].Args
		if args == nil {
			continue
		}
		for j := range args.Args {
			if args.Args[j].Kind == ast.ArgType || args.Args[j].Kind == ast.ArgBinding {
				s.walk(args.Args[j].Type, inMarker)
			}
		}
		for _, in := range args.Inputs {
			s.walk(in, inMarker)
		}
		if args.Output.IsValid() {
			s.walk(args.Output, inMarker)
		}
	}
}
