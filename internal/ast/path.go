package ast

import (
	"rsderive/internal/source"
)

// Path is `a::b::C<T>`, optionally global (`::core::option::Option`).
type Path struct {
	Global   bool
	Segments []PathSegment
	Span     source.Span
}

func (p Path) Last() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1].Name
}

func (p Path) LastSegment() *PathSegment {
	if len(p.Segments) == 0 {
		return nil
	}
	return &p.Segments[len(p.Segments)-1]
}

// IsIdent reports a single-segment path without generic arguments.
func (p Path) IsIdent() bool {
	return !p.Global && len(p.Segments) == 1 && p.Segments[0].Args == nil
}

type PathSegment struct {
	Name string
	Span source.Span
	// Args is nil when the segment carries no generic arguments.
	Args *GenericArgs
}

type GenericArgsKind uint8

const (
	ArgsAngle GenericArgsKind = iota // <A, B, Item = C>
	ArgsParen                        // (A, B) -> C
)

type GenericArgs struct {
	Kind GenericArgsKind
	Span source.Span
	// Turbofish is set for `::<...>`.
	Turbofish bool
	Args      []GenericArg
	// Inputs/Output are set for ArgsParen.
	Inputs []TypeID
	Output TypeID
}

// TypeArgs returns the type arguments only, in order.
func (g *GenericArgs) TypeArgs() []TypeID {
	if g == nil {
		return nil
	}
	var out []TypeID
	for _, a := range g.Args {
		if a.Kind == ArgType {
			out = append(out, a.Type)
		}
	}
	return out
}

type GenericArgKind uint8

const (
	ArgType       GenericArgKind = iota // T
	ArgLifetime                         // 'a
	ArgConst                            // 3, {N + 1}, -1
	ArgBinding                          // Item = T
	ArgConstraint                       // Item: Bound
)

type GenericArg struct {
	Kind     GenericArgKind
	Span     source.Span
	Type     TypeID // ArgType, ArgBinding
	Lifetime string
	Text     string // ArgConst
	Name     string // ArgBinding, ArgConstraint
	// NameArgs is the GAT argument list on a binding name (`Item<'a> = T`).
	NameArgs *GenericArgs
	Bounds   []Bound // ArgConstraint
}
