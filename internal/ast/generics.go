package ast

import (
	"rsderive/internal/source"
)

type GenericParamKind uint8

const (
	ParamLifetime GenericParamKind = iota
	ParamType
	ParamConst
)

func (k GenericParamKind) String() string {
	switch k {
	case ParamLifetime:
		return "lifetime"
	case ParamConst:
		return "const"
	default:
		return "type"
	}
}

type GenericParam struct {
	Kind  GenericParamKind
	Name  string // "'a" for lifetimes
	Span  source.Span
	Attrs []Attr
	// Bounds: trait/lifetime bounds for type params, outlives bounds for lifetimes.
	Bounds []Bound
	// ConstType is the declared type of a const param.
	ConstType TypeID
	// Default is the default type of a type param.
	Default TypeID
	// DefaultText is the raw default of a const param.
	DefaultText string
}

type BoundKind uint8

const (
	BoundTrait BoundKind = iota
	BoundLifetime
)

type Bound struct {
	Kind BoundKind
	Span source.Span
	// BoundTrait.
	Path         Path
	Maybe        bool // ?Sized
	MaybeConst   bool // ~const
	ForLifetimes []string
	Paren        bool // (Trait)
	// BoundLifetime.
	Lifetime string
}

type PredicateKind uint8

const (
	PredType     PredicateKind = iota // for<'a> T: Bounds
	PredLifetime                      // 'a: 'b + 'c
)

type WherePredicate struct {
	Kind         PredicateKind
	Span         source.Span
	ForLifetimes []string
	Type         TypeID
	Lifetime     string
	Bounds       []Bound
}

type Generics struct {
	Span   source.Span // `<...>`, empty when absent
	Params []GenericParam
	// Where holds the where-clause predicates in source order.
	Where     []WherePredicate
	WhereSpan source.Span
}

// TypeParams returns the type parameters in declaration order.
func (g *Generics) TypeParams() []*GenericParam {
	var out []*GenericParam
	for i := range g.Params {
		if g.Params[i].Kind == ParamType {
			out = append(out, &g.Params[i])
		}
	}
	return out
}

// Param finds a parameter by name.
func (g *Generics) Param(name string) *GenericParam {
	for i := range g.Params {
		if g.Params[i].Name == name {
			return &g.Params[i]
		}
	}
	return nil
}
