package ast

import (
	"rsderive/internal/source"
	"rsderive/internal/token"
)

// MacroCallItem is an item-level invocation `path!(...)`, `path![...];` or
// `path! { ... }`. Tokens excludes the outer delimiters.
type MacroCallItem struct {
	Path     Path
	Delim    token.Kind
	Tokens   []token.Token
	BodySpan source.Span // between the outer delimiters
}

// Name returns the last path segment, e.g. "seq" for `::seq::seq!`.
func (m *MacroCallItem) Name() string {
	return m.Path.Last()
}
