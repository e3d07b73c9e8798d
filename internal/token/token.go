package token

import (
	"rsderive/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal (bool keywords included).
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, RawStringLit, ByteStringLit, CharLit, ByteLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsStringLike reports whether the token is a (raw) string literal.
func (t Token) IsStringLike() bool {
	return t.Kind == StringLit || t.Kind == RawStringLit
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAs && t.Kind <= KwWhere
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsOpen reports whether the token opens a delimited group.
func (t Token) IsOpen() bool {
	return t.Kind == LParen || t.Kind == LBrace || t.Kind == LBracket
}

// IsClose reports whether the token closes a delimited group.
func (t Token) IsClose() bool {
	return t.Kind == RParen || t.Kind == RBrace || t.Kind == RBracket
}

// HasLeadingSpace reports whether any whitespace, newline or comment trivia precedes the token.
func (t Token) HasLeadingSpace() bool {
	return len(t.Leading) > 0
}
