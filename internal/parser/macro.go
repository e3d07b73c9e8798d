package parser

import (
	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/token"
)

// atMacroCall: путь из идентификаторов и `::`, за которым `!`.
// `macro_rules! name { … }` тоже сюда попадает.
func (p *Parser) atMacroCall() bool {
	i := 0
	if p.peekN(0).Kind == token.ColonColon {
		i++
	}
	for {
		t := p.peekN(i)
		if t.Kind != token.Ident && !token.IsPathSegmentKeyword(t.Kind) {
			return false
		}
		i++
		switch p.peekN(i).Kind {
		case token.ColonColon:
			i++
		case token.Bang:
			return true
		default:
			return false
		}
	}
}

// parseMacroCallItem: path ! ( … ) ;  |  path ! [ … ] ;  |  path ! { … }
// Для macro_rules! name { … } имя макроса становится первым токеном тела.
func (p *Parser) parseMacroCallItem() (ast.ItemID, bool) {
	path, ok := p.parseSimplePath()
	if !ok {
		return ast.NoItemID, false
	}
	bang := p.advance() // !
	var prefix []token.Token
	if p.at(token.Ident) {
		prefix = append(prefix, p.advance())
	}
	if !p.atOr(token.LParen, token.LBracket, token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '(', '[' or '{' after '!'")
		return ast.NoItemID, false
	}
	open := p.peek()
	inner, ok := p.collectBalanced()
	if !ok {
		return ast.NoItemID, false
	}
	closeSpan := p.lastSpan
	if open.Kind != token.LBrace {
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after macro invocation"); !ok {
			return ast.NoItemID, false
		}
	}
	toks := make([]token.Token, 0, len(prefix)+len(inner))
	toks = append(toks, prefix...)
	toks = append(toks, inner...)
	id := p.arenas.Items.NewMacroCall(path.Span.Cover(bang.Span), ast.MacroCallItem{
		Path:     path,
		Delim:    open.Kind,
		Tokens:   toks,
		BodySpan: open.Span.ZeroideToEnd().Cover(closeSpan.ZeroideToStart()),
	})
	return id, true
}
