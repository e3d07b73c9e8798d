package parser

import (
	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/lexer"
	"rsderive/internal/source"
	"rsderive/internal/token"
)

func (p *Parser) atInnerAttr() bool {
	return p.at(token.Pound) && p.peekN(1).Kind == token.Bang && p.peekN(2).Kind == token.LBracket
}

func (p *Parser) atOuterAttr() bool {
	return p.at(token.Pound) && p.peekN(1).Kind == token.LBracket
}

// parseOuterAttrs собирает подряд идущие `#[...]`.
func (p *Parser) parseOuterAttrs() ([]ast.Attr, bool) {
	var attrs []ast.Attr
	for p.atOuterAttr() {
		attr, ok := p.parseAttr()
		if !ok {
			return attrs, false
		}
		attrs = append(attrs, attr)
	}
	return attrs, true
}

// parseAttr: `#[meta]` или `#![meta]`. Содержимое, которое не является
// meta-деревом, сохраняется как MetaRaw без диагностики.
func (p *Parser) parseAttr() (ast.Attr, bool) {
	pound := p.advance()
	inner := p.eat(token.Bang)
	if !p.at(token.LBracket) {
		p.err(diag.SynBadAttribute, "expected '[' after '#'")
		return ast.Attr{}, false
	}
	bracketPos := p.pos
	p.advance()

	contentStart := p.peek().Span.ZeroideToStart()
	p.quiet++
	meta, ok := p.parseMeta()
	p.quiet--
	if !ok || !p.at(token.RBracket) {
		// не meta: сохраняем сырой текст
		p.pos = bracketPos
		toks, closed := p.collectBalanced()
		if !closed {
			return ast.Attr{}, false
		}
		sp := contentStart
		if len(toks) > 0 {
			sp = toks[0].Span.Cover(toks[len(toks)-1].Span)
		}
		meta = ast.Meta{Kind: ast.MetaRaw, Span: sp, Text: p.text(sp)}
		return ast.Attr{Span: pound.Span.Cover(p.lastSpan), Inner: inner, Meta: meta}, true
	}
	p.advance() // ]
	return ast.Attr{Span: pound.Span.Cover(p.lastSpan), Inner: inner, Meta: meta}, true
}

// parseMeta: path | path = value | path( nested,* )
func (p *Parser) parseMeta() (ast.Meta, bool) {
	path, ok := p.parseMetaPath()
	if !ok {
		return ast.Meta{}, false
	}
	m := ast.Meta{Kind: ast.MetaPath, Span: path.Span, Path: path}
	switch {
	case p.at(token.Assign):
		p.advance()
		m.Kind = ast.MetaNameValue
		save, saveSpan := p.pos, p.lastSpan
		if lit, ok := p.tryLit(); ok && p.atOr(token.Comma, token.RParen, token.RBracket) {
			m.Lit = lit
			m.Span = m.Span.Cover(lit.Span)
			return m, true
		}
		p.pos, p.lastSpan = save, saveSpan
		// значение: произвольное выражение (`concat!(...)`), храним текст
		sp := p.skipUntil(token.Comma)
		if sp.Empty() {
			return ast.Meta{}, false
		}
		m.Text = p.text(sp)
		m.Span = m.Span.Cover(sp)
		return m, true

	case p.at(token.LParen):
		p.advance()
		m.Kind = ast.MetaList
		for !p.at(token.RParen) {
			if p.at(token.EOF) {
				return ast.Meta{}, false
			}
			nested := p.parseNestedMeta()
			m.List = append(m.List, nested)
			if !p.eat(token.Comma) {
				break
			}
		}
		if !p.at(token.RParen) {
			return ast.Meta{}, false
		}
		m.Span = m.Span.Cover(p.advance().Span)
		return m, true

	case p.atOr(token.LBracket, token.LBrace):
		return ast.Meta{}, false
	}
	return m, true
}

// parseNestedMeta разбирает элемент списка: литерал, meta или сырой текст.
func (p *Parser) parseNestedMeta() ast.Meta {
	start := p.pos
	if lit, ok := p.tryLit(); ok && p.atOr(token.Comma, token.RParen) {
		return ast.Meta{Kind: ast.MetaLit, Span: lit.Span, Lit: lit}
	}
	p.pos = start
	if m, ok := p.parseMeta(); ok && p.atOr(token.Comma, token.RParen) {
		return m
	}
	p.pos = start
	sp := p.skipUntil(token.Comma)
	return ast.Meta{Kind: ast.MetaRaw, Span: sp, Text: p.text(sp)}
}

// parseMetaPath: путь meta допускает ключевые слова в сегментах (`crate = ".."`).
func (p *Parser) parseMetaPath() (ast.Path, bool) {
	var path ast.Path
	start := p.peek().Span
	if p.eat(token.ColonColon) {
		path.Global = true
	}
	for {
		tok := p.peek()
		if tok.Kind != token.Ident && !tok.IsKeyword() {
			return ast.Path{}, false
		}
		p.advance()
		path.Segments = append(path.Segments, ast.PathSegment{Name: tok.Text, Span: tok.Span})
		if !p.eat(token.ColonColon) {
			break
		}
	}
	path.Span = start.Cover(p.lastSpan)
	return path, true
}

// parseSimplePath: путь без generic-аргументов (пути макросов).
func (p *Parser) parseSimplePath() (ast.Path, bool) {
	var path ast.Path
	start := p.peek().Span
	if p.eat(token.ColonColon) {
		path.Global = true
	}
	for {
		tok := p.peek()
		if tok.Kind != token.Ident && !token.IsPathSegmentKeyword(tok.Kind) {
			p.err(diag.SynExpectIdentifier, "expected path segment")
			return ast.Path{}, false
		}
		p.advance()
		path.Segments = append(path.Segments, ast.PathSegment{Name: tok.Text, Span: tok.Span})
		if !p.at(token.ColonColon) {
			break
		}
		p.advance()
	}
	path.Span = start.Cover(p.lastSpan)
	return path, true
}

// tryLit съедает литерал (включая `-1`, true/false) и декодирует значение.
func (p *Parser) tryLit() (*ast.Lit, bool) {
	tok := p.peek()
	var sp source.Span
	switch {
	case tok.IsLiteral():
		p.advance()
		sp = tok.Span
	case tok.Kind == token.KwTrue || tok.Kind == token.KwFalse:
		p.advance()
		sp = tok.Span
	case tok.Kind == token.Minus && (p.peekN(1).Kind == token.IntLit || p.peekN(1).Kind == token.FloatLit):
		p.advance()
		num := p.advance()
		sp = tok.Span.Cover(num.Span)
		tok = num
	default:
		return nil, false
	}
	lit := &ast.Lit{Kind: tok.Kind, Span: sp, Text: p.text(sp), Value: p.text(sp), Valid: true}
	switch tok.Kind {
	case token.StringLit, token.RawStringLit, token.ByteStringLit, token.CharLit, token.ByteLit:
		lit.Value, lit.Valid = lexer.Unquote(tok.Text)
	}
	return lit, true
}
