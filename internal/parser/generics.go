package parser

import (
	"errors"

	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/lexer"
	"rsderive/internal/source"
	"rsderive/internal/token"
)

// parseGenerics: `<'a: 'b, T: Bound = Default, const N: usize = 3>`.
// Отсутствие `<`: пустой список без ошибки.
func (p *Parser) parseGenerics() (ast.Generics, bool) {
	var g ast.Generics
	if !p.atLt() {
		return g, true
	}
	start := p.peek().Span
	p.eatLt()
	for !p.atGt() {
		param, ok := p.parseGenericParam()
		if !ok {
			return g, false
		}
		g.Params = append(g.Params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expectGt("expected ',' or '>' in generic parameter list") {
		return g, false
	}
	g.Span = start.Cover(p.lastSpan)
	return g, true
}

func (p *Parser) parseGenericParam() (ast.GenericParam, bool) {
	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return ast.GenericParam{}, false
	}
	tok := p.peek()
	switch tok.Kind {
	case token.Lifetime:
		p.advance()
		param := ast.GenericParam{Kind: ast.ParamLifetime, Name: tok.Text, Attrs: attrs}
		if p.eat(token.Colon) {
			for p.at(token.Lifetime) {
				lt := p.advance()
				param.Bounds = append(param.Bounds, ast.Bound{Kind: ast.BoundLifetime, Span: lt.Span, Lifetime: lt.Text})
				if !p.eat(token.Plus) {
					break
				}
			}
		}
		param.Span = tok.Span.Cover(p.lastSpan)
		return param, true

	case token.KwConst:
		p.advance()
		name, _, ok := p.parseIdent()
		if !ok {
			return ast.GenericParam{}, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after const parameter name"); !ok {
			return ast.GenericParam{}, false
		}
		ty, ok := p.parseType()
		if !ok {
			return ast.GenericParam{}, false
		}
		param := ast.GenericParam{Kind: ast.ParamConst, Name: name, Attrs: attrs, ConstType: ty}
		if p.eat(token.Assign) {
			var sp source.Span
			switch {
			case p.at(token.LBrace):
				first := p.peek().Span
				if !p.skipBalanced() {
					return ast.GenericParam{}, false
				}
				sp = first.Cover(p.lastSpan)
			default:
				lit, ok := p.tryLit()
				if !ok {
					_, identSpan, ok := p.parseIdent()
					if !ok {
						return ast.GenericParam{}, false
					}
					sp = identSpan
				} else {
					sp = lit.Span
				}
			}
			param.DefaultText = p.text(sp)
		}
		param.Span = tok.Span.Cover(p.lastSpan)
		return param, true

	case token.Ident:
		p.advance()
		param := ast.GenericParam{Kind: ast.ParamType, Name: tok.Text, Attrs: attrs}
		if p.eat(token.Colon) {
			bounds, ok := p.parseBoundsList(true)
			if !ok {
				return ast.GenericParam{}, false
			}
			param.Bounds = bounds
		}
		if p.eat(token.Assign) {
			def, ok := p.parseType()
			if !ok {
				return ast.GenericParam{}, false
			}
			param.Default = def
		}
		param.Span = tok.Span.Cover(p.lastSpan)
		return param, true
	}
	p.err(diag.SynBadGenerics, "expected generic parameter, got \""+tok.Text+"\"")
	return ast.GenericParam{}, false
}

// parseForLifetimes: for<'a, 'b>
func (p *Parser) parseForLifetimes() ([]string, bool) {
	p.advance() // for
	if !p.eatLt() {
		p.err(diag.SynUnexpectedToken, "expected '<' after 'for'")
		return nil, false
	}
	var lts []string
	for p.at(token.Lifetime) {
		lts = append(lts, p.advance().Text)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expectGt("expected '>' to close 'for<...>'") {
		return nil, false
	}
	return lts, true
}

func (p *Parser) atBoundStart() bool {
	switch p.peek().Kind {
	case token.Lifetime, token.Question, token.Tilde, token.KwFor, token.LParen,
		token.Ident, token.ColonColon, token.KwSelfType, token.KwSuper, token.KwCrate, token.KwSelfValue:
		return true
	case token.KwConst:
		return true
	}
	return false
}

// parseBoundsList: Bound (+ Bound)*; пустой список допустим (`T:` без bounds).
// При allowPlus=false читается ровно один bound.
func (p *Parser) parseBoundsList(allowPlus bool) ([]ast.Bound, bool) {
	var bounds []ast.Bound
	for p.atBoundStart() {
		b, ok := p.parseBound()
		if !ok {
			return nil, false
		}
		bounds = append(bounds, b)
		if !allowPlus || !p.eat(token.Plus) {
			break
		}
	}
	return bounds, true
}

// parseBound: 'a | ?Sized | ~const Tr | for<'a> Tr<'a> | (Tr) | path
func (p *Parser) parseBound() (ast.Bound, bool) {
	start := p.peek().Span
	if p.at(token.Lifetime) {
		lt := p.advance()
		return ast.Bound{Kind: ast.BoundLifetime, Span: lt.Span, Lifetime: lt.Text}, true
	}
	if p.at(token.LParen) {
		p.advance()
		b, ok := p.parseBound()
		if !ok {
			return ast.Bound{}, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after parenthesized bound"); !ok {
			return ast.Bound{}, false
		}
		b.Paren = true
		b.Span = start.Cover(p.lastSpan)
		return b, true
	}
	b := ast.Bound{Kind: ast.BoundTrait}
	switch {
	case p.eat(token.Question):
		b.Maybe = true
	case p.at(token.Tilde):
		p.advance()
		if _, ok := p.expect(token.KwConst, diag.SynUnexpectedToken, "expected 'const' after '~'"); !ok {
			return ast.Bound{}, false
		}
		b.MaybeConst = true
	}
	if p.at(token.KwFor) {
		lts, ok := p.parseForLifetimes()
		if !ok {
			return ast.Bound{}, false
		}
		b.ForLifetimes = lts
	}
	path, ok := p.parsePath()
	if !ok {
		return ast.Bound{}, false
	}
	b.Path = path
	b.Span = start.Cover(p.lastSpan)
	return b, true
}

func (p *Parser) parseTraitBoundAfterFor(lts []string, start source.Span) (ast.Bound, bool) {
	path, ok := p.parsePath()
	if !ok {
		return ast.Bound{}, false
	}
	return ast.Bound{Kind: ast.BoundTrait, Span: start.Cover(p.lastSpan), Path: path, ForLifetimes: lts}, true
}

// parseWhereClause: where P1, P2, ...: до `{`, `;`, `=` или EOF.
func (p *Parser) parseWhereClause(g *ast.Generics) bool {
	if !p.at(token.KwWhere) {
		return true
	}
	start := p.advance().Span
	preds, ok := p.parseWherePredicates()
	if !ok {
		return false
	}
	g.Where = append(g.Where, preds...)
	g.WhereSpan = start.Cover(p.lastSpan)
	return true
}

func (p *Parser) parseWherePredicates() ([]ast.WherePredicate, bool) {
	var preds []ast.WherePredicate
	for !p.atOr(token.LBrace, token.Semicolon, token.Assign, token.EOF) {
		pred, ok := p.parseWherePredicate()
		if !ok {
			return nil, false
		}
		preds = append(preds, pred)
		if !p.eat(token.Comma) {
			break
		}
	}
	return preds, true
}

func (p *Parser) parseWherePredicate() (ast.WherePredicate, bool) {
	start := p.peek().Span
	if p.at(token.Lifetime) {
		lt := p.advance()
		pred := ast.WherePredicate{Kind: ast.PredLifetime, Lifetime: lt.Text}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after lifetime in where clause"); !ok {
			return ast.WherePredicate{}, false
		}
		for p.at(token.Lifetime) {
			b := p.advance()
			pred.Bounds = append(pred.Bounds, ast.Bound{Kind: ast.BoundLifetime, Span: b.Span, Lifetime: b.Text})
			if !p.eat(token.Plus) {
				break
			}
		}
		pred.Span = start.Cover(p.lastSpan)
		return pred, true
	}
	pred := ast.WherePredicate{Kind: ast.PredType}
	if p.at(token.KwFor) {
		lts, ok := p.parseForLifetimes()
		if !ok {
			return ast.WherePredicate{}, false
		}
		pred.ForLifetimes = lts
	}
	ty, ok := p.parseTypeNoBounds()
	if !ok {
		return ast.WherePredicate{}, false
	}
	pred.Type = ty
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after type in where clause"); !ok {
		return ast.WherePredicate{}, false
	}
	bounds, ok := p.parseBoundsList(true)
	if !ok {
		return ast.WherePredicate{}, false
	}
	pred.Bounds = bounds
	pred.Span = start.Cover(p.lastSpan)
	return pred, true
}

// ParseWhereClause разбирает текст вида "T::Value: Debug, U: Clone" как
// список where-предикатов; пустой текст даёт пустой список. Типы аллоцируются в types. Спаны результата
// указывают в сам текст, а не в исходный файл: вызывающий код сообщает
// ошибки в позиции строкового литерала.
func ParseWhereClause(types *ast.Types, text string) ([]ast.WherePredicate, error) {
	arenas := &ast.Builder{Files: ast.NewFiles(1), Items: ast.NewItems(1), Types: types}
	fs := source.NewFileSet()
	id := fs.AddVirtual("where-clause", []byte(text))
	bag := diag.NewBag(4)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
	p := newParser(lx, arenas, Options{Reporter: reporter, MaxErrors: 1})

	p.eat(token.KwWhere)
	preds, ok := p.parseWherePredicates()
	if ok && !p.at(token.EOF) {
		p.err(diag.SynUnexpectedToken, "unexpected \""+p.peek().Text+"\" in where clause")
		ok = false
	}
	if bag.Len() > 0 {
		return nil, errors.New(bag.Items()[0].Message)
	}
	if !ok {
		return nil, errors.New("malformed where clause")
	}
	return preds, nil
}
