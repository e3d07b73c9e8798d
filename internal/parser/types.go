package parser

import (
	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/source"
	"rsderive/internal/token"
)

// parseType разбирает тип; `A + B` допускается (bare trait object).
func (p *Parser) parseType() (ast.TypeID, bool) {
	return p.parseTypeImpl(true)
}

// parseTypeNoBounds: тип, после которого `+` не продолжает тип
// (`&dyn A + B`: ошибка в Rust, `-> T + Send` относится к bounds).
func (p *Parser) parseTypeNoBounds() (ast.TypeID, bool) {
	return p.parseTypeImpl(false)
}

func (p *Parser) newType(ty ast.Type) ast.TypeID {
	return p.arenas.Types.New(ty)
}

func (p *Parser) parseTypeImpl(allowPlus bool) (ast.TypeID, bool) {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.LParen:
		return p.parseTupleOrParenType(allowPlus)

	case token.Bang:
		p.advance()
		return p.newType(ast.Type{Kind: ast.TypeNever, Span: start}), true

	case token.Underscore:
		p.advance()
		return p.newType(ast.Type{Kind: ast.TypeInfer, Span: start}), true

	case token.AndAnd:
		// `&&T`: две ссылки
		p.splitFirst(token.Amp, token.Amp)
		return p.parseRefType()

	case token.Amp:
		return p.parseRefType()

	case token.Star:
		p.advance()
		ty := ast.Type{Kind: ast.TypePtr}
		switch {
		case p.eat(token.KwMut):
			ty.Mut = true
		case p.eat(token.KwConst):
		default:
			p.err(diag.SynExpectType, "expected 'mut' or 'const' after '*'")
			return ast.NoTypeID, false
		}
		elem, ok := p.parseTypeNoBounds()
		if !ok {
			return ast.NoTypeID, false
		}
		ty.Elem = elem
		ty.Span = start.Cover(p.lastSpan)
		return p.newType(ty), true

	case token.LBracket:
		return p.parseSliceOrArrayType()

	case token.KwFn, token.KwUnsafe, token.KwExtern:
		return p.parseFnPtrType(nil, start)

	case token.KwFor:
		lts, ok := p.parseForLifetimes()
		if !ok {
			return ast.NoTypeID, false
		}
		if p.atOr(token.KwFn, token.KwUnsafe, token.KwExtern) {
			return p.parseFnPtrType(lts, start)
		}
		// for<'a> Trait<'a>: higher-ranked bare trait object
		bound, ok := p.parseTraitBoundAfterFor(lts, start)
		if !ok {
			return ast.NoTypeID, false
		}
		return p.finishTraitObject(ast.Type{Kind: ast.TypeTraitObject}, []ast.Bound{bound}, allowPlus, start)

	case token.KwDyn:
		p.advance()
		bounds, ok := p.parseBoundsList(allowPlus)
		if !ok {
			return ast.NoTypeID, false
		}
		return p.newType(ast.Type{Kind: ast.TypeTraitObject, Dyn: true, Bounds: bounds, Span: start.Cover(p.lastSpan)}), true

	case token.KwImpl:
		p.advance()
		bounds, ok := p.parseBoundsList(allowPlus)
		if !ok {
			return ast.NoTypeID, false
		}
		return p.newType(ast.Type{Kind: ast.TypeTraitObject, Impl: true, Bounds: bounds, Span: start.Cover(p.lastSpan)}), true

	case token.Lt, token.Shl:
		return p.parseQualifiedType()

	case token.Question:
		// ?Sized как голый trait object
		bound, ok := p.parseBound()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.finishTraitObject(ast.Type{Kind: ast.TypeTraitObject}, []ast.Bound{bound}, allowPlus, start)

	case token.Ident, token.ColonColon, token.KwSelfType, token.KwSelfValue, token.KwSuper, token.KwCrate:
		path, ok := p.parsePath()
		if !ok {
			return ast.NoTypeID, false
		}
		if p.at(token.Bang) && allPlain(path) {
			p.advance()
			if !p.atOr(token.LParen, token.LBracket, token.LBrace) {
				p.err(diag.SynUnexpectedToken, "expected macro delimiter")
				return ast.NoTypeID, false
			}
			toks, ok := p.collectBalanced()
			if !ok {
				return ast.NoTypeID, false
			}
			sp := start.Cover(p.lastSpan)
			text := ""
			if len(toks) > 0 {
				text = p.text(toks[0].Span.Cover(toks[len(toks)-1].Span))
			}
			return p.newType(ast.Type{Kind: ast.TypeMacro, Span: sp, Path: path, Text: text}), true
		}
		if allowPlus && p.at(token.Plus) {
			first := ast.Bound{Kind: ast.BoundTrait, Span: path.Span, Path: path}
			return p.finishTraitObject(ast.Type{Kind: ast.TypeTraitObject}, []ast.Bound{first}, allowPlus, start)
		}
		return p.newType(ast.Type{Kind: ast.TypePath, Span: path.Span, Path: path}), true
	}

	p.err(diag.SynExpectType, "expected type, got \""+p.peek().Text+"\"")
	return ast.NoTypeID, false
}

func allPlain(path ast.Path) bool {
	for _, s := range path.Segments {
		if s.Args != nil {
			return false
		}
	}
	return true
}

// finishTraitObject дочитывает `+ Bound + 'a` после первого bound.
func (p *Parser) finishTraitObject(ty ast.Type, bounds []ast.Bound, allowPlus bool, start source.Span) (ast.TypeID, bool) {
	for allowPlus && p.eat(token.Plus) {
		if !p.atBoundStart() {
			break
		}
		b, ok := p.parseBound()
		if !ok {
			return ast.NoTypeID, false
		}
		bounds = append(bounds, b)
	}
	ty.Bounds = bounds
	ty.Span = start.Cover(p.lastSpan)
	return p.newType(ty), true
}

func (p *Parser) parseRefType() (ast.TypeID, bool) {
	amp := p.advance()
	ty := ast.Type{Kind: ast.TypeRef}
	if p.at(token.Lifetime) {
		ty.Lifetime = p.advance().Text
	}
	ty.Mut = p.eat(token.KwMut)
	elem, ok := p.parseTypeNoBounds()
	if !ok {
		return ast.NoTypeID, false
	}
	ty.Elem = elem
	ty.Span = amp.Span.Cover(p.lastSpan)
	return p.newType(ty), true
}

func (p *Parser) parseTupleOrParenType(allowPlus bool) (ast.TypeID, bool) {
	open := p.advance()
	var elems []ast.TypeID
	trailingComma := false
	for !p.at(token.RParen) {
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		elems = append(elems, elem)
		trailingComma = p.eat(token.Comma)
		if !trailingComma {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple type"); !ok {
		return ast.NoTypeID, false
	}
	sp := open.Span.Cover(p.lastSpan)
	if len(elems) == 1 && !trailingComma {
		id := p.newType(ast.Type{Kind: ast.TypeParen, Span: sp, Elem: elems[0]})
		// (Trait) + Send
		if allowPlus && p.at(token.Plus) {
			inner := p.arenas.Types.Get(elems[0])
			if inner.Kind == ast.TypePath {
				b := ast.Bound{Kind: ast.BoundTrait, Span: sp, Path: inner.Path, Paren: true}
				return p.finishTraitObject(ast.Type{Kind: ast.TypeTraitObject}, []ast.Bound{b}, allowPlus, open.Span)
			}
		}
		return id, true
	}
	return p.newType(ast.Type{Kind: ast.TypeTuple, Span: sp, Elems: elems}), true
}

func (p *Parser) parseSliceOrArrayType() (ast.TypeID, bool) {
	open := p.advance()
	elem, ok := p.parseType()
	if !ok {
		return ast.NoTypeID, false
	}
	ty := ast.Type{Kind: ast.TypeSlice, Elem: elem}
	if p.eat(token.Semicolon) {
		ty.Kind = ast.TypeArray
		lenSpan := p.skipUntil(token.RBracket)
		if lenSpan.Empty() {
			p.err(diag.SynUnexpectedToken, "expected array length")
			return ast.NoTypeID, false
		}
		ty.Text = p.text(lenSpan)
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'"); !ok {
		return ast.NoTypeID, false
	}
	ty.Span = open.Span.Cover(p.lastSpan)
	return p.newType(ty), true
}

// parseFnPtrType: [for<'a>] [unsafe] [extern ["abi"]] fn(A, B, ...) [-> R]
func (p *Parser) parseFnPtrType(forLts []string, start source.Span) (ast.TypeID, bool) {
	sig := &ast.FnSig{ForLifetimes: forLts}
	sig.Unsafe = p.eat(token.KwUnsafe)
	if p.eat(token.KwExtern) {
		sig.Extern = true
		if p.at(token.StringLit) {
			sig.Abi = p.advance().Text
		}
	}
	if _, ok := p.expect(token.KwFn, diag.SynExpectType, "expected 'fn'"); !ok {
		return ast.NoTypeID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'fn'"); !ok {
		return ast.NoTypeID, false
	}
	for !p.at(token.RParen) {
		p.parseOuterAttrs()
		if p.eat(token.DotDotDot) {
			sig.Variadic = true
			break
		}
		// именованные параметры: fn(x: i32)
		if (p.at(token.Ident) || p.at(token.Underscore)) && p.peekN(1).Kind == token.Colon {
			p.advance()
			p.advance()
		}
		param, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		sig.Params = append(sig.Params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'"); !ok {
		return ast.NoTypeID, false
	}
	if p.eat(token.Arrow) {
		ret, ok := p.parseTypeNoBounds()
		if !ok {
			return ast.NoTypeID, false
		}
		sig.Ret = ret
	}
	return p.newType(ast.Type{Kind: ast.TypeFn, Span: start.Cover(p.lastSpan), Fn: sig}), true
}

// parseQualifiedType: <T as Trait>::Assoc[::More] | <T>::Assoc
func (p *Parser) parseQualifiedType() (ast.TypeID, bool) {
	start := p.peek().Span
	p.eatLt()
	qself, ok := p.parseType()
	if !ok {
		return ast.NoTypeID, false
	}
	ty := ast.Type{Kind: ast.TypeQualified, QSelf: qself}
	if p.eat(token.KwAs) {
		tr, ok := p.parsePath()
		if !ok {
			return ast.NoTypeID, false
		}
		ty.QTrait = &tr
	}
	if !p.expectGt("expected '>' to close qualified path") {
		return ast.NoTypeID, false
	}
	if _, ok := p.expect(token.ColonColon, diag.SynUnexpectedToken, "expected '::' after qualified self type"); !ok {
		return ast.NoTypeID, false
	}
	rest, ok := p.parsePath()
	if !ok {
		return ast.NoTypeID, false
	}
	ty.Path = rest
	ty.Span = start.Cover(p.lastSpan)
	return p.newType(ty), true
}

// parsePath разбирает путь в позиции типа или bound: сегменты могут нести
// `<...>`, `::<...>` и `(...) -> R`.
func (p *Parser) parsePath() (ast.Path, bool) {
	var path ast.Path
	start := p.peek().Span
	if p.eat(token.ColonColon) {
		path.Global = true
	}
	for {
		tok := p.peek()
		if tok.Kind != token.Ident && !token.IsPathSegmentKeyword(tok.Kind) {
			p.err(diag.SynExpectIdentifier, "expected path segment, got \""+tok.Text+"\"")
			return ast.Path{}, false
		}
		p.advance()
		seg := ast.PathSegment{Name: tok.Text, Span: tok.Span}

		turbofish := false
		if p.at(token.ColonColon) && (p.peekN(1).Kind == token.Lt || p.peekN(1).Kind == token.Shl) {
			p.advance()
			turbofish = true
		}
		switch {
		case p.atLt():
			args, ok := p.parseAngleArgs()
			if !ok {
				return ast.Path{}, false
			}
			args.Turbofish = turbofish
			seg.Args = args
		case p.at(token.LParen):
			args, ok := p.parseParenArgs()
			if !ok {
				return ast.Path{}, false
			}
			seg.Args = args
		}
		seg.Span = seg.Span.Cover(p.lastSpan)
		path.Segments = append(path.Segments, seg)

		if p.at(token.ColonColon) && p.peekN(1).Kind != token.Lt {
			next := p.peekN(1)
			if next.Kind == token.Ident || token.IsPathSegmentKeyword(next.Kind) {
				p.advance()
				continue
			}
		}
		break
	}
	path.Span = start.Cover(p.lastSpan)
	return path, true
}

// parseAngleArgs: <'a, T, 3, {N}, Item = U, Item: Bound>
func (p *Parser) parseAngleArgs() (*ast.GenericArgs, bool) {
	start := p.peek().Span
	p.eatLt()
	args := &ast.GenericArgs{Kind: ast.ArgsAngle}
	for !p.atGt() {
		arg, ok := p.parseGenericArg()
		if !ok {
			return nil, false
		}
		args.Args = append(args.Args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expectGt("expected '>' to close generic arguments") {
		return nil, false
	}
	args.Span = start.Cover(p.lastSpan)
	return args, true
}

func (p *Parser) parseGenericArg() (ast.GenericArg, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Lifetime:
		p.advance()
		return ast.GenericArg{Kind: ast.ArgLifetime, Span: tok.Span, Lifetime: tok.Text}, true

	case tok.Kind == token.LBrace:
		if !p.skipBalanced() {
			return ast.GenericArg{}, false
		}
		sp := tok.Span.Cover(p.lastSpan)
		return ast.GenericArg{Kind: ast.ArgConst, Span: sp, Text: p.text(sp)}, true

	case tok.IsLiteral() || (tok.Kind == token.Minus && p.peekN(1).IsLiteral()):
		lit, _ := p.tryLit()
		return ast.GenericArg{Kind: ast.ArgConst, Span: lit.Span, Text: lit.Text}, true
	}

	// Item = T, Item: Bound, Item<'a> = T
	if tok.Kind == token.Ident {
		save := p.pos
		name := p.advance()
		var nameArgs *ast.GenericArgs
		if p.atLt() {
			p.quiet++
			a, ok := p.parseAngleArgs()
			p.quiet--
			if ok {
				nameArgs = a
			}
		}
		if p.at(token.Assign) {
			p.advance()
			ty, ok := p.parseType()
			if !ok {
				return ast.GenericArg{}, false
			}
			return ast.GenericArg{Kind: ast.ArgBinding, Span: name.Span.Cover(p.lastSpan), Name: name.Text, NameArgs: nameArgs, Type: ty}, true
		}
		if p.at(token.Colon) {
			p.advance()
			bounds, ok := p.parseBoundsList(true)
			if !ok {
				return ast.GenericArg{}, false
			}
			return ast.GenericArg{Kind: ast.ArgConstraint, Span: name.Span.Cover(p.lastSpan), Name: name.Text, NameArgs: nameArgs, Bounds: bounds}, true
		}
		p.pos = save
	}

	ty, ok := p.parseType()
	if !ok {
		return ast.GenericArg{}, false
	}
	return ast.GenericArg{Kind: ast.ArgType, Span: p.arenas.Types.Get(ty).Span, Type: ty}, true
}

// parseParenArgs: (A, B) -> R для Fn-трейтов.
func (p *Parser) parseParenArgs() (*ast.GenericArgs, bool) {
	open := p.advance()
	args := &ast.GenericArgs{Kind: ast.ArgsParen}
	for !p.at(token.RParen) {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		args.Inputs = append(args.Inputs, ty)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'"); !ok {
		return nil, false
	}
	if p.eat(token.Arrow) {
		ret, ok := p.parseTypeNoBounds()
		if !ok {
			return nil, false
		}
		args.Output = ret
	}
	args.Span = open.Span.Cover(p.lastSpan)
	return args, true
}
