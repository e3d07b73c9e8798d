package parser

import (
	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/token"
)

// parseStructItem:
//
//	struct Name<G> where .. { a: T, .. }
//	struct Name<G>(T, ..) where .. ;
//	struct Name<G> where .. ;
//	union Name<G> where .. { a: T, .. }
func (p *Parser) parseStructItem(kind ast.ItemKind) (ast.ItemID, bool) {
	kw := p.advance() // struct | union
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	payload := ast.StructItem{Name: name, NameSpan: nameSpan}
	if payload.Generics, ok = p.parseGenerics(); !ok {
		return ast.NoItemID, false
	}

	switch {
	case p.at(token.LParen) && kind == ast.ItemStruct:
		payload.Style = ast.StructTuple
		if payload.Fields, ok = p.parseTupleFields(); !ok {
			return ast.NoItemID, false
		}
		if !p.parseWhereClause(&payload.Generics) {
			return ast.NoItemID, false
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after tuple struct"); !ok {
			return ast.NoItemID, false
		}

	default:
		if !p.parseWhereClause(&payload.Generics) {
			return ast.NoItemID, false
		}
		switch {
		case p.at(token.LBrace):
			payload.Style = ast.StructNamed
			if payload.Fields, ok = p.parseNamedFields(); !ok {
				return ast.NoItemID, false
			}
		case p.at(token.Semicolon) && kind == ast.ItemStruct:
			p.advance()
			payload.Style = ast.StructUnit
		default:
			p.err(diag.SynUnexpectedToken, "expected '{', '(' or ';' after "+kw.Text+" name")
			return ast.NoItemID, false
		}
	}
	return p.arenas.Items.NewStruct(kind, kw.Span.Cover(p.lastSpan), payload), true
}

// parseNamedFields: { #[attr] pub a: T, ... }
func (p *Parser) parseNamedFields() ([]ast.Field, bool) {
	p.advance() // {
	fields := make([]ast.Field, 0, 4)
	for !p.at(token.RBrace) {
		start := p.peek().Span
		attrs, ok := p.parseOuterAttrs()
		if !ok {
			return nil, false
		}
		vis := p.parseVisibility()
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
			return nil, false
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		fields = append(fields, ast.Field{
			Name:     name,
			NameSpan: nameSpan,
			Span:     start.Cover(p.lastSpan),
			Attrs:    attrs,
			Vis:      vis,
			Type:     ty,
		})
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnexpectedToken, "expected ',' or '}' after field"); !ok {
		return nil, false
	}
	return fields, true
}

// parseTupleFields: ( #[attr] pub T, ... )
func (p *Parser) parseTupleFields() ([]ast.Field, bool) {
	p.advance() // (
	var fields []ast.Field
	for !p.at(token.RParen) {
		start := p.peek().Span
		attrs, ok := p.parseOuterAttrs()
		if !ok {
			return nil, false
		}
		vis := p.parseVisibility()
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		fields = append(fields, ast.Field{
			Span:  start.Cover(p.lastSpan),
			Attrs: attrs,
			Vis:   vis,
			Type:  ty,
		})
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ',' or ')' after field"); !ok {
		return nil, false
	}
	return fields, true
}

// parseEnumItem: enum Name<G> where .. { Variant, Variant(T), Variant { a: T } = 3, .. }
func (p *Parser) parseEnumItem() (ast.ItemID, bool) {
	kw := p.advance() // enum
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	payload := ast.EnumItem{Name: name, NameSpan: nameSpan}
	if payload.Generics, ok = p.parseGenerics(); !ok {
		return ast.NoItemID, false
	}
	if !p.parseWhereClause(&payload.Generics) {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after enum name"); !ok {
		return ast.NoItemID, false
	}
	for !p.at(token.RBrace) {
		start := p.peek().Span
		attrs, ok := p.parseOuterAttrs()
		if !ok {
			return ast.NoItemID, false
		}
		p.parseVisibility()
		vname, _, ok := p.parseIdent()
		if !ok {
			return ast.NoItemID, false
		}
		v := ast.Variant{Name: vname, Attrs: attrs, Style: ast.StructUnit}
		switch {
		case p.at(token.LBrace):
			v.Style = ast.StructNamed
			if v.Fields, ok = p.parseNamedFields(); !ok {
				return ast.NoItemID, false
			}
		case p.at(token.LParen):
			v.Style = ast.StructTuple
			if v.Fields, ok = p.parseTupleFields(); !ok {
				return ast.NoItemID, false
			}
		}
		if p.eat(token.Assign) {
			sp := p.skipUntil(token.Comma)
			v.Discriminant = p.text(sp)
		}
		v.Span = start.Cover(p.lastSpan)
		payload.Variants = append(payload.Variants, v)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnexpectedToken, "expected ',' or '}' after variant"); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewEnum(kw.Span.Cover(p.lastSpan), payload), true
}
