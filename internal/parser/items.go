package parser

import (
	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/token"
)

// parseItem разбирает атрибуты, видимость и выбирает распознаватель по
// первому значимому токену. Неизвестные элементы (fn, impl, trait, use ...)
// пропускаются целиком и сохраняются как ItemOther.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	startPos := p.pos
	startSpan := p.peek().Span

	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return ast.NoItemID, false
	}
	vis := p.parseVisibility()

	var (
		id ast.ItemID
	)
	switch {
	case p.at(token.KwStruct):
		id, ok = p.parseStructItem(ast.ItemStruct)
	case p.at(token.KwUnion) && p.peekN(1).Kind == token.Ident:
		id, ok = p.parseStructItem(ast.ItemUnion)
	case p.at(token.KwEnum):
		id, ok = p.parseEnumItem()
	case p.atMacroCall():
		id, ok = p.parseMacroCallItem()
	case p.at(token.EOF):
		p.err(diag.SynUnexpectedTopLevel, "expected item after attributes")
		return ast.NoItemID, false
	case p.peek().IsClose():
		p.err(diag.SynUnbalancedClose, "unexpected closing delimiter")
		return ast.NoItemID, false
	default:
		id, ok = p.skipOtherItem()
	}
	if !ok {
		// восстановление: откатываемся к началу элемента и пропускаем его балансом
		p.pos = startPos
		p.quiet++
		p.parseOuterAttrs()
		p.parseVisibility()
		p.skipOtherItem()
		p.quiet--
		return ast.NoItemID, false
	}

	item := p.arenas.Items.Get(id)
	item.Span = startSpan.Cover(p.lastSpan)
	item.Attrs = attrs
	item.Vis = vis
	return id, true
}

// parseVisibility: pub, pub(crate), pub(self), pub(super), pub(in path).
// `pub (A, B)` в tuple-структуре: это тип, а не ограничение видимости.
func (p *Parser) parseVisibility() ast.Visibility {
	if !p.at(token.KwPub) {
		return ast.Visibility{}
	}
	pub := p.advance()
	sp := pub.Span
	if p.at(token.LParen) {
		inner := p.peekN(1).Kind
		restricted := (inner == token.KwCrate || inner == token.KwSelfValue || inner == token.KwSuper) &&
			p.peekN(2).Kind == token.RParen
		if restricted || inner == token.KwIn {
			p.skipBalanced()
			sp = sp.Cover(p.lastSpan)
		}
	}
	return ast.Visibility{Text: p.text(sp), Span: sp}
}

// skipOtherItem пропускает немоделируемый элемент: до `;` на нулевой глубине
// или до конца первой `{ … }` группы для элементов с телом.
func (p *Parser) skipOtherItem() (ast.ItemID, bool) {
	first := p.peek()
	var keyword string
	sawExtern := false
	// модификаторы перед ключевым словом: unsafe fn, async fn, extern "C" fn, const fn
scan:
	for i := 0; ; i++ {
		t := p.peekN(i)
		switch {
		case t.Kind == token.KwExtern:
			sawExtern = true
		case t.Kind == token.KwUnsafe || t.Kind == token.KwAsync || t.Kind == token.StringLit:
		case t.Kind == token.KwConst && p.peekN(i+1).Kind != token.Ident && p.peekN(i+1).Kind != token.Underscore:
		case t.Kind == token.Ident && (t.Text == "default" || t.Text == "auto"):
		case t.IsKeyword():
			keyword = t.Text
			break scan
		case sawExtern:
			// extern "C" { ... }
			keyword = "extern"
			break scan
		default:
			p.err(diag.SynUnexpectedTopLevel, "expected item, got \""+t.Text+"\"")
			return ast.NoItemID, false
		}
	}
	if first.Kind == token.KwExtern && p.peekN(1).Kind == token.KwCrate {
		keyword = "extern crate"
	}

	blockEnded := true
	switch keyword {
	case "const", "static", "type", "use", "let", "extern crate":
		blockEnded = false
	}

	for !p.at(token.EOF) {
		tok := p.peek()
		switch {
		case tok.Kind == token.Semicolon:
			p.advance()
			return p.newOther(keyword), true
		case tok.Kind == token.LBrace && blockEnded:
			ok := p.skipBalanced()
			return p.newOther(keyword), ok
		case tok.IsOpen():
			if !p.skipBalanced() {
				return ast.NoItemID, false
			}
		case tok.IsClose():
			p.err(diag.SynUnbalancedClose, "unexpected closing delimiter")
			return ast.NoItemID, false
		default:
			p.advance()
		}
	}
	p.err(diag.SynExpectSemicolon, "expected ';' or '{' to end the item")
	return ast.NoItemID, false
}

func (p *Parser) newOther(keyword string) ast.ItemID {
	id := p.arenas.Items.New(ast.ItemOther, p.lastSpan, ast.NoPayloadID)
	p.arenas.Items.Get(id).Keyword = keyword
	return id
}
