package parser

import (
	"slices"

	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/lexer"
	"rsderive/internal/source"
	"rsderive/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser: состояние парсера на один файл.
// Токены вычитываются из лексера целиком: Rust требует произвольного
// lookahead (contextual `union`, `path!`, разбиение `>>` в generics).
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	file     ast.FileID
	src      *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	// quiet подавляет диагностики во время спекулятивного разбора.
	quiet int
}

// ParseFile: входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := newParser(lx, arenas, opts)
	p.file = arenas.Files.New(lx.EmptySpan())
	p.parseItems()

	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = br.Bag
	case diag.BagReporter:
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func newParser(lx *lexer.Lexer, arenas *ast.Builder, opts Options) *Parser {
	toks := lx.All()
	return &Parser{
		toks:     toks,
		arenas:   arenas,
		src:      lx.File(),
		opts:     opts,
		lastSpan: toks[0].Span.ZeroideToStart(),
	}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом: EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// text возвращает исходный текст под span текущего файла.
func (p *Parser) text(sp source.Span) string {
	if sp.End < sp.Start || int(sp.End) > len(p.src.Content) {
		return ""
	}
	return string(p.src.Content[sp.Start:sp.End])
}

// parseItems: основной цикл верхнего уровня: пока не EOF: parseItem.
func (p *Parser) parseItems() {
	startSpan := p.peek().Span
	f := p.arenas.Files.Get(p.file)
	for p.atInnerAttr() {
		if attr, ok := p.parseAttr(); ok {
			f.Attrs = append(f.Attrs, attr)
		} else {
			p.resyncTop()
		}
	}
	for !p.at(token.EOF) {
		start := p.pos
		itemID, ok := p.parseItem()
		if !ok {
			if p.pos == start {
				// ни одного токена не съели: пропускаем один, чтобы не зациклиться
				p.advance()
			}
			p.resyncTop()
			continue
		}
		p.arenas.PushItem(p.file, itemID)
	}
	f = p.arenas.Files.Get(p.file)
	f.Span = startSpan.Cover(p.peek().Span)
}

// resyncTop: восстановление после ошибки на верхнем уровне:
// прокручиваем до стартового токена следующего item ИЛИ EOF, соблюдая баланс скобок.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) {
		switch {
		case isTopLevelStarter(p.peek().Kind):
			return
		case p.at(token.Semicolon):
			p.advance()
			return
		case p.peek().IsOpen():
			p.skipBalanced()
		case p.peek().IsClose():
			// лишняя закрывающая скобка на верхнем уровне
			p.err(diag.SynUnbalancedClose, "unexpected closing delimiter")
			p.advance()
		default:
			p.advance()
		}
	}
}

// isTopLevelStarter: принадлежит ли токен стартерам item.
func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.Pound, token.KwPub, token.KwStruct, token.KwEnum, token.KwFn, token.KwImpl,
		token.KwTrait, token.KwUse, token.KwMod, token.KwConst, token.KwStatic, token.KwType,
		token.KwExtern, token.KwUnsafe, token.KwAsync:
		return true
	default:
		return false
	}
}

// parseIdent: утилита: ожидает Ident, возвращает текст и span.
// На ошибке: репорт SynExpectIdentifier.
func (p *Parser) parseIdent() (string, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return tok.Text, tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.peek().Text+"\"")
	return "", p.getDiagnosticSpan(), false
}
