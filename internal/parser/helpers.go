package parser

import (
	"rsderive/internal/diag"
	"rsderive/internal/source"
	"rsderive/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: возвращает лучший span для диагностики.
// На EOF используем позицию сразу после последнего съеденного токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// eat съедает токен, если он совпадает.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.quiet > 0 {
		return false
	}
	if p.opts.Reporter != nil {
		if sev == diag.SevError {
			p.opts.CurrentErrors++
		}
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, nil)
			return true
		}
		return false // достигли максимального количества ошибок
	}
	return false // нет reporter - ничего не записали
}

// splitFirst заменяет текущий составной токен (`>>`, `>=`, `<<`, `&&`, `||`)
// на его первый символ и вставляет остаток следующим токеном.
func (p *Parser) splitFirst(first, rest token.Kind) {
	tok := p.toks[p.pos]
	head := tok
	head.Kind = first
	head.Span.End = tok.Span.Start + 1
	head.Text = tok.Text[:1]
	tail := token.Token{
		Kind: rest,
		Span: source.Span{File: tok.Span.File, Start: tok.Span.Start + 1, End: tok.Span.End},
		Text: tok.Text[1:],
	}
	p.toks[p.pos] = head
	p.toks = append(p.toks[:p.pos+1], append([]token.Token{tail}, p.toks[p.pos+1:]...)...)
}

// eatGt съедает `>` с учётом `>>`, `>=` и `>>=` внутри generics.
func (p *Parser) eatGt() bool {
	switch p.peek().Kind {
	case token.Gt:
	case token.Shr:
		p.splitFirst(token.Gt, token.Gt)
	case token.GtEq:
		p.splitFirst(token.Gt, token.Assign)
	default:
		return false
	}
	p.advance()
	return true
}

// atGt: стоим ли на `>` (в том числе в составе `>>`, `>=`).
func (p *Parser) atGt() bool {
	return p.atOr(token.Gt, token.Shr, token.GtEq)
}

// eatLt съедает `<`, разбивая `<<` (`Vec<<T as Tr>::X>`).
func (p *Parser) eatLt() bool {
	switch p.peek().Kind {
	case token.Lt:
	case token.Shl:
		p.splitFirst(token.Lt, token.Lt)
	case token.LtEq:
		p.splitFirst(token.Lt, token.Assign)
	default:
		return false
	}
	p.advance()
	return true
}

func (p *Parser) atLt() bool {
	return p.atOr(token.Lt, token.Shl)
}

// expectGt: `>` или диагностика.
func (p *Parser) expectGt(msg string) bool {
	if p.eatGt() {
		return true
	}
	p.err(diag.SynUnexpectedToken, msg)
	return false
}

// skipBalanced пропускает группу в скобках, начиная с открывающей.
// Возвращает false, если группа не закрыта до EOF.
func (p *Parser) skipBalanced() bool {
	_, ok := p.collectBalanced()
	return ok
}

// collectBalanced съедает группу `( … )`, `[ … ]` или `{ … }` и возвращает
// токены между внешними скобками.
func (p *Parser) collectBalanced() ([]token.Token, bool) {
	open := p.advance()
	closing, ok := open.Kind.Closing()
	if !ok {
		return nil, false
	}
	stack := []token.Kind{closing}
	start := p.pos
	for len(stack) > 0 {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed delimiter")
			return p.toks[start:p.pos], false
		case tok.IsOpen():
			c, _ := tok.Kind.Closing()
			stack = append(stack, c)
		case tok.IsClose():
			if tok.Kind != stack[len(stack)-1] {
				p.report(diag.SynUnbalancedClose, diag.SevError, tok.Span, "mismatched closing delimiter")
				return p.toks[start:p.pos], false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				inner := p.toks[start:p.pos]
				p.advance()
				return inner, true
			}
		}
		p.advance()
	}
	return nil, true
}

// skipUntil пропускает токены (с балансом скобок) до одного из стоп-токенов
// на нулевой глубине. Стоп-токен не съедается. Возвращает span пропущенного.
func (p *Parser) skipUntil(stop ...token.Kind) source.Span {
	start := p.peek().Span.ZeroideToStart()
	sp := start
	for !p.at(token.EOF) {
		tok := p.peek()
		if p.atOr(stop...) || tok.IsClose() {
			break
		}
		if tok.IsOpen() {
			if !p.skipBalanced() {
				break
			}
		} else {
			p.advance()
		}
		sp = start.Cover(p.lastSpan)
	}
	return sp
}
