package lexer

import (
	"rsderive/internal/diag"
	"rsderive/internal/token"
)

// scanOperatorOrPunct: жадно: сначала 3-символьные, затем 2-символьные, затем 1.
// Составные присваивания (+=, <<=) не выделяются: они встречаются только в
// телах, которые парсер пропускает балансом скобок.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try3('.', '.', '.'):
		return lx.tok(start, token.DotDotDot)
	case lx.try3('.', '.', '='):
		return lx.tok(start, token.DotDotEq)
	case lx.try2('.', '.'):
		return lx.tok(start, token.DotDot)
	case lx.try2(':', ':'):
		return lx.tok(start, token.ColonColon)
	case lx.try2('-', '>'):
		return lx.tok(start, token.Arrow)
	case lx.try2('=', '>'):
		return lx.tok(start, token.FatArrow)
	case lx.try2('=', '='):
		return lx.tok(start, token.EqEq)
	case lx.try2('!', '='):
		return lx.tok(start, token.BangEq)
	case lx.try2('<', '='):
		return lx.tok(start, token.LtEq)
	case lx.try2('>', '='):
		return lx.tok(start, token.GtEq)
	case lx.try2('<', '<'):
		return lx.tok(start, token.Shl)
	case lx.try2('>', '>'):
		return lx.tok(start, token.Shr)
	case lx.try2('&', '&'):
		return lx.tok(start, token.AndAnd)
	case lx.try2('|', '|'):
		return lx.tok(start, token.OrOr)
	}

	b := lx.cursor.Bump()
	var k token.Kind
	switch b {
	case '+':
		k = token.Plus
	case '-':
		k = token.Minus
	case '*':
		k = token.Star
	case '/':
		k = token.Slash
	case '%':
		k = token.Percent
	case '^':
		k = token.Caret
	case '!':
		k = token.Bang
	case '&':
		k = token.Amp
	case '|':
		k = token.Pipe
	case '=':
		k = token.Assign
	case '<':
		k = token.Lt
	case '>':
		k = token.Gt
	case '@':
		k = token.At
	case '.':
		k = token.Dot
	case ',':
		k = token.Comma
	case ';':
		k = token.Semicolon
	case ':':
		k = token.Colon
	case '#':
		k = token.Pound
	case '$':
		k = token.Dollar
	case '?':
		k = token.Question
	case '~':
		k = token.Tilde
	case '_':
		k = token.Underscore
	case '(':
		k = token.LParen
	case ')':
		k = token.RParen
	case '{':
		k = token.LBrace
	case '}':
		k = token.RBrace
	case '[':
		k = token.LBracket
	case ']':
		k = token.RBracket
	default:
		// не-ASCII мусор: съедаем всю руну целиком
		if b >= utf8RuneSelf {
			lx.cursor.Reset(start)
			lx.bumpRune()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return lx.tok(start, k)
}

func (lx *Lexer) tok(start Mark, k token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}
