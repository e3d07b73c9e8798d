package lexer

import (
	"rsderive/internal/diag"
	"rsderive/internal/token"
)

// scanNumber сканирует целые и вещественные литералы Rust:
//   - 0x / 0o / 0b с разделителями '_'
//   - десятичные с дробной частью и экспонентой
//   - суффиксы типа (u8, i64, usize, f32 ...)
//
// "1..2" и "1.foo" не превращаются в float: точка съедается только если за ней
// цифра или не начало идентификатора/второй точки.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'o' || b1 == 'b') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digit := isHex
		switch b1 {
		case 'o':
			digit = isOct
		case 'b':
			digit = isBin
		}
		n := lx.eatDigits(digit)
		if n == 0 {
			lx.eatSuffix()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digits after radix prefix")
			return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
		}
		lx.eatSuffix()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
	}

	lx.eatDigits(isDec)

	// дробная часть
	if lx.cursor.Peek() == '.' {
		next := lx.cursor.PeekAt(1)
		switch {
		case isDec(next):
			lx.cursor.Bump()
			lx.eatDigits(isDec)
			kind = token.FloatLit
		case next == '.' || isIdentStartByte(next) || next >= utf8RuneSelf:
			// диапазон или вызов метода/поле
		default:
			lx.cursor.Bump() // "1.": валидный float
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.FloatLit, Span: sp, Text: lx.text(sp)}
		}
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if lx.eatDigits(isDec) == 0 {
			// не экспонента: откатываемся, пусть это будет суффикс
			lx.cursor.Reset(mark)
		} else {
			kind = token.FloatLit
		}
	}

	if suffix := lx.eatSuffix(); suffix == "f32" || suffix == "f64" {
		kind = token.FloatLit
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// eatDigits съедает цифры и '_' и возвращает число реальных цифр.
func (lx *Lexer) eatDigits(digit func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		switch {
		case b == '_':
			lx.cursor.Bump()
		case digit(b):
			lx.cursor.Bump()
			n++
		default:
			return n
		}
	}
}

func (lx *Lexer) eatSuffix() string {
	if !isIdentStartByte(lx.cursor.Peek()) {
		return ""
	}
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.text(lx.cursor.SpanFrom(start))
}
