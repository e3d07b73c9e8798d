package lexer

import (
	"rsderive/internal/diag"
	"rsderive/internal/token"
)

// scanQuoted сканирует "..." или '...' начиная с открывающей кавычки.
// start может указывать раньше кавычки (префикс b).
// Escape-последовательности только проверяются; значение достаёт Unquote.
func (lx *Lexer) scanQuoted(start Mark, quote byte, kind token.Kind) token.Token {
	lx.cursor.Bump() // открывающая кавычка
	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			if quote == '"' {
				lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			} else {
				lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
			}
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		}
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		case b == '\n' && quote == '\'':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		case b == '\\':
			lx.scanEscape()
		default:
			lx.bumpRune()
		}
	}
}

func (lx *Lexer) scanEscape() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	b := lx.cursor.Peek()
	switch b {
	case 'n', 'r', 't', '\\', '0', '\'', '"':
		lx.cursor.Bump()
	case '\n':
		// продолжение строки: пробелы в начале следующей строки игнорируются
		lx.cursor.Bump()
	case 'x':
		lx.cursor.Bump()
		if !isHex(lx.cursor.Peek()) || !isHex(lx.cursor.PeekAt(1)) {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "expected two hex digits after \\x")
			return
		}
		lx.cursor.Bump()
		lx.cursor.Bump()
	case 'u':
		lx.cursor.Bump()
		if !lx.cursor.Eat('{') {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "expected '{' after \\u")
			return
		}
		n := lx.eatDigits(isHex)
		if !lx.cursor.Eat('}') || n == 0 || n > 6 {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "malformed unicode escape")
		}
	default:
		if !lx.cursor.EOF() {
			lx.bumpRune()
		}
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "unknown character escape")
	}
}

// atRawStringStart: на смещении off стоит #*"
func (lx *Lexer) atRawStringStart(off uint32) bool {
	for {
		switch lx.cursor.PeekAt(off) {
		case '#':
			off++
		case '"':
			return true
		default:
			return false
		}
	}
}

// scanRawString сканирует r#"..."# (prefixLen = 1) или br#"..."# (prefixLen = 2).
func (lx *Lexer) scanRawString(prefixLen int, kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	for range prefixLen {
		lx.cursor.Bump()
	}
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	lx.cursor.Bump() // '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadRawString, sp, "unterminated raw string literal")
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// scanLifetimeOrChar различает 'a (lifetime) и 'a' (char).
func (lx *Lexer) scanLifetimeOrChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '
	r, sz := lx.peekRune()
	identStart := sz > 0 && ((r < utf8RuneSelf && isIdentStartByte(byte(r))) || (r >= utf8RuneSelf && isIdentStartRune(r)))
	if !identStart {
		lx.cursor.Reset(start)
		return lx.scanQuoted(start, '\'', token.CharLit)
	}
	lx.bumpIdentTail()
	if lx.cursor.Peek() == '\'' {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Lifetime, Span: sp, Text: lx.text(sp)}
}
