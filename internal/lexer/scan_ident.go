package lexer

import (
	"golang.org/x/text/unicode/norm"

	"rsderive/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые. Не-ASCII идентификаторы приводятся к NFC,
// ASCII Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
	} else if !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}
	ascii := lx.bumpIdentTail()

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if !ascii {
		text = norm.NFC.String(text)
	}

	if text == "_" {
		return token.Token{Kind: token.Underscore, Span: sp, Text: text}
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanRawIdent сканирует r#ident. Text сохраняет префикс, чтобы вывод
// оставался валидным Rust даже для r#type.
func (lx *Lexer) scanRawIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // r
	lx.cursor.Bump() // #
	ascii := lx.bumpIdentTail()
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if !ascii {
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// bumpIdentTail съедает первый символ идентификатора и все продолжения.
// Возвращает true, если все символы ASCII.
func (lx *Lexer) bumpIdentTail() bool {
	ascii := true
	first := true
	for {
		r, sz := lx.peekRune()
		if sz == 0 {
			return ascii
		}
		if r < utf8RuneSelf {
			ok := isIdentContinueByte(byte(r))
			if first {
				ok = isIdentStartByte(byte(r))
			}
			if !ok {
				return ascii
			}
			lx.cursor.Bump()
		} else {
			ok := isIdentContinueRune(r)
			if first {
				ok = isIdentStartRune(r)
			}
			if !ok {
				return ascii
			}
			ascii = false
			lx.bumpRune()
		}
		first = false
	}
}
