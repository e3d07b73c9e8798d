package lexer

import (
	"rsderive/internal/source"
	"rsderive/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
		hold:   nil,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look: вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// 2) collectLeadingTrivia(): набить lx.hold
	lx.collectLeadingTrivia()

	// 3) Если EOF → вернуть EOF (Leading из hold не приклеиваем к EOF)
	if lx.cursor.EOF() {
		lx.hold = nil
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
	}

	// 4) Посмотреть текущий байт и выбрать сканер
	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == 'r' && lx.atRawStringStart(1):
		// r"..." / r#"..."#
		tok = lx.scanRawString(1, token.RawStringLit)

	case ch == 'r' && lx.cursor.PeekAt(1) == '#' && isIdentStartByte(lx.cursor.PeekAt(2)):
		// r#ident: сырой идентификатор, ключевые слова не проверяем
		tok = lx.scanRawIdent()

	case ch == 'b' && lx.cursor.PeekAt(1) == 'r' && lx.atRawStringStart(2):
		tok = lx.scanRawString(2, token.ByteStringLit)

	case ch == 'b' && lx.cursor.PeekAt(1) == '"':
		lx.cursor.Bump()
		tok = lx.scanQuoted(lx.cursor.Mark()-1, '"', token.ByteStringLit)

	case ch == 'b' && lx.cursor.PeekAt(1) == '\'':
		lx.cursor.Bump()
		tok = lx.scanQuoted(lx.cursor.Mark()-1, '\'', token.ByteLit)

	case ch == '_':
		// одиночный "_" → Underscore, "_x"/"__" → идентификатор
		if isIdentContinueByte(lx.cursor.PeekAt(1)) {
			tok = lx.scanIdentOrKeyword()
		} else {
			tok = lx.scanOperatorOrPunct()
		}

	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		// Возможный Unicode идентификатор → scanIdentOrKeyword() разберётся
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanQuoted(lx.cursor.Mark(), '"', token.StringLit)

	case ch == '\'':
		tok = lx.scanLifetimeOrChar()

	default:
		// иначе → scanOperatorOrPunct() (включая #, скобки, запятые и т.д.)
		tok = lx.scanOperatorOrPunct()
	}

	// 5) В полученный token.Token положить Leading: lx.hold, обнулить hold
	tok.Leading = lx.hold
	lx.hold = nil

	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-width span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// File returns the file being tokenized.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// All drains the lexer, returning every token up to and including EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
