package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (raw identifiers included).
	Ident
	// Lifetime represents a lifetime or label, e.g. 'a.
	Lifetime

	// строгие ключевые слова
	KwAs
	KwAsync
	KwConst
	KwCrate
	KwDyn
	KwEnum
	KwExtern
	KwFalse
	KwFn
	KwFor
	KwImpl
	KwIn
	KwLet
	KwMod
	KwMove
	KwMut
	KwPub
	KwRef
	KwSelfValue // self
	KwSelfType  // Self
	KwStatic
	KwStruct
	KwSuper
	KwTrait
	KwTrue
	KwType
	KwUnion // contextual: only an item keyword when followed by an identifier
	KwUnsafe
	KwUse
	KwWhere

	// IntLit represents an integer literal, suffix included (e.g. 10u8).
	IntLit
	// FloatLit represents a float literal.
	FloatLit
	// StringLit represents a "..." literal.
	StringLit
	// RawStringLit represents a r"..." or r#"..."# literal.
	RawStringLit
	// ByteStringLit represents a b"..." literal.
	ByteStringLit
	// CharLit represents a 'x' literal.
	CharLit
	// ByteLit represents a b'x' literal.
	ByteLit

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Caret      // ^
	Bang       // !
	Amp        // &
	Pipe       // |
	AndAnd     // &&
	OrOr       // ||
	Shl        // <<
	Shr        // >>
	Assign     // =
	EqEq       // ==
	BangEq     // !=
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	At         // @
	Dot        // .
	DotDot     // ..
	DotDotDot  // ...
	DotDotEq   // ..=
	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Arrow      // ->
	FatArrow   // =>
	Pound      // #
	Dollar     // $
	Question   // ?
	Tilde      // ~
	Underscore // _
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	Lifetime:      "Lifetime",
	KwAs:          "as",
	KwAsync:       "async",
	KwConst:       "const",
	KwCrate:       "crate",
	KwDyn:         "dyn",
	KwEnum:        "enum",
	KwExtern:      "extern",
	KwFalse:       "false",
	KwFn:          "fn",
	KwFor:         "for",
	KwImpl:        "impl",
	KwIn:          "in",
	KwLet:         "let",
	KwMod:         "mod",
	KwMove:        "move",
	KwMut:         "mut",
	KwPub:         "pub",
	KwRef:         "ref",
	KwSelfValue:   "self",
	KwSelfType:    "Self",
	KwStatic:      "static",
	KwStruct:      "struct",
	KwSuper:       "super",
	KwTrait:       "trait",
	KwTrue:        "true",
	KwType:        "type",
	KwUnion:       "union",
	KwUnsafe:      "unsafe",
	KwUse:         "use",
	KwWhere:       "where",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	RawStringLit:  "RawStringLit",
	ByteStringLit: "ByteStringLit",
	CharLit:       "CharLit",
	ByteLit:       "ByteLit",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Caret:         "^",
	Bang:          "!",
	Amp:           "&",
	Pipe:          "|",
	AndAnd:        "&&",
	OrOr:          "||",
	Shl:           "<<",
	Shr:           ">>",
	Assign:        "=",
	EqEq:          "==",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	At:            "@",
	Dot:           ".",
	DotDot:        "..",
	DotDotDot:     "...",
	DotDotEq:      "..=",
	Comma:         ",",
	Semicolon:     ";",
	Colon:         ":",
	ColonColon:    "::",
	Arrow:         "->",
	FatArrow:      "=>",
	Pound:         "#",
	Dollar:        "$",
	Question:      "?",
	Tilde:         "~",
	Underscore:    "_",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
}

// String returns the source spelling for punctuation and keywords and the
// kind name for everything else.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// Closing returns the closing delimiter for an opening one.
func (k Kind) Closing() (Kind, bool) {
	switch k {
	case LParen:
		return RParen, true
	case LBrace:
		return RBrace, true
	case LBracket:
		return RBracket, true
	default:
		return Invalid, false
	}
}
