package lexer

import (
	"unicode/utf8"
)

// Строгие ключевые слова Rust 2021 и зарезервированные слова. Не все из них
// токенизируются как Kw*, но ни одно не может быть именем метода.
var reservedWords = map[string]struct{}{
	"as": {}, "break": {}, "const": {}, "continue": {}, "crate": {}, "else": {},
	"enum": {}, "extern": {}, "false": {}, "fn": {}, "for": {}, "if": {}, "impl": {},
	"in": {}, "let": {}, "loop": {}, "match": {}, "mod": {}, "move": {}, "mut": {},
	"pub": {}, "ref": {}, "return": {}, "self": {}, "Self": {}, "static": {},
	"struct": {}, "super": {}, "trait": {}, "true": {}, "type": {}, "unsafe": {},
	"use": {}, "where": {}, "while": {}, "async": {}, "await": {}, "dyn": {},
	"abstract": {}, "become": {}, "box": {}, "do": {}, "final": {}, "macro": {},
	"override": {}, "priv": {}, "typeof": {}, "unsized": {}, "virtual": {},
	"yield": {}, "try": {},
}

// IsIdent reports whether s is a usable Rust identifier: identifier
// characters only, not `_`, not a reserved word. Raw identifiers (`r#type`)
// are accepted.
func IsIdent(s string) bool {
	raw := false
	if len(s) > 2 && s[0] == 'r' && s[1] == '#' {
		s = s[2:]
		raw = true
	}
	if s == "" || s == "_" {
		return false
	}
	for i, r := range s {
		if r < utf8.RuneSelf {
			b := byte(r)
			if i == 0 && !isIdentStartByte(b) || i > 0 && !isIdentContinueByte(b) {
				return false
			}
			continue
		}
		if i == 0 && !isIdentStartRune(r) || i > 0 && !isIdentContinueRune(r) {
			return false
		}
	}
	if raw {
		switch s {
		case "crate", "self", "Self", "super":
			return false
		}
		return true
	}
	_, reserved := reservedWords[s]
	return !reserved
}
