package token

var keywords = map[string]Kind{
	"as":     KwAs,
	"async":  KwAsync,
	"const":  KwConst,
	"crate":  KwCrate,
	"dyn":    KwDyn,
	"enum":   KwEnum,
	"extern": KwExtern,
	"false":  KwFalse,
	"fn":     KwFn,
	"for":    KwFor,
	"impl":   KwImpl,
	"in":     KwIn,
	"let":    KwLet,
	"mod":    KwMod,
	"move":   KwMove,
	"mut":    KwMut,
	"pub":    KwPub,
	"ref":    KwRef,
	"self":   KwSelfValue,
	"Self":   KwSelfType,
	"static": KwStatic,
	"struct": KwStruct,
	"super":  KwSuper,
	"trait":  KwTrait,
	"true":   KwTrue,
	"type":   KwType,
	"union":  KwUnion,
	"unsafe": KwUnsafe,
	"use":    KwUse,
	"where":  KwWhere,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsPathSegmentKeyword reports whether k may start or continue a path
// (`crate::x`, `self::x`, `super::x`, `Self::Assoc`).
func IsPathSegmentKeyword(k Kind) bool {
	switch k {
	case KwCrate, KwSelfValue, KwSelfType, KwSuper:
		return true
	default:
		return false
	}
}
