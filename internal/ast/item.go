package ast

import (
	"rsderive/internal/source"
)

type ItemKind uint8

const (
	// ItemOther is any item the parser recognizes but does not model
	// (fn, impl, trait, use, mod ...). It is skipped by balanced scanning.
	ItemOther ItemKind = iota
	ItemStruct
	ItemEnum
	ItemUnion
	ItemMacroCall
)

func (k ItemKind) String() string {
	switch k {
	case ItemStruct:
		return "struct"
	case ItemEnum:
		return "enum"
	case ItemUnion:
		return "union"
	case ItemMacroCall:
		return "macro"
	default:
		return "other"
	}
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Attrs   []Attr
	Vis     Visibility
	Payload PayloadID
	// Keyword is the leading keyword of an ItemOther ("fn", "impl", ...).
	Keyword string
}

// Visibility records `pub`, `pub(crate)`, `pub(in path)`. Text is empty for
// private items.
type Visibility struct {
	Text string
	Span source.Span
}

func (v Visibility) IsPub() bool { return v.Text != "" }

type Items struct {
	Arena   *Arena[Item]
	Structs *Arena[StructItem]
	Enums   *Arena[EnumItem]
	Macros  *Arena[MacroCallItem]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:   NewArena[Item](capHint),
		Structs: NewArena[StructItem](capHint),
		Enums:   NewArena[EnumItem](capHint / 4),
		Macros:  NewArena[MacroCallItem](capHint / 4),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// Struct returns the payload for struct and union items.
func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	item := i.Get(id)
	if item == nil || (item.Kind != ItemStruct && item.Kind != ItemUnion) {
		return nil, false
	}
	return i.Structs.Get(uint32(item.Payload)), true
}

func (i *Items) Enum(id ItemID) (*EnumItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemEnum {
		return nil, false
	}
	return i.Enums.Get(uint32(item.Payload)), true
}

func (i *Items) MacroCall(id ItemID) (*MacroCallItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemMacroCall {
		return nil, false
	}
	return i.Macros.Get(uint32(item.Payload)), true
}

// NewStruct allocates a struct (or union) item with its payload.
func (i *Items) NewStruct(kind ItemKind, span source.Span, payload StructItem) ItemID {
	pid := PayloadID(i.Structs.Allocate(payload))
	return i.New(kind, span, pid)
}

func (i *Items) NewEnum(span source.Span, payload EnumItem) ItemID {
	pid := PayloadID(i.Enums.Allocate(payload))
	return i.New(ItemEnum, span, pid)
}

func (i *Items) NewMacroCall(span source.Span, payload MacroCallItem) ItemID {
	pid := PayloadID(i.Macros.Allocate(payload))
	return i.New(ItemMacroCall, span, pid)
}
