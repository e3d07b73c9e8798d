package ast

import (
	"rsderive/internal/source"
)

type Hints struct{ Files, Items, Types uint }

// Builder owns every arena of one parsed file set. It is not safe for
// concurrent mutation; the driver uses one Builder per file.
type Builder struct {
	Files *Files
	Items *Items
	Types *Types
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 6
	}
	if hints.Types == 0 {
		hints.Types = 1 << 8
	}
	return &Builder{
		Files: NewFiles(hints.Files),
		Items: NewItems(hints.Items),
		Types: NewTypes(hints.Types),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}
