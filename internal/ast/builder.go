package ast

import (
	"github.com/wrachwal/deftuple/internal/source"
)

type Hints struct{ Files, Items, Exprs uint }

// Builder owns every arena of a program's AST plus the name interner
// shared by all of its files.
type Builder struct {
	Files   *Files
	Items   *Items
	Exprs   *Exprs
	Strings *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 3
	}
	if hints.Items == 0 {
		hints.Items = 1 << 6
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Items:   NewItems(hints.Items),
		Exprs:   NewExprs(hints.Exprs),
		Strings: source.NewInterner(),
	}
}

func (b *Builder) NewFile(sp source.Span, src source.FileID) FileID {
	return b.Files.New(sp, src)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Name resolves an interned name for display.
func (b *Builder) Name(id source.StringID) string {
	return b.Strings.MustLookup(id)
}
