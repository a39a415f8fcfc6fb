package ast

import (
	"github.com/wrachwal/deftuple/internal/source"
)

type ItemKind uint8

const (
	// ItemTuple is a `pub? tuple name(fields)` definition.
	ItemTuple ItemKind = iota
	// ItemLet is a `let name = expr` binding.
	ItemLet
	// ItemShow is a `show expr` statement.
	ItemShow
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// FieldDef is one raw entry of a tuple definition's field table:
// a bare name, or name = default.
type FieldDef struct {
	Name     source.StringID
	NameSpan source.Span
	Default  ExprID // NoExprID when the field has no explicit default
	Span     source.Span
}

type ItemTupleData struct {
	Vis      Visibility
	Name     source.StringID
	NameSpan source.Span
	Fields   []FieldDef
}

type ItemLetData struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

type ItemShowData struct {
	Value ExprID
}

// Items manages allocation of top-level items.
type Items struct {
	Arena  *Arena[Item]
	Tuples *Arena[ItemTupleData]
	Lets   *Arena[ItemLetData]
	Shows  *Arena[ItemShowData]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:  NewArena[Item](capHint),
		Tuples: NewArena[ItemTupleData](capHint / 2),
		Lets:   NewArena[ItemLetData](capHint / 2),
		Shows:  NewArena[ItemShowData](capHint / 2),
	}
}

func (it *Items) new(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(it.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (it *Items) Get(id ItemID) *Item {
	return it.Arena.Get(uint32(id))
}

// NewTuple creates a tuple definition item.
func (it *Items) NewTuple(span source.Span, data ItemTupleData) ItemID {
	payload := it.Tuples.Allocate(data)
	return it.new(ItemTuple, span, PayloadID(payload))
}

// Tuple returns the payload of an ItemTuple.
func (it *Items) Tuple(id ItemID) (*ItemTupleData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemTuple {
		return nil, false
	}
	return it.Tuples.Get(uint32(item.Payload)), true
}

// NewLet creates a let item.
func (it *Items) NewLet(span source.Span, data ItemLetData) ItemID {
	payload := it.Lets.Allocate(data)
	return it.new(ItemLet, span, PayloadID(payload))
}

// Let returns the payload of an ItemLet.
func (it *Items) Let(id ItemID) (*ItemLetData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemLet {
		return nil, false
	}
	return it.Lets.Get(uint32(item.Payload)), true
}

// NewShow creates a show item.
func (it *Items) NewShow(span source.Span, data ItemShowData) ItemID {
	payload := it.Shows.Allocate(data)
	return it.new(ItemShow, span, PayloadID(payload))
}

// Show returns the payload of an ItemShow.
func (it *Items) Show(id ItemID) (*ItemShowData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemShow {
		return nil, false
	}
	return it.Shows.Get(uint32(item.Payload)), true
}
