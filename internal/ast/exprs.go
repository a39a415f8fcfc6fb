package ast

import (
	"github.com/wrachwal/deftuple/internal/source"
)

// Exprs manages allocation of expressions: one arena of Expr headers plus
// per-kind payload arenas.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLitData]
	Tuples   *Arena[ExprTupleData]
	Assocs   *Arena[ExprAssocData]
	Calls    *Arena[ExprCallData]
	Matches  *Arena[ExprMatchData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLitData](capHint),
		Tuples:   NewArena[ExprTupleData](capHint / 4),
		Assocs:   NewArena[ExprAssocData](capHint / 4),
		Calls:    NewArena[ExprCallData](capHint / 4),
		Matches:  NewArena[ExprMatchData](capHint / 8),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression header with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Kind returns the kind of id, or ExprWildcard for the invalid ID.
func (e *Exprs) Kind(id ExprID) ExprKind {
	expr := e.Get(id)
	if expr == nil {
		return ExprWildcard
	}
	return expr.Kind
}

// Span returns the span of id, or the zero span for the invalid ID.
func (e *Exprs) Span(id ExprID) source.Span {
	expr := e.Get(id)
	if expr == nil {
		return source.Span{}
	}
	return expr.Span
}

// NewIdent creates an identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the payload of an ExprIdent node.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewLit creates a literal expression.
func (e *Exprs) NewLit(span source.Span, data ExprLitData) ExprID {
	payload := e.Literals.Allocate(data)
	return e.new(ExprLit, span, PayloadID(payload))
}

// Lit returns the payload of an ExprLit node.
func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewWildcard creates a '_' expression.
func (e *Exprs) NewWildcard(span source.Span) ExprID {
	return e.new(ExprWildcard, span, NoPayloadID)
}

// NewTuple creates a positional tuple literal.
func (e *Exprs) NewTuple(span source.Span, elems []ExprID) ExprID {
	payload := e.Tuples.Allocate(ExprTupleData{Elems: elems})
	return e.new(ExprTuple, span, PayloadID(payload))
}

// Tuple returns the payload of an ExprTuple node.
func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTuple {
		return nil, false
	}
	return e.Tuples.Get(uint32(expr.Payload)), true
}

// NewAssoc creates an association-list literal.
func (e *Exprs) NewAssoc(span source.Span, pairs []AssocPair) ExprID {
	payload := e.Assocs.Allocate(ExprAssocData{Pairs: pairs})
	return e.new(ExprAssoc, span, PayloadID(payload))
}

// Assoc returns the payload of an ExprAssoc node.
func (e *Exprs) Assoc(id ExprID) (*ExprAssocData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssoc {
		return nil, false
	}
	return e.Assocs.Get(uint32(expr.Payload)), true
}

// NewCall creates a call expression.
func (e *Exprs) NewCall(span source.Span, target source.StringID, targetSpan source.Span, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Target: target, TargetSpan: targetSpan, Args: args})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the payload of an ExprCall node.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewMatch creates a match expression.
func (e *Exprs) NewMatch(span source.Span, subject ExprID, arms []MatchArm) ExprID {
	payload := e.Matches.Allocate(ExprMatchData{Subject: subject, Arms: arms})
	return e.new(ExprMatch, span, PayloadID(payload))
}

// Match returns the payload of an ExprMatch node.
func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMatch {
		return nil, false
	}
	return e.Matches.Get(uint32(expr.Payload)), true
}
