package ast

import (
	"github.com/wrachwal/deftuple/internal/source"
)

type ExprKind uint8

const (
	// ExprIdent is a bare name: a field, a local binding, or (in pattern
	// position) a fresh binding.
	ExprIdent ExprKind = iota
	// ExprLit is a literal: int, float, string, bool, nothing.
	ExprLit
	// ExprWildcard is a lone '_' (pattern position only).
	ExprWildcard
	// ExprTuple is a positional tuple literal (a, b, ...), two or more
	// elements. A one-element parenthesized form is plain grouping and
	// never produces this node.
	ExprTuple
	// ExprAssoc is an association-list literal {key: value, ...}.
	ExprAssoc
	// ExprCall is name(args...); every call site targets a tuple shape.
	ExprCall
	// ExprMatch is match subject { pattern => body, ... }.
	ExprMatch
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// LitKind classifies literal payloads.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
	LitNothing
)

type ExprIdentData struct {
	Name source.StringID
}

type ExprLitData struct {
	Kind     LitKind
	IntVal   int64
	FloatVal float64
	StrVal   string
	BoolVal  bool
}

type ExprTupleData struct {
	Elems []ExprID
}

// AssocPair is one key: value entry of an association-list literal.
// A wildcard key '_' is stored as Wildcard=true with Key left unset.
type AssocPair struct {
	Key      source.StringID
	KeySpan  source.Span
	Wildcard bool
	Value    ExprID
}

type ExprAssocData struct {
	Pairs []AssocPair
}

type ExprCallData struct {
	Target     source.StringID
	TargetSpan source.Span
	Args       []ExprID
}

// MatchArm is one pattern => body arm.
type MatchArm struct {
	Pattern ExprID
	Body    ExprID
	Span    source.Span
}

type ExprMatchData struct {
	Subject ExprID
	Arms    []MatchArm
}
