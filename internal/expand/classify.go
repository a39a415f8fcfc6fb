// Package expand turns parsed files into lowered core programs. Every call
// site whose target names a tuple shape is classified by its argument
// shape and rewritten into positional primitives; field names do not
// survive expansion except inside deferred conversions and diagnostics.
package expand

import (
	"github.com/wrachwal/deftuple/internal/ast"
)

// Op is the operation a call site's argument shape selects.
type Op uint8

const (
	// OpInvalid is any argument shape no operation accepts.
	OpInvalid Op = iota
	// OpConstructDefaults is name(): construct with all defaults.
	OpConstructDefaults
	// OpFieldIndex is name(field): the field's zero-based position.
	OpFieldIndex
	// OpConstructOverrides is name({f: v, ...}): construct with overrides.
	OpConstructOverrides
	// OpConvert is name(expr): container to association list.
	OpConvert
	// OpGet is name(container, field): positional read.
	OpGet
	// OpUpdate is name(container, {f: v, ...}): positional replace chain.
	OpUpdate
)

func (op Op) String() string {
	switch op {
	case OpConstructDefaults:
		return "construct-defaults"
	case OpFieldIndex:
		return "field-index"
	case OpConstructOverrides:
		return "construct-overrides"
	case OpConvert:
		return "convert"
	case OpGet:
		return "get"
	case OpUpdate:
		return "update"
	}
	return "invalid"
}

// classify decides the operation from argument count and syntactic kind
// alone. The one-argument form is the ambiguous one: a bare identifier is
// always a field lookup, an association literal is always a constructor,
// and everything else falls through to the converter (which may still
// narrow statically or defer to run time). The two-argument form admits
// no fallthrough: its second argument must be an identifier or an
// association literal, determinable here or never.
func classify(exprs *ast.Exprs, args []ast.ExprID) Op {
	switch len(args) {
	case 0:
		return OpConstructDefaults
	case 1:
		switch exprs.Kind(args[0]) {
		case ast.ExprIdent:
			return OpFieldIndex
		case ast.ExprAssoc:
			return OpConstructOverrides
		default:
			return OpConvert
		}
	case 2:
		switch exprs.Kind(args[1]) {
		case ast.ExprIdent:
			return OpGet
		case ast.ExprAssoc:
			return OpUpdate
		default:
			return OpInvalid
		}
	}
	return OpInvalid
}
