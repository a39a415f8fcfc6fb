package expand

import (
	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/core"
	"github.com/wrachwal/deftuple/internal/shape"
)

// lowerConvert emits the container-to-association-list conversion.
//
// Static narrowing: when the argument is a tuple literal of exactly the
// shape's arity, its arity can never mismatch at run time, so the zip is
// done here and the result is a plain association literal. Narrowing is
// deliberately limited to literal tuples; anything else — a binding, a
// nested construction, a match — defers to a runtime conversion that
// checks the arity against the live value.
func (x *Expander) lowerConvert(s *shape.Shape, arg ast.ExprID) (*core.Expr, bool) {
	names := make([]string, s.Arity())
	for i, n := range s.FieldNames() {
		names[i] = x.b.Name(n)
	}

	if tup, ok := x.b.Exprs.Tuple(arg); ok && len(tup.Elems) == s.Arity() {
		vals := make([]*core.Expr, len(tup.Elems))
		for i, el := range tup.Elems {
			v, ok := x.lowerExpr(el)
			if !ok {
				return nil, false
			}
			vals[i] = v
		}
		return core.NewAssoc(names, vals), true
	}

	v, ok := x.lowerExpr(arg)
	if !ok {
		return nil, false
	}
	return core.NewToAssoc(x.b.Name(s.Name), names, v), true
}
