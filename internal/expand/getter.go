package expand

import (
	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/core"
	"github.com/wrachwal/deftuple/internal/shape"
)

// lowerGet emits a positional read of one field from the container
// expression.
func (x *Expander) lowerGet(s *shape.Shape, container, field ast.ExprID) (*core.Expr, bool) {
	idx, ok := x.resolveFieldArg(s, field)
	if !ok {
		return nil, false
	}
	c, ok := x.lowerExpr(container)
	if !ok {
		return nil, false
	}
	return core.NewGet(c, idx), true
}
