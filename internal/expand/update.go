package expand

import (
	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/core"
	"github.com/wrachwal/deftuple/internal/shape"
)

// lowerUpdate emits a left-to-right chain of positional replaces over the
// container expression. Each replace builds on the previous result, so a
// field named twice in one call takes its later value — the deliberate
// asymmetry with construction's first-wins rule. The wildcard key is a
// construction-only device; here `_` is an ordinary unknown-field
// candidate.
func (x *Expander) lowerUpdate(s *shape.Shape, container ast.ExprID, pairs []ast.AssocPair) (*core.Expr, bool) {
	cur, ok := x.lowerExpr(container)
	if !ok {
		return nil, false
	}
	for i := range pairs {
		if pairs[i].Wildcard {
			x.errUnknownField(s, "_", pairs[i].KeySpan)
			return nil, false
		}
		idx, found := s.Resolve(pairs[i].Key)
		if !found {
			x.errUnknownField(s, x.b.Name(pairs[i].Key), pairs[i].KeySpan)
			return nil, false
		}
		v, ok := x.lowerExpr(pairs[i].Value)
		if !ok {
			return nil, false
		}
		cur = core.NewSet(cur, idx, v)
	}
	return cur, true
}
