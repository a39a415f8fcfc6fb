package expand

import (
	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/core"
	"github.com/wrachwal/deftuple/internal/shape"
	"github.com/wrachwal/deftuple/internal/source"
)

// overridePlan is the shared half of construction: the wildcard rule and
// first-wins duplicate consumption, identical in value and pattern
// position. Per shape field it yields the index of the winning override
// pair, or -1 for "not overridden".
type overridePlan struct {
	winner   []int  // per shape field: pair index or -1
	consumed []bool // per pair: claimed by a field or by the wildcard rule
	wildcard ast.ExprID
	hasWild  bool
}

func planOverrides(s *shape.Shape, pairs []ast.AssocPair) overridePlan {
	p := overridePlan{
		winner:   make([]int, s.Arity()),
		consumed: make([]bool, len(pairs)),
	}

	// The wildcard rule runs first: the first `_` rebinds the default of
	// every field not otherwise overridden; every `_` pair is consumed
	// (later ones are duplicates and lose like any other duplicate key).
	for i := range pairs {
		if !pairs[i].Wildcard {
			continue
		}
		if !p.hasWild {
			p.hasWild = true
			p.wildcard = pairs[i].Value
		}
		p.consumed[i] = true
	}

	for fi := range s.Fields {
		p.winner[fi] = -1
		for pi := range pairs {
			if pairs[pi].Wildcard || pairs[pi].Key != s.Fields[fi].Name {
				continue
			}
			if p.winner[fi] < 0 {
				p.winner[fi] = pi
			}
			// Later occurrences for an already-consumed field are
			// ignored silently; that is policy, not an error.
			p.consumed[pi] = true
		}
	}
	return p
}

// firstLeftover returns the first pair, in argument order, no shape field
// consumed.
func (p *overridePlan) firstLeftover(pairs []ast.AssocPair) (int, bool) {
	for i := range pairs {
		if !p.consumed[i] {
			return i, true
		}
	}
	return 0, false
}

// lowerConstruct emits a value-position construction: a container literal
// with every field filled from its winning override, the wildcard-adjusted
// default, its own default, or nothing, in that order. Defaults are
// closed literal forms and are re-lowered at every site, never shared.
func (x *Expander) lowerConstruct(s *shape.Shape, pairs []ast.AssocPair, span source.Span) (*core.Expr, bool) {
	plan := planOverrides(s, pairs)
	if i, leftover := plan.firstLeftover(pairs); leftover {
		x.errUnknownField(s, x.b.Name(pairs[i].Key), pairs[i].KeySpan)
		return nil, false
	}

	elems := make([]*core.Expr, s.Arity())
	for fi := range s.Fields {
		var src ast.ExprID
		switch {
		case plan.winner[fi] >= 0:
			src = pairs[plan.winner[fi]].Value
		case plan.hasWild:
			src = plan.wildcard
		case s.Fields[fi].Default.IsValid():
			src = s.Fields[fi].Default
		default:
			elems[fi] = core.NewLit(core.Lit{Kind: core.LitNothing})
			continue
		}
		v, ok := x.lowerExpr(src)
		if !ok {
			return nil, false
		}
		elems[fi] = v
	}
	return core.NewMake(elems), true
}

// lowerConstructPattern emits a pattern-position construction: overridden
// fields become subpatterns, every other field a fresh wildcard that
// matches anything and binds nothing. Defaults play no part here, so a
// wildcard-rule value is consumed but has no effect.
func (x *Expander) lowerConstructPattern(s *shape.Shape, pairs []ast.AssocPair, span source.Span) (*core.Pat, bool) {
	plan := planOverrides(s, pairs)
	if i, leftover := plan.firstLeftover(pairs); leftover {
		x.errUnknownField(s, x.b.Name(pairs[i].Key), pairs[i].KeySpan)
		return nil, false
	}

	elems := make([]*core.Pat, s.Arity())
	for fi := range s.Fields {
		if plan.winner[fi] < 0 {
			elems[fi] = &core.Pat{Kind: core.PatWildcard}
			continue
		}
		p, ok := x.lowerPattern(pairs[plan.winner[fi]].Value)
		if !ok {
			return nil, false
		}
		elems[fi] = p
	}
	return &core.Pat{Kind: core.PatTuple, Elems: elems}, true
}
