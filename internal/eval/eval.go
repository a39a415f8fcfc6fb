package eval

import (
	"fmt"
	"io"

	"github.com/wrachwal/deftuple/internal/core"
)

// Env maps let and pattern bindings to values. Bindings shadow in arm
// bodies via copy, programs are small enough not to care.
type Env map[string]Value

// Run executes the program top to bottom, writing one line per show
// statement. The first evaluation error aborts the run.
func Run(p *core.Program, out io.Writer) error {
	env := Env{}
	for _, st := range p.Stmts {
		v, err := Eval(st.Value, env)
		if err != nil {
			return err
		}
		switch st.Kind {
		case core.StmtLet:
			env[st.Name] = v
		case core.StmtShow:
			if _, err := fmt.Fprintln(out, v.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Eval evaluates one lowered expression under env.
func Eval(e *core.Expr, env Env) (Value, error) {
	switch e.Kind {
	case core.ExprLit:
		return litValue(e.Lit), nil

	case core.ExprLocal:
		v, ok := env[e.Name]
		if !ok {
			return Nothing(), &UnboundError{Name: e.Name}
		}
		return v, nil

	case core.ExprMake:
		vals := make([]Value, len(e.Elems))
		for i, el := range e.Elems {
			v, err := Eval(el, env)
			if err != nil {
				return Nothing(), err
			}
			vals[i] = v
		}
		return Tuple(NewContainer(vals)), nil

	case core.ExprGet:
		t, err := Eval(e.Tuple, env)
		if err != nil {
			return Nothing(), err
		}
		c := t.AsTuple()
		if c == nil || e.Index >= c.Arity() {
			return Nothing(), &OpError{Op: "get", Actual: t}
		}
		return c.Get(e.Index), nil

	case core.ExprSet:
		t, err := Eval(e.Tuple, env)
		if err != nil {
			return Nothing(), err
		}
		c := t.AsTuple()
		if c == nil || e.Index >= c.Arity() {
			return Nothing(), &OpError{Op: "set", Actual: t}
		}
		v, err := Eval(e.Value, env)
		if err != nil {
			return Nothing(), err
		}
		return Tuple(c.WithReplaced(e.Index, v)), nil

	case core.ExprAssoc:
		pairs := make([]AssocPair, len(e.Elems))
		for i, el := range e.Elems {
			v, err := Eval(el, env)
			if err != nil {
				return Nothing(), err
			}
			pairs[i] = AssocPair{Key: e.Keys[i], Value: v}
		}
		return Assoc(&AssocList{Pairs: pairs}), nil

	case core.ExprToAssoc:
		arg, err := Eval(e.Arg, env)
		if err != nil {
			return Nothing(), err
		}
		c := arg.AsTuple()
		if c == nil || c.Arity() != len(e.FieldNames) {
			return Nothing(), &ShapeMismatchError{
				Shape:    e.Shape,
				Expected: len(e.FieldNames),
				Actual:   arg,
			}
		}
		pairs := make([]AssocPair, len(e.FieldNames))
		for i, name := range e.FieldNames {
			pairs[i] = AssocPair{Key: name, Value: c.Get(i)}
		}
		return Assoc(&AssocList{Pairs: pairs}), nil

	case core.ExprMatch:
		subj, err := Eval(e.Subject, env)
		if err != nil {
			return Nothing(), err
		}
		for _, arm := range e.Arms {
			binds := Env{}
			if matchPat(arm.Pat, subj, binds) {
				armEnv := env
				if len(binds) > 0 {
					armEnv = make(Env, len(env)+len(binds))
					for k, v := range env {
						armEnv[k] = v
					}
					for k, v := range binds {
						armEnv[k] = v
					}
				}
				return Eval(arm.Body, armEnv)
			}
		}
		return Nothing(), &NoMatchError{Subject: subj}
	}
	return Nothing(), fmt.Errorf("eval: bad expression kind %d", e.Kind)
}

// matchPat records bindings into binds; bindings from a failed arm are
// discarded by the caller.
func matchPat(p *core.Pat, v Value, binds Env) bool {
	switch p.Kind {
	case core.PatWildcard:
		return true
	case core.PatBind:
		binds[p.Name] = v
		return true
	case core.PatLit:
		return litValue(p.Lit).Equal(v)
	case core.PatTuple:
		c := v.AsTuple()
		if c == nil || c.Arity() != len(p.Elems) {
			return false
		}
		for i, sub := range p.Elems {
			if !matchPat(sub, c.Get(i), binds) {
				return false
			}
		}
		return true
	}
	return false
}
