package expand

import (
	"fmt"

	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/core"
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/shape"
	"github.com/wrachwal/deftuple/internal/source"
)

// Result is the outcome of expanding a program. When the reporter received
// errors the Program holds only the statements that expanded cleanly; the
// caller decides whether to run it.
type Result struct {
	Program *core.Program
	Shapes  *shape.Registry
}

// Expander lowers one program. It is single-use and single-threaded;
// a failure aborts the current definition or statement only.
type Expander struct {
	b        *ast.Builder
	reg      *shape.Registry
	reporter diag.Reporter

	// file the statement under expansion belongs to; bounds visibility
	// of private shapes.
	file source.FileID

	// scope counts live let and pattern bindings by name. A call argument
	// identifier that names a binding is a value, not a field name, so
	// bindings shadow fields at call sites.
	scope map[string]int
}

// Expand lowers files in order: first every tuple definition across all
// files is registered, then let and show statements are lowered against
// the full registry.
func Expand(b *ast.Builder, files []ast.FileID, reporter diag.Reporter) Result {
	x := &Expander{
		b:        b,
		reg:      shape.NewRegistry(),
		reporter: reporter,
		scope:    make(map[string]int),
	}

	for _, fid := range files {
		f := b.Files.Get(fid)
		for _, itemID := range f.Items {
			decl, ok := b.Items.Tuple(itemID)
			if !ok {
				continue
			}
			if decl.Vis == ast.VisPublic {
				x.DefinePublic(f.Source, decl)
			} else {
				x.DefinePrivate(f.Source, decl)
			}
		}
	}

	prog := &core.Program{}
	for _, fid := range files {
		f := b.Files.Get(fid)
		x.file = f.Source
		for _, itemID := range f.Items {
			item := b.Items.Get(itemID)
			switch item.Kind {
			case ast.ItemLet:
				let, _ := b.Items.Let(itemID)
				v, ok := x.lowerExpr(let.Value)
				// The binding exists for later statements even when its
				// value failed to lower, keeping follow-on errors honest.
				x.bind(x.b.Name(let.Name))
				if !ok {
					continue
				}
				prog.Stmts = append(prog.Stmts, core.Stmt{
					Kind:  core.StmtLet,
					Name:  x.b.Name(let.Name),
					Value: v,
				})
			case ast.ItemShow:
				show, _ := b.Items.Show(itemID)
				v, ok := x.lowerExpr(show.Value)
				if !ok {
					continue
				}
				prog.Stmts = append(prog.Stmts, core.Stmt{
					Kind:  core.StmtShow,
					Value: v,
				})
			}
		}
	}

	return Result{Program: prog, Shapes: x.reg}
}

// DefinePublic registers a shape whose operations are visible from every
// file of the program.
func (x *Expander) DefinePublic(file source.FileID, decl *ast.ItemTupleData) bool {
	return x.define(file, decl, ast.VisPublic)
}

// DefinePrivate registers a shape visible only inside its defining file.
func (x *Expander) DefinePrivate(file source.FileID, decl *ast.ItemTupleData) bool {
	return x.define(file, decl, ast.VisPrivate)
}

func (x *Expander) define(file source.FileID, decl *ast.ItemTupleData, vis ast.Visibility) bool {
	s, ok := shape.Build(x.b, file, decl, x.reporter)
	if !ok {
		return false
	}
	s.Vis = vis
	if !x.reg.Add(s) {
		prev, _ := x.reg.Get(s.Name)
		if x.reporter != nil {
			x.reporter.Report(diag.ExpDuplicateShape, diag.SevError, decl.NameSpan,
				fmt.Sprintf("tuple shape `%s` is already defined", x.b.Name(s.Name)),
				[]diag.Note{{Span: prev.NameSpan, Msg: "first defined here"}})
		}
		return false
	}
	return true
}

// lowerExpr lowers a value-context expression.
func (x *Expander) lowerExpr(id ast.ExprID) (*core.Expr, bool) {
	exprs := x.b.Exprs
	switch exprs.Kind(id) {
	case ast.ExprLit:
		lit, _ := exprs.Lit(id)
		return core.NewLit(lowerLit(lit)), true

	case ast.ExprIdent:
		ident, _ := exprs.Ident(id)
		return core.NewLocal(x.b.Name(ident.Name)), true

	case ast.ExprWildcard:
		diag.Error(x.reporter, diag.ExpBadPattern, exprs.Span(id),
			"`_` is only meaningful in patterns and assoc keys")
		return nil, false

	case ast.ExprTuple:
		tup, _ := exprs.Tuple(id)
		elems := make([]*core.Expr, len(tup.Elems))
		for i, el := range tup.Elems {
			v, ok := x.lowerExpr(el)
			if !ok {
				return nil, false
			}
			elems[i] = v
		}
		return core.NewMake(elems), true

	case ast.ExprAssoc:
		return x.lowerAssocValue(id)

	case ast.ExprCall:
		call, _ := exprs.Call(id)
		return x.lowerCall(call, exprs.Span(id))

	case ast.ExprMatch:
		return x.lowerMatch(id)
	}
	diag.Error(x.reporter, diag.ExpBadPattern, exprs.Span(id), "malformed expression")
	return nil, false
}

// lowerAssocValue lowers a free-standing association literal. The wildcard
// key is a constructor-argument device; a plain value has no field set for
// it to range over.
func (x *Expander) lowerAssocValue(id ast.ExprID) (*core.Expr, bool) {
	assoc, _ := x.b.Exprs.Assoc(id)
	keys := make([]string, len(assoc.Pairs))
	vals := make([]*core.Expr, len(assoc.Pairs))
	for i, p := range assoc.Pairs {
		if p.Wildcard {
			diag.Error(x.reporter, diag.ExpBadPattern, p.KeySpan,
				"wildcard key `_` is only valid in tuple construction arguments")
			return nil, false
		}
		v, ok := x.lowerExpr(p.Value)
		if !ok {
			return nil, false
		}
		keys[i] = x.b.Name(p.Key)
		vals[i] = v
	}
	return core.NewAssoc(keys, vals), true
}

func (x *Expander) lowerMatch(id ast.ExprID) (*core.Expr, bool) {
	m, _ := x.b.Exprs.Match(id)
	subj, ok := x.lowerExpr(m.Subject)
	if !ok {
		return nil, false
	}
	arms := make([]core.Arm, 0, len(m.Arms))
	for _, arm := range m.Arms {
		pat, ok := x.lowerPattern(arm.Pattern)
		if !ok {
			return nil, false
		}
		binds := patBinds(pat, nil)
		for _, n := range binds {
			x.bind(n)
		}
		body, ok := x.lowerExpr(arm.Body)
		for _, n := range binds {
			x.unbind(n)
		}
		if !ok {
			return nil, false
		}
		arms = append(arms, core.Arm{Pat: pat, Body: body})
	}
	return core.NewMatch(subj, arms), true
}

// patBinds collects the names a lowered pattern binds.
func patBinds(p *core.Pat, acc []string) []string {
	switch p.Kind {
	case core.PatBind:
		acc = append(acc, p.Name)
	case core.PatTuple:
		for _, el := range p.Elems {
			acc = patBinds(el, acc)
		}
	}
	return acc
}

func (x *Expander) bind(name string) {
	x.scope[name]++
}

func (x *Expander) unbind(name string) {
	x.scope[name]--
	if x.scope[name] <= 0 {
		delete(x.scope, name)
	}
}

func (x *Expander) inScope(name source.StringID) bool {
	_, ok := x.scope[x.b.Name(name)]
	return ok
}

// lowerCall resolves the target shape and routes on the classified
// argument shape. Value context only; pattern-position calls go through
// lowerPattern instead.
//
// Classification is purely syntactic; one semantic adjustment happens
// here: an identifier argument that names a live binding carries a value,
// so it routes to the converter (arity 1) or is rejected (arity 2)
// instead of being read as a field name.
func (x *Expander) lowerCall(call *ast.ExprCallData, span source.Span) (*core.Expr, bool) {
	s, ok := x.lookupShape(call)
	if !ok {
		return nil, false
	}
	switch classify(x.b.Exprs, call.Args) {
	case OpConstructDefaults:
		return x.lowerConstruct(s, nil, span)

	case OpFieldIndex:
		if ident, _ := x.b.Exprs.Ident(call.Args[0]); x.inScope(ident.Name) {
			return x.lowerConvert(s, call.Args[0])
		}
		idx, ok := x.resolveFieldArg(s, call.Args[0])
		if !ok {
			return nil, false
		}
		return core.NewLit(core.Lit{Kind: core.LitInt, Int: int64(idx)}), true

	case OpConstructOverrides:
		assoc, _ := x.b.Exprs.Assoc(call.Args[0])
		return x.lowerConstruct(s, assoc.Pairs, span)

	case OpConvert:
		return x.lowerConvert(s, call.Args[0])

	case OpGet:
		if ident, _ := x.b.Exprs.Ident(call.Args[1]); x.inScope(ident.Name) {
			diag.Error(x.reporter, diag.ExpInvalidArgumentShape, x.b.Exprs.Span(call.Args[1]),
				fmt.Sprintf("%s: `%s` is a binding, not a field name; the second argument must name a field or be an assoc literal",
					x.b.Name(s.Name), x.b.Name(ident.Name)))
			return nil, false
		}
		return x.lowerGet(s, call.Args[0], call.Args[1])

	case OpUpdate:
		assoc, _ := x.b.Exprs.Assoc(call.Args[1])
		return x.lowerUpdate(s, call.Args[0], assoc.Pairs)
	}

	var offending source.Span
	if len(call.Args) >= 2 {
		offending = x.b.Exprs.Span(call.Args[1])
	} else {
		offending = span
	}
	diag.Error(x.reporter, diag.ExpInvalidArgumentShape, offending,
		fmt.Sprintf("%s: second argument must be a field name or an assoc literal",
			x.b.Name(s.Name)))
	return nil, false
}

// lowerPattern lowers a pattern-context expression. The context is known
// structurally (match-arm position), so construction calls switch to
// binding semantics here and updates are rejected outright.
func (x *Expander) lowerPattern(id ast.ExprID) (*core.Pat, bool) {
	exprs := x.b.Exprs
	switch exprs.Kind(id) {
	case ast.ExprWildcard:
		return &core.Pat{Kind: core.PatWildcard}, true

	case ast.ExprIdent:
		ident, _ := exprs.Ident(id)
		return &core.Pat{Kind: core.PatBind, Name: x.b.Name(ident.Name)}, true

	case ast.ExprLit:
		lit, _ := exprs.Lit(id)
		return &core.Pat{Kind: core.PatLit, Lit: lowerLit(lit)}, true

	case ast.ExprTuple:
		tup, _ := exprs.Tuple(id)
		elems := make([]*core.Pat, len(tup.Elems))
		for i, el := range tup.Elems {
			p, ok := x.lowerPattern(el)
			if !ok {
				return nil, false
			}
			elems[i] = p
		}
		return &core.Pat{Kind: core.PatTuple, Elems: elems}, true

	case ast.ExprCall:
		call, _ := exprs.Call(id)
		return x.lowerCallPattern(call, exprs.Span(id))
	}
	diag.Error(x.reporter, diag.ExpBadPattern, exprs.Span(id),
		"pattern must be a literal, a binding, `_`, a tuple, or a tuple construction")
	return nil, false
}

func (x *Expander) lowerCallPattern(call *ast.ExprCallData, span source.Span) (*core.Pat, bool) {
	s, ok := x.lookupShape(call)
	if !ok {
		return nil, false
	}
	switch classify(x.b.Exprs, call.Args) {
	case OpConstructDefaults:
		return x.lowerConstructPattern(s, nil, span)

	case OpConstructOverrides:
		assoc, _ := x.b.Exprs.Assoc(call.Args[0])
		return x.lowerConstructPattern(s, assoc.Pairs, span)

	case OpFieldIndex:
		// The index is a compile-time constant, so it is a legal literal
		// pattern.
		idx, ok := x.resolveFieldArg(s, call.Args[0])
		if !ok {
			return nil, false
		}
		return &core.Pat{
			Kind: core.PatLit,
			Lit:  core.Lit{Kind: core.LitInt, Int: int64(idx)},
		}, true

	case OpUpdate:
		diag.Error(x.reporter, diag.ExpUpdateInMatchContext, span,
			fmt.Sprintf("%s: tuple update cannot appear inside a match pattern",
				x.b.Name(s.Name)))
		return nil, false
	}
	diag.Error(x.reporter, diag.ExpBadPattern, span,
		fmt.Sprintf("%s: only construction forms of a tuple shape can appear in a pattern",
			x.b.Name(s.Name)))
	return nil, false
}

// lookupShape resolves a call target against the registry from the
// viewpoint of the file under expansion.
func (x *Expander) lookupShape(call *ast.ExprCallData) (*shape.Shape, bool) {
	s, ok := x.reg.Lookup(call.Target, x.file)
	if !ok {
		diag.Error(x.reporter, diag.ExpUnknownShape, call.TargetSpan,
			fmt.Sprintf("unknown tuple shape `%s`", x.b.Name(call.Target)))
		return nil, false
	}
	return s, true
}

// resolveFieldArg resolves an identifier argument to its position.
func (x *Expander) resolveFieldArg(s *shape.Shape, arg ast.ExprID) (int, bool) {
	ident, _ := x.b.Exprs.Ident(arg)
	idx, ok := s.Resolve(ident.Name)
	if !ok {
		x.errUnknownField(s, x.b.Name(ident.Name), x.b.Exprs.Span(arg))
		return 0, false
	}
	return idx, true
}

func (x *Expander) errUnknownField(s *shape.Shape, field string, span source.Span) {
	diag.Error(x.reporter, diag.ExpUnknownField, span,
		fmt.Sprintf("%s: unknown field `%s`", x.b.Name(s.Name), field))
}

// lowerLit converts a parsed literal payload to its lowered form.
func lowerLit(l *ast.ExprLitData) core.Lit {
	switch l.Kind {
	case ast.LitInt:
		return core.Lit{Kind: core.LitInt, Int: l.IntVal}
	case ast.LitFloat:
		return core.Lit{Kind: core.LitFloat, Float: l.FloatVal}
	case ast.LitString:
		return core.Lit{Kind: core.LitString, Str: l.StrVal}
	case ast.LitBool:
		return core.Lit{Kind: core.LitBool, Bool: l.BoolVal}
	default:
		return core.Lit{Kind: core.LitNothing}
	}
}
