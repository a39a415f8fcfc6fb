package core

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatProgram renders a lowered program deterministically, one statement
// per line. The output is what `deftuple expand` prints and what golden
// tests compare against.
func FormatProgram(p *Program) string {
	var sb strings.Builder
	for _, st := range p.Stmts {
		switch st.Kind {
		case StmtLet:
			sb.WriteString("let ")
			sb.WriteString(st.Name)
			sb.WriteString(" = ")
		case StmtShow:
			sb.WriteString("show ")
		}
		writeExpr(&sb, st.Value)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatExpr renders one lowered expression.
func FormatExpr(e *Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e *Expr) {
	if e == nil {
		sb.WriteString("<nil>")
		return
	}
	switch e.Kind {
	case ExprLit:
		sb.WriteString(e.Lit.String())
	case ExprLocal:
		sb.WriteString(e.Name)
	case ExprMake:
		sb.WriteString("mktuple(")
		writeList(sb, e.Elems)
		sb.WriteByte(')')
	case ExprGet:
		sb.WriteString("get(")
		writeExpr(sb, e.Tuple)
		fmt.Fprintf(sb, ", %d)", e.Index)
	case ExprSet:
		sb.WriteString("set(")
		writeExpr(sb, e.Tuple)
		fmt.Fprintf(sb, ", %d, ", e.Index)
		writeExpr(sb, e.Value)
		sb.WriteByte(')')
	case ExprAssoc:
		sb.WriteByte('{')
		for i, k := range e.Keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			writeExpr(sb, e.Elems[i])
		}
		sb.WriteByte('}')
	case ExprToAssoc:
		fmt.Fprintf(sb, "toassoc[%s/%d](", e.Shape, len(e.FieldNames))
		writeExpr(sb, e.Arg)
		sb.WriteByte(')')
	case ExprMatch:
		sb.WriteString("match ")
		writeExpr(sb, e.Subject)
		sb.WriteString(" { ")
		for i, arm := range e.Arms {
			if i > 0 {
				sb.WriteString(", ")
			}
			writePat(sb, arm.Pat)
			sb.WriteString(" => ")
			writeExpr(sb, arm.Body)
		}
		sb.WriteString(" }")
	}
}

func writeList(sb *strings.Builder, elems []*Expr) {
	for i, e := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, e)
	}
}

func writePat(sb *strings.Builder, p *Pat) {
	if p == nil {
		sb.WriteString("<nil>")
		return
	}
	switch p.Kind {
	case PatWildcard:
		sb.WriteByte('_')
	case PatBind:
		sb.WriteString(p.Name)
	case PatLit:
		sb.WriteString(p.Lit.String())
	case PatTuple:
		sb.WriteString("mktuple(")
		for i, el := range p.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			writePat(sb, el)
		}
		sb.WriteByte(')')
	}
}

// String renders a literal the way the surface language spells it.
func (l Lit) String() string {
	switch l.Kind {
	case LitInt:
		return strconv.FormatInt(l.Int, 10)
	case LitFloat:
		return formatFloat(l.Float)
	case LitString:
		return strconv.Quote(l.Str)
	case LitBool:
		if l.Bool {
			return "true"
		}
		return "false"
	case LitNothing:
		return "nothing"
	}
	return "<lit?>"
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// Keep floats visually distinct from ints.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
