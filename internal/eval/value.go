// Package eval executes lowered core programs. It is the only runtime
// layer of the toolchain: everything name-shaped was resolved to positions
// during expansion, so evaluation never consults field names except inside
// deferred container-to-association-list conversions.
package eval

import (
	"strconv"
	"strings"

	"github.com/wrachwal/deftuple/internal/core"
)

type Kind uint8

const (
	KindNothing Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindTuple
	KindAssoc
)

func (k Kind) String() string {
	switch k {
	case KindNothing:
		return "nothing"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTuple:
		return "tuple"
	case KindAssoc:
		return "assoc"
	}
	return "?"
}

// Value is a runtime value. The zero Value is nothing.
type Value struct {
	kind  Kind
	i     int64
	f     float64
	s     string
	b     bool
	tup   *Container
	assoc *AssocList
}

func Nothing() Value          { return Value{kind: KindNothing} }
func Int(v int64) Value       { return Value{kind: KindInt, i: v} }
func Float(v float64) Value   { return Value{kind: KindFloat, f: v} }
func Str(v string) Value      { return Value{kind: KindString, s: v} }
func Bool(v bool) Value       { return Value{kind: KindBool, b: v} }
func Tuple(c *Container) Value {
	return Value{kind: KindTuple, tup: c}
}
func Assoc(a *AssocList) Value {
	return Value{kind: KindAssoc, assoc: a}
}

func (v Value) Kind() Kind { return v.kind }

// AsTuple returns the container payload, or nil for non-tuples.
func (v Value) AsTuple() *Container {
	if v.kind != KindTuple {
		return nil
	}
	return v.tup
}

// AsAssoc returns the association-list payload, or nil otherwise.
func (v Value) AsAssoc() *AssocList {
	if v.kind != KindAssoc {
		return nil
	}
	return v.assoc
}

// Equal is strict structural equality; int and float never compare equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNothing:
		return true
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindBool:
		return v.b == o.b
	case KindTuple:
		if v.tup.Arity() != o.tup.Arity() {
			return false
		}
		for i := 0; i < v.tup.Arity(); i++ {
			if !v.tup.Get(i).Equal(o.tup.Get(i)) {
				return false
			}
		}
		return true
	case KindAssoc:
		if len(v.assoc.Pairs) != len(o.assoc.Pairs) {
			return false
		}
		for i := range v.assoc.Pairs {
			if v.assoc.Pairs[i].Key != o.assoc.Pairs[i].Key {
				return false
			}
			if !v.assoc.Pairs[i].Value.Equal(o.assoc.Pairs[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value the way the surface language spells it.
// Shape-mismatch diagnostics embed this rendering verbatim.
func (v Value) String() string {
	switch v.kind {
	case KindNothing:
		return "nothing"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case KindString:
		return strconv.Quote(v.s)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTuple:
		var sb strings.Builder
		sb.WriteByte('(')
		for i := 0; i < v.tup.Arity(); i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(v.tup.Get(i).String())
		}
		sb.WriteByte(')')
		return sb.String()
	case KindAssoc:
		var sb strings.Builder
		sb.WriteByte('{')
		for i, p := range v.assoc.Pairs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Key)
			sb.WriteString(": ")
			sb.WriteString(p.Value.String())
		}
		sb.WriteByte('}')
		return sb.String()
	}
	return "<value?>"
}

// litValue turns a lowered literal into a runtime value.
func litValue(l core.Lit) Value {
	switch l.Kind {
	case core.LitInt:
		return Int(l.Int)
	case core.LitFloat:
		return Float(l.Float)
	case core.LitString:
		return Str(l.Str)
	case core.LitBool:
		return Bool(l.Bool)
	default:
		return Nothing()
	}
}

// AssocPair is one (field name, value) pair.
type AssocPair struct {
	Key   string
	Value Value
}

// AssocList is an ordered (field name, value) sequence.
type AssocList struct {
	Pairs []AssocPair
}
