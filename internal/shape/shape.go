// Package shape holds the canonical descriptor of a tuple definition:
// the ordered (field, default) sequence every generated operation is
// resolved against.
package shape

import (
	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/source"
)

// Field is one (name, default) pair of a shape. Default is NoExprID when
// the definition gave none; construction then falls back to nothing.
type Field struct {
	Name     source.StringID
	NameSpan source.Span
	Default  ast.ExprID
}

// Shape is the immutable descriptor built once per tuple definition.
// Field order is definition order and never changes; arity is frozen.
type Shape struct {
	Name     source.StringID
	NameSpan source.Span
	Vis      ast.Visibility
	File     source.FileID // defining file; bounds private visibility
	Fields   []Field
}

// Arity returns the number of fields.
func (s *Shape) Arity() int {
	return len(s.Fields)
}

// Resolve returns the zero-based position of name. Every field-name lookup
// in the system funnels through here, so first-definition-wins holds
// everywhere by construction.
func (s *Shape) Resolve(name source.StringID) (int, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// FieldNames returns the names in definition order.
func (s *Shape) FieldNames() []source.StringID {
	names := make([]source.StringID, len(s.Fields))
	for i := range s.Fields {
		names[i] = s.Fields[i].Name
	}
	return names
}
