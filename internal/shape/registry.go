package shape

import (
	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/source"
)

// Registry maps shape names to descriptors for one program. Private shapes
// are reachable only from their defining file; public ones from anywhere.
type Registry struct {
	byName map[source.StringID]*Shape
	order  []*Shape
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[source.StringID]*Shape),
	}
}

// Add registers a shape. Reports false when the name is already taken;
// the earlier definition stays in force.
func (r *Registry) Add(s *Shape) bool {
	if _, exists := r.byName[s.Name]; exists {
		return false
	}
	r.byName[s.Name] = s
	r.order = append(r.order, s)
	return true
}

// Lookup resolves name from the viewpoint of file. A private shape
// defined elsewhere is invisible, not an error distinct from "unknown".
func (r *Registry) Lookup(name source.StringID, from source.FileID) (*Shape, bool) {
	s, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	if s.Vis != ast.VisPublic && s.File != from {
		return nil, false
	}
	return s, true
}

// Get resolves name ignoring visibility. Used by tooling output.
func (r *Registry) Get(name source.StringID) (*Shape, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// All returns every registered shape in definition order.
func (r *Registry) All() []*Shape {
	return r.order
}
