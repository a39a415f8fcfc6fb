package eval

// Container is the fixed-arity positional backing of tuple values.
// It is immutable: updates produce a rebuilt container, never mutate.
type Container struct {
	elems []Value
}

// NewContainer takes ownership of vals.
func NewContainer(vals []Value) *Container {
	return &Container{elems: vals}
}

func (c *Container) Arity() int { return len(c.elems) }

func (c *Container) Get(i int) Value { return c.elems[i] }

// WithReplaced returns a copy with position i set to v.
func (c *Container) WithReplaced(i int, v Value) *Container {
	out := make([]Value, len(c.elems))
	copy(out, c.elems)
	out[i] = v
	return &Container{elems: out}
}

// OrderedValues returns the elements in positional order. The slice is
// a copy, safe to retain.
func (c *Container) OrderedValues() []Value {
	out := make([]Value, len(c.elems))
	copy(out, c.elems)
	return out
}
