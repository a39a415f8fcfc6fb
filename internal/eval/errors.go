package eval

import "fmt"

// ShapeMismatchError reports a deferred conversion whose runtime argument
// was not a container of the declared arity.
type ShapeMismatchError struct {
	Shape    string
	Expected int
	Actual   Value
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("expected argument to be a %s tuple of size %d, got: %s",
		e.Shape, e.Expected, e.Actual)
}

// NoMatchError reports a match whose subject matched no arm.
type NoMatchError struct {
	Subject Value
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no match arm for value: %s", e.Subject)
}

// OpError reports a positional primitive applied to a value of the
// wrong kind, e.g. a field read on a non-tuple.
type OpError struct {
	Op     string
	Actual Value
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: expected a tuple, got: %s", e.Op, e.Actual)
}

// UnboundError reports a reference to a name no let has bound.
type UnboundError struct {
	Name string
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("unbound name `%s`", e.Name)
}
