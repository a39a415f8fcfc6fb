package ast

type Arena[T any] struct {
	data []T
}

// NewArena creates an arena whose backing slice is preallocated to capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores value and returns its 1-based index; 0 stays "no value".
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage read-only.
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
