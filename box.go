package span

import "encoding/json"

// Box exclusively owns a single node on the heap.  It is the indirection
// needed to build recursive trees, e.g., an expression holding its
// operands.  Its position is that of the node it holds.
//
// A Box must be made with NewBox.  When T is a concrete type with value
// receivers, *T is a Node as well, so a plain pointer serves the same
// purpose; Box also works when T is an interface.
type Box[T Node] struct {
	ptr *T
}

func NewBox[T Node](v T) Box[T] {
	return Box[T]{&v}
}

// Get returns a copy of the boxed node.
func (b Box[T]) Get() T { return *b.ptr }

// Ptr returns the boxed node itself.
func (b Box[T]) Ptr() *T { return b.ptr }

// Pos and End panic on the zero Box, which holds no node.
func (b Box[T]) Pos() int { return (*b.ptr).Pos() }
func (b Box[T]) End() int { return (*b.ptr).End() }

// MarshalJSON encodes the boxed node as if it were not boxed.  The zero Box
// encodes as null.
func (b Box[T]) MarshalJSON() ([]byte, error) {
	if b.ptr == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*b.ptr)
}

// UnmarshalJSON decodes a node into a new box.  T must be a concrete type.
// A null leaves the zero Box.
func (b *Box[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		b.ptr = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	b.ptr = &v
	return nil
}
