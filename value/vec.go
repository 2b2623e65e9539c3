package value

import (
	"fmt"

	"github.com/golangee/oxide/types"
)

// Vec is the runtime handle backing a vector value. Vectors are
// aliased on assignment and parameter passing (§4.4): copying a *Vec
// copies the pointer, not the backing slice.
type Vec struct {
	ElemType types.Type
	elems    []Value
}

func NewVec(elemType types.Type, elems []Value) *Vec {
	return &Vec{ElemType: elemType, elems: elems}
}

func (*Vec) Kind() Kind { return KVec }

func (v *Vec) Len() int { return len(v.elems) }

// Get returns the element at i, or Uninit if i is out of range (§3,
// §4.4: "reading a vector out of bounds yields uninit rather than an
// error").
func (v *Vec) Get(i int) Value {
	if i < 0 || i >= len(v.elems) {
		return Uninit
	}

	return v.elems[i]
}

// Set writes val at i, reporting an error if i is out of range (§4.4:
// writing out of bounds is an error, unlike reading).
func (v *Vec) Set(i int, val Value) error {
	if i < 0 || i >= len(v.elems) {
		return &IndexError{Index: i, Len: len(v.elems)}
	}

	v.elems[i] = val

	return nil
}

func (v *Vec) Push(val Value) {
	v.elems = append(v.elems, val)
}

// Pop removes and returns the last element; popping an empty vector is
// a runtime error (§4.4: "pop() removes and returns the last element,
// error if empty"), unlike an out-of-range indexed read.
func (v *Vec) Pop() (Value, error) {
	if len(v.elems) == 0 {
		return nil, fmt.Errorf("pop on empty vector")
	}

	last := v.elems[len(v.elems)-1]
	v.elems = v.elems[:len(v.elems)-1]

	return last, nil
}

func (v *Vec) Elems() []Value { return v.elems }

// IndexError reports an out-of-range vector write.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return "index out of range"
}
