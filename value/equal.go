package value

import "fmt"

// Equal implements the equality relation of §4.4: scalars compare by
// value, nil equals nil, enum variants compare by (type, variant)
// identity, and vector/struct handles compare by reference identity
// (aliasing makes reference identity and "same handle" coincide).
// Comparing values of different runtime kinds is an error — the
// resolver's type checking is what normally prevents this, so reaching
// it here signals a resolver gap rather than a user mistake.
func Equal(a, b Value) (bool, error) {
	if a.Kind() != b.Kind() {
		return false, fmt.Errorf("cannot compare %s with %s", KindName(a.Kind()), KindName(b.Kind()))
	}

	switch av := a.(type) {
	case Nil:
		return true, nil
	case Bool:
		return av == b.(Bool), nil
	case Int:
		return av == b.(Int), nil
	case Float:
		return av == b.(Float), nil
	case Str:
		return av == b.(Str), nil
	case UninitValue:
		return true, nil
	case *Vec:
		return av == b.(*Vec), nil
	case *Struct:
		return av == b.(*Struct), nil
	case Enum:
		bv := b.(Enum)
		return av.Type == bv.Type && av.Variant == bv.Variant, nil
	default:
		// Callable: identity compare via the Go interface value itself.
		return a == b, nil
	}
}
