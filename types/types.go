// Package types implements the static type universe of §3: primitive
// scalars, any, fn, vec<T>, struct types, and enum types, along with
// nominal/structural equality and the Assignable rule from the
// GLOSSARY.
//
// Grounded on the Environment/Type shape used by
// other_examples/nooga-paserati's pkg/checker and
// other_examples/CWBudde-go-dws's internal/types kind constants; the
// teacher's own types/resolved.go (a Workspace/Module pair describing
// TADL's multi-file module resolution) has nothing to carry over since
// the Language is a single compilation unit (§4.3).
package types

import "fmt"

// Kind identifies which case of the type universe a Type is.
type Kind int

const (
	KNil Kind = iota
	KBool
	KInt
	KFloat
	KStr
	KNum // union of int/float, signatures and local declarations only
	KAny
	KFn
	KVec
	KStruct
	KEnum
	KUninit
)

// Type is the static type of an expression or a cell's declared type.
type Type struct {
	Kind Kind
	// Elem is the element type, set only when Kind == KVec.
	Elem *Type
	// Name is the struct/enum name, set only when Kind == KStruct or KEnum.
	Name string
	// Struct/Enum point at the declaration's registered shape. Filled
	// in by the resolver's global pass so later lookups are O(1).
	Struct *StructType
	Enum   *EnumType
}

var (
	Nil    = Type{Kind: KNil}
	Bool   = Type{Kind: KBool}
	Int    = Type{Kind: KInt}
	Float  = Type{Kind: KFloat}
	Str    = Type{Kind: KStr}
	Num    = Type{Kind: KNum}
	Any    = Type{Kind: KAny}
	Fn     = Type{Kind: KFn}
	Uninit = Type{Kind: KUninit}
)

// Vec builds vec<elem>. VecAny is vec<any>, the type of a bare `vec`.
func Vec(elem Type) Type {
	e := elem
	return Type{Kind: KVec, Elem: &e}
}

var VecAny = Vec(Any)

func Struct(s *StructType) Type {
	return Type{Kind: KStruct, Name: s.Name, Struct: s}
}

func Enum(e *EnumType) Type {
	return Type{Kind: KEnum, Name: e.Name, Enum: e}
}

// Visibility of a struct field, method, or associated constant.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// FieldSpec is one field of a struct declaration.
type FieldSpec struct {
	Name string
	Type Type
	Vis  Visibility
}

// MethodSpec is one method of a struct's impl block. Static methods
// have IsStatic == true and no receiver; instance methods' first
// parameter is always `self`, represented implicitly (not part of
// Params).
type MethodSpec struct {
	Name     string
	Vis      Visibility
	IsStatic bool
	Params   []Param
	Ret      Type
}

type Param struct {
	Name string
	Type Type
	Mut  bool
}

// ConstSpec is one associated constant of a struct's impl block.
type ConstSpec struct {
	Name string
	Vis  Visibility
	Type Type
}

// StructType is the registered shape of a struct declaration (§3).
type StructType struct {
	Name    string
	Fields  []FieldSpec
	Methods []MethodSpec
	Consts  []ConstSpec
}

func (s *StructType) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return FieldSpec{}, false
}

func (s *StructType) Method(name string) (MethodSpec, bool) {
	for _, m := range s.Methods {
		if m.Name == name {
			return m, true
		}
	}

	return MethodSpec{}, false
}

func (s *StructType) Const(name string) (ConstSpec, bool) {
	for _, c := range s.Consts {
		if c.Name == name {
			return c, true
		}
	}

	return ConstSpec{}, false
}

// EnumType is the registered shape of an enum declaration (§3).
type EnumType struct {
	Name     string
	Variants []string
}

func (e *EnumType) Index(variant string) (int, bool) {
	for i, v := range e.Variants {
		if v == variant {
			return i, true
		}
	}

	return 0, false
}

// Equal implements nominal equality for structs/enums, structural
// equality for vec<T> (by element type), and by-kind equality for
// scalars (§3).
func Equal(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KVec:
		return Equal(*a.Elem, *b.Elem)
	case KStruct, KEnum:
		return a.Name == b.Name
	default:
		return true
	}
}

// Assignable reports whether a value of type from may be stored into a
// cell declared with type to, per the GLOSSARY definition: exact match,
// `to` is any, or `to` is num and `from` is int/float.
func Assignable(from, to Type) bool {
	if to.Kind == KAny {
		return true
	}

	if to.Kind == KNum && (from.Kind == KInt || from.Kind == KFloat) {
		return true
	}

	return Equal(from, to)
}

// String renders a type the way typeof() and error messages do (§6).
func (t Type) String() string {
	switch t.Kind {
	case KNil:
		return "nil"
	case KBool:
		return "bool"
	case KInt:
		return "int"
	case KFloat:
		return "float"
	case KStr:
		return "str"
	case KNum:
		return "num"
	case KAny:
		return "any"
	case KFn:
		return "fn"
	case KUninit:
		return "uninit"
	case KVec:
		if t.Elem == nil {
			return "vec<any>"
		}

		return fmt.Sprintf("vec<%s>", t.Elem.String())
	case KStruct, KEnum:
		return t.Name
	default:
		return "?"
	}
}
