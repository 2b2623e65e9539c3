// Package value implements the runtime value model of §3: a tagged
// union of nil, bool, int, float, str, vector handle, struct instance
// handle, enum variant, and callable, plus the distinguished uninit
// sentinel.
//
// Grounded on other_examples' CWBudde-go-dws internal/interp value
// model (a Value interface with one concrete Go type per runtime
// kind, e.g. IntegerValue/StringValue/NilValue) rather than a single
// struct with an embedded type tag — the teacher has no runtime value
// model to carry over (TADL only ever produces an AST, never executes
// one).
package value

import "github.com/golangee/oxide/types"

// Kind is the runtime tag of a Value, returned by typeof (§6) after
// translation to its source-level name.
type Kind int

const (
	KNil Kind = iota
	KBool
	KInt
	KFloat
	KStr
	KVec
	KStruct
	KEnum
	KFn
	KUninit
)

// Value is any runtime value of the Language (§3).
type Value interface {
	Kind() Kind
}

// Nil is the single value of the nil type.
type Nil struct{}

func (Nil) Kind() Kind { return KNil }

// Bool, Int, Float, Str are the scalar value kinds; scalars are
// value-copied on assignment and parameter passing (§4.4).
type Bool bool

func (Bool) Kind() Kind { return KBool }

type Int int64

func (Int) Kind() Kind { return KInt }

type Float float64

func (Float) Kind() Kind { return KFloat }

type Str string

func (Str) Kind() Kind { return KStr }

// UninitValue is the sentinel returned by an out-of-range vector read
// (§3). It is observable only through equality and typeof.
type UninitValue struct{}

func (UninitValue) Kind() Kind { return KUninit }

// Uninit is the single instance of UninitValue.
var Uninit = UninitValue{}

// Callable is implemented by the eval package's user-function closure
// and by built-in host functions (§6); kept here only as the marker
// every callable Value satisfies so other packages (builtin, fmtsrc)
// can recognize a callable without importing eval.
type Callable interface {
	Value
	CallableKind() Kind // always KFn; lets Value switches stay exhaustive
}

// StructType/EnumType describe a struct/enum's registered static
// shape; runtime instances point back at these (types.StructType,
// types.EnumType) so a Struct/Enum value's type is recoverable without
// carrying a parallel copy of field/variant names.
type StructType = types.StructType
type EnumType = types.EnumType
