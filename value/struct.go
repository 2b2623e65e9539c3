package value

import "github.com/golangee/oxide/types"

// Struct is the runtime handle backing a struct instance. Like Vec,
// struct instances are aliased on assignment and parameter passing
// (§4.4).
type Struct struct {
	Type   *types.StructType
	Fields map[string]Value
}

func NewStruct(typ *types.StructType, fields map[string]Value) *Struct {
	return &Struct{Type: typ, Fields: fields}
}

func (*Struct) Kind() Kind { return KStruct }

func (s *Struct) Get(name string) (Value, bool) {
	v, ok := s.Fields[name]
	return v, ok
}

func (s *Struct) Set(name string, val Value) {
	s.Fields[name] = val
}
