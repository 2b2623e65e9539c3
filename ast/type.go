package ast

// TypeExpr is a type as written in source: a bare name (`int`, `str`,
// `MyStruct`, `Self`), `any`, `fn`, `num`, or `vec`/`vec<T>` (§3).
type TypeExpr struct {
	Span
	// Name is the scalar/struct/enum/any/fn/num/Self name, or "vec".
	Name string
	// Elem is non-nil only when Name == "vec" and an explicit element
	// type was given (`vec<T>`); nil means vec<any>.
	Elem *TypeExpr
}
