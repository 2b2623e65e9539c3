package ast

import "github.com/golangee/oxide/types"

type DeclBase struct{ Span }

func (DeclBase) declNode() {}

// FunctionDecl is a top-level `fn name(params) [-> T] { body }`.
type FunctionDecl struct {
	DeclBase
	Name   string
	Params []Param
	Ret    *TypeExpr
	Body   *BlockStmt
	// ResolvedParams/ResolvedRet are filled in by the checker so eval
	// can perform the runtime parameter/return type checks of §4.4
	// without re-resolving TypeExprs on every call.
	ResolvedParams []types.Param
	ResolvedRet    types.Type
}

// FieldDecl is one field of a struct declaration.
type FieldDecl struct {
	Name string
	Type TypeExpr
	Vis  types.Visibility
}

// MethodDecl is one method inside an impl block. IsStatic is true when
// there is no `self` parameter.
type MethodDecl struct {
	Name     string
	Vis      types.Visibility
	IsStatic bool
	Params   []Param // excludes the implicit self receiver
	Ret      *TypeExpr
	Body     *BlockStmt
}

// ImplDecl is the `impl StructName { ... }` block paired with a
// StructDecl by name during the resolver's global pass (§4.3).
type ImplDecl struct {
	DeclBase
	StructName string
	Methods    []MethodDecl
	Consts     []ConstStmt
}

// StructDecl is `struct Name { field, ... }`, with at most one impl,
// attached after the global pass resolves it.
type StructDecl struct {
	DeclBase
	Name   string
	Fields []FieldDecl
	Impl   *ImplDecl // nil if no impl block was declared
	// Resolved is the registered shape built by the resolver's global
	// pass; nil until resolution runs.
	Resolved *types.StructType
}

// EnumDecl is `enum Name { Variant, ... }`.
type EnumDecl struct {
	DeclBase
	Name     string
	Variants []string
	// Resolved is filled in by the resolver's global pass.
	Resolved *types.EnumType
}

// TopConstDecl is a top-level `const NAME = e;`.
type TopConstDecl struct {
	DeclBase
	Name         string
	Value        Expr
	ResolvedType types.Type
}
