package ast

import "github.com/golangee/oxide/types"

// Expr is any expression node (§4.2). Its type is set through SetType by
// the resolver (§4.3) and read through Type by the evaluator so the tree
// only needs one checking pass.
type Expr interface {
	Node
	exprNode()
	Type() types.Type
	SetType(types.Type)
}

type ExprBase struct {
	Span
	typ types.Type
}

func (e *ExprBase) exprNode()            {}
func (e *ExprBase) Type() types.Type     { return e.typ }
func (e *ExprBase) SetType(t types.Type) { e.typ = t }

// NilLit, BoolLit, IntLit, FloatLit, StringLit are literal expressions.
type NilLit struct{ ExprBase }

type BoolLit struct {
	ExprBase
	Value bool
}

type IntLit struct {
	ExprBase
	Value int64
}

type FloatLit struct {
	ExprBase
	Value float64
}

type StringLit struct {
	ExprBase
	Value string
}

// IdentExpr references a binding by name; the resolver fills in
// whatever binding-specific metadata eval needs to find it quickly.
type IdentExpr struct {
	ExprBase
	Name string
}

// GroupExpr is a parenthesized expression `( e )`; kept as a distinct
// node so the pretty-printer can round-trip parentheses faithfully.
type GroupExpr struct {
	ExprBase
	Inner Expr
}

type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
)

type UnaryExpr struct {
	ExprBase
	Op      UnaryOp
	Operand Expr
}

type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNotEq
	BinLt
	BinGt
	BinLtEq
	BinGtEq
	BinAnd
	BinOr
)

type BinaryExpr struct {
	ExprBase
	Op          BinaryOp
	Left, Right Expr
}

// AssignExpr covers both `=` and the compound `op=` forms; Op is nil
// for plain assignment.
type AssignExpr struct {
	ExprBase
	Target Expr // Ident, FieldExpr, or IndexExpr (§4.2 assignment-target constraint)
	Op     *BinaryOp
	Value  Expr
}

type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

type IndexExpr struct {
	ExprBase
	Receiver Expr
	Index    Expr
}

type FieldExpr struct {
	ExprBase
	Receiver Expr
	Name     string
}

// PathExpr is a single `Name::item` access (enum variant or struct
// static member access); a chained path such as `A::B::c` is not parsed.
type PathExpr struct {
	ExprBase
	Type Ident
	Item string
}

// SelfExpr is the identifier `self` inside an instance method body.
type SelfExpr struct{ ExprBase }

type StructFieldInit struct {
	Name  string
	Value Expr
}

// StructLitExpr is `Name { field: e, ... }`.
type StructLitExpr struct {
	ExprBase
	Type   Ident
	Fields []StructFieldInit
}

// VecLitExpr is `vec[e, ...]` or `vec<T>[e, ...]`.
type VecLitExpr struct {
	ExprBase
	ElemType *TypeExpr // nil when the element type is inferred
	Elements []Expr
}

// Param is one parameter of a function or lambda signature.
type Param struct {
	Name string
	Type *TypeExpr // nil for the implicit `self` receiver parameter
	Mut  bool
}

// LambdaExpr is `fn (params) [-> T] block`.
type LambdaExpr struct {
	ExprBase
	Params []Param
	Ret    *TypeExpr // nil means -> nil
	Body   *BlockStmt
	// ResolvedParams/ResolvedRet mirror FunctionDecl's — filled in by
	// the checker for eval's runtime parameter/return type checks.
	ResolvedParams []types.Param
	ResolvedRet    types.Type
}

// MatchArm is one `pattern => expression` arm.
type MatchArm struct {
	Pattern Expr
	Result  Expr
}

// MatchExpr is `match scrutinee { arm, ... }` (§4.2).
type MatchExpr struct {
	ExprBase
	Scrutinee Expr
	Arms      []MatchArm
}
