package ast

import "github.com/golangee/oxide/types"

// Stmt is any statement node (§4.2).
type Stmt interface {
	Node
	stmtNode()
}

type StmtBase struct{ Span }

func (StmtBase) stmtNode() {}

// BlockStmt is `{ s* }`.
type BlockStmt struct {
	StmtBase
	Stmts []Stmt
}

// ExprStmt is an expression used as a statement, terminated by `;`.
type ExprStmt struct {
	StmtBase
	X Expr
}

// LetStmt is `let [mut] name [: T] [= e];`.
type LetStmt struct {
	StmtBase
	Name string
	Mut  bool
	Type *TypeExpr // nil when inferred from Value
	// ResolvedType is filled in by the resolver: the cell's declared
	// type, whether it came from Type or was inferred from Value.
	ResolvedType types.Type
	Value        Expr // nil when only Type is given
}

// ConstStmt is `const NAME = e;`, valid at statement or impl position.
type ConstStmt struct {
	StmtBase
	Name         string
	Value        Expr
	Vis          types.Visibility
	ResolvedType types.Type
}

// ReturnStmt is `return [e];`.
type ReturnStmt struct {
	StmtBase
	Value Expr // nil for bare `return;`
}

type BreakStmt struct{ StmtBase }
type ContinueStmt struct{ StmtBase }

// IfStmt is `if cond body`, optionally chained with `else if` / `else`.
type IfStmt struct {
	StmtBase
	Cond   Expr
	Then   *BlockStmt
	ElseIf *IfStmt    // non-nil for `else if`
	Else   *BlockStmt // non-nil for a trailing `else`
}

type WhileStmt struct {
	StmtBase
	Cond Expr
	Body *BlockStmt
}

type LoopStmt struct {
	StmtBase
	Body *BlockStmt
}

// ForStmt is `for init? ; cond? ; step? body`. Any of Init/Cond/Step may
// be nil (§4.4: an omitted Cond means true).
type ForStmt struct {
	StmtBase
	Init Stmt // a LetStmt or ExprStmt, or nil
	Cond Expr // nil means true
	Step Expr // nil means no-op
	Body *BlockStmt
}

// DeclStmt wraps a function/struct/enum/impl declaration appearing in
// statement position (§4.2 lists these as statement forms, so nested
// blocks may declare them, not only the top-level file).
type DeclStmt struct {
	StmtBase
	Decl Decl
}
