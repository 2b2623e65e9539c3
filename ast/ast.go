// Package ast defines the syntax tree produced by the parser (§4.2) and
// decorated in place by the resolver (§4.3): every expression node
// carries a resolved type (ExprBase's Type/SetType) that holds the zero
// types.Type until type checking fills it in.
//
// Grounded on the teacher's ast package shape (one file per construct
// family, Begin()/End() position accessors on every node) rather than
// its content — TADL's ast is a markup grammar with no expressions or
// types to carry over.
package ast

import "github.com/golangee/oxide/token"

// Node is implemented by every syntax tree node.
type Node interface {
	Begin() token.Pos
	End() token.Pos
}

type Span struct {
	begin, end token.Pos
}

func (s Span) Begin() token.Pos { return s.begin }
func (s Span) End() token.Pos   { return s.end }

func NewSpan(begin, end token.Pos) Span {
	return Span{begin, end}
}

// File is the root of a parsed compilation unit: a flat list of
// top-level items in source order (§3 "Declarations"). A file is not
// restricted to declarations — the concrete end-to-end scenarios (§8)
// run bare statements directly at file scope, the same way the REPL
// accepts "either a declaration or an expression/statement" per line
// (§4.4 "REPL contract"); Items is that unified sequence, each element
// a Decl or a Stmt.
type File struct {
	Span
	Items []Node
}

// Decl is any top-level declaration: FunctionDecl, StructDecl, EnumDecl,
// ImplDecl, or TopConstDecl.
type Decl interface {
	Node
	declNode()
}

// Ident is a bare identifier reference, used both as an expression and
// as a name inside declarations/patterns.
type Ident struct {
	Span
	Name string
}
