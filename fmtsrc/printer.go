// Package fmtsrc serializes an annotated tree back to Language source
// text, re-lexable by the same parser (§8 round-trip/idempotence
// property). It exists purely to make that property mechanically
// checkable in a unit test.
//
// Grounded on the teacher's encoder package: a bufio.Writer-backed
// serializer tracking an indent level, retargeted here from XML
// emission to a direct recursive walk over the Language's AST (the
// teacher's visitor-driven event stream has nothing to dispatch
// against — this package already holds a complete tree, so it walks
// it directly instead of replaying parser events).
package fmtsrc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/types"
)

// Printer writes Language source text to an underlying io.Writer,
// indenting nested blocks one level (four spaces) per depth, the same
// shape as the teacher's XMLEncoder tracking its own `indent uint`.
type Printer struct {
	w      *bufio.Writer
	indent uint
	err    error
}

// New wraps w in a Printer.
func New(w io.Writer) *Printer {
	return &Printer{w: bufio.NewWriter(w)}
}

// Print renders file to w and flushes the buffer.
func Print(w io.Writer, file *ast.File) error {
	p := New(w)
	p.printFile(file)

	if p.err != nil {
		return p.err
	}

	return p.w.Flush()
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}

	_, p.err = p.w.WriteString(s)
}

func (p *Printer) writeIndent() {
	p.write(strings.Repeat("    ", int(p.indent)))
}

func (p *Printer) printFile(f *ast.File) {
	for i, item := range f.Items {
		if i > 0 {
			p.write("\n")
		}

		p.printItem(item)
	}
}

func (p *Printer) printItem(item ast.Node) {
	switch it := item.(type) {
	case *ast.FunctionDecl:
		p.printFunctionDecl(it)
	case *ast.StructDecl:
		p.printStructDecl(it)
	case *ast.EnumDecl:
		p.printEnumDecl(it)
	case *ast.TopConstDecl:
		p.printTopConst(it)
	case *ast.ImplDecl:
		p.printImplDecl(it)
	case ast.Stmt:
		p.printStmt(it)
	default:
		p.err = fmt.Errorf("fmtsrc: unhandled top-level item %T", item)
	}
}

func (p *Printer) printFunctionDecl(fn *ast.FunctionDecl) {
	p.writeIndent()
	p.write("fn ")
	p.write(fn.Name)
	p.printParams(fn.Params)

	if fn.Ret != nil {
		p.write(" -> ")
		p.printType(fn.Ret)
	}

	p.write(" ")
	p.printBlock(fn.Body)
	p.write("\n")
}

func (p *Printer) printParams(params []ast.Param) {
	p.write("(")

	for i, prm := range params {
		if i > 0 {
			p.write(", ")
		}

		if prm.Type == nil {
			p.write("self")
			continue
		}

		if prm.Mut {
			p.write("mut ")
		}

		p.write(prm.Name)
		p.write(": ")
		p.printType(prm.Type)
	}

	p.write(")")
}

func (p *Printer) printType(t *ast.TypeExpr) {
	p.write(t.Name)

	if t.Name == "vec" && t.Elem != nil {
		p.write("<")
		p.printType(t.Elem)
		p.write(">")
	}
}

func (p *Printer) printStructDecl(sd *ast.StructDecl) {
	p.writeIndent()
	p.write("struct ")
	p.write(sd.Name)
	p.write(" {\n")

	p.indent++

	for _, f := range sd.Fields {
		p.writeIndent()

		if f.Vis == types.Public {
			p.write("pub ")
		}

		p.write(f.Name)
		p.write(": ")
		p.printType(&f.Type)
		p.write(",\n")
	}

	p.indent--
	p.writeIndent()
	p.write("}\n")
}

func (p *Printer) printImplDecl(impl *ast.ImplDecl) {
	p.writeIndent()
	p.write("impl ")
	p.write(impl.StructName)
	p.write(" {\n")

	p.indent++

	for i := range impl.Consts {
		p.printConstStmt(&impl.Consts[i])
	}

	for i := range impl.Methods {
		p.printMethodDecl(&impl.Methods[i])
	}

	p.indent--
	p.writeIndent()
	p.write("}\n")
}

func (p *Printer) printMethodDecl(m *ast.MethodDecl) {
	p.writeIndent()

	if m.Vis == types.Public {
		p.write("pub ")
	}

	p.write("fn ")
	p.write(m.Name)

	if m.IsStatic {
		p.printParams(m.Params)
	} else {
		self := ast.Param{Type: nil}
		p.printParams(append([]ast.Param{self}, m.Params...))
	}

	if m.Ret != nil {
		p.write(" -> ")
		p.printType(m.Ret)
	}

	p.write(" ")
	p.printBlock(m.Body)
	p.write("\n")
}

func (p *Printer) printEnumDecl(ed *ast.EnumDecl) {
	p.writeIndent()
	p.write("enum ")
	p.write(ed.Name)
	p.write(" { ")
	p.write(strings.Join(ed.Variants, ", "))
	p.write(" }\n")
}

func (p *Printer) printTopConst(cd *ast.TopConstDecl) {
	p.writeIndent()
	p.write("const ")
	p.write(cd.Name)
	p.write(" = ")
	p.printExpr(cd.Value)
	p.write(";\n")
}

func (p *Printer) printConstStmt(cs *ast.ConstStmt) {
	p.writeIndent()

	if cs.Vis == types.Public {
		p.write("pub ")
	}

	p.write("const ")
	p.write(cs.Name)
	p.write(" = ")
	p.printExpr(cs.Value)
	p.write(";\n")
}

func (p *Printer) printBlock(b *ast.BlockStmt) {
	p.write("{\n")
	p.indent++

	for _, s := range b.Stmts {
		p.printStmt(s)
	}

	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) printStmt(s ast.Stmt) { //nolint:gocyclo
	switch st := s.(type) {
	case *ast.BlockStmt:
		p.writeIndent()
		p.printBlock(st)
		p.write("\n")
	case *ast.ExprStmt:
		p.writeIndent()
		p.printExpr(st.X)
		p.write(";\n")
	case *ast.LetStmt:
		p.writeIndent()
		p.write("let ")

		if st.Mut {
			p.write("mut ")
		}

		p.write(st.Name)

		if st.Type != nil {
			p.write(": ")
			p.printType(st.Type)
		}

		if st.Value != nil {
			p.write(" = ")
			p.printExpr(st.Value)
		}

		p.write(";\n")
	case *ast.ConstStmt:
		p.printConstStmt(st)
	case *ast.ReturnStmt:
		p.writeIndent()
		p.write("return")

		if st.Value != nil {
			p.write(" ")
			p.printExpr(st.Value)
		}

		p.write(";\n")
	case *ast.BreakStmt:
		p.writeIndent()
		p.write("break;\n")
	case *ast.ContinueStmt:
		p.writeIndent()
		p.write("continue;\n")
	case *ast.IfStmt:
		p.printIf(st, true)
	case *ast.WhileStmt:
		p.writeIndent()
		p.write("while ")
		p.printExpr(st.Cond)
		p.write(" ")
		p.printBlock(st.Body)
		p.write("\n")
	case *ast.LoopStmt:
		p.writeIndent()
		p.write("loop ")
		p.printBlock(st.Body)
		p.write("\n")
	case *ast.ForStmt:
		p.printFor(st)
	case *ast.DeclStmt:
		p.printItem(st.Decl)
	default:
		p.err = fmt.Errorf("fmtsrc: unhandled statement %T", s)
	}
}

func (p *Printer) printIf(st *ast.IfStmt, topLevel bool) {
	if topLevel {
		p.writeIndent()
	}

	p.write("if ")
	p.printExpr(st.Cond)
	p.write(" ")
	p.printBlock(st.Then)

	if st.ElseIf != nil {
		p.write(" else ")
		p.printIf(st.ElseIf, false)
		return
	}

	if st.Else != nil {
		p.write(" else ")
		p.printBlock(st.Else)
	}

	if topLevel {
		p.write("\n")
	}
}

func (p *Printer) printFor(st *ast.ForStmt) {
	p.writeIndent()
	p.write("for ")

	if st.Init != nil {
		p.printForClauseStmt(st.Init)
	}

	p.write("; ")

	if st.Cond != nil {
		p.printExpr(st.Cond)
	}

	p.write("; ")

	if st.Step != nil {
		p.printExpr(st.Step)
	}

	p.write(" ")
	p.printBlock(st.Body)
	p.write("\n")
}

// printForClauseStmt renders a for-loop's init clause inline, without
// the trailing newline/indent a standalone statement gets.
func (p *Printer) printForClauseStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.LetStmt:
		p.write("let ")

		if st.Mut {
			p.write("mut ")
		}

		p.write(st.Name)

		if st.Type != nil {
			p.write(": ")
			p.printType(st.Type)
		}

		if st.Value != nil {
			p.write(" = ")
			p.printExpr(st.Value)
		}
	case *ast.ExprStmt:
		p.printExpr(st.X)
	default:
		p.err = fmt.Errorf("fmtsrc: unhandled for-clause statement %T", s)
	}
}

func (p *Printer) printExpr(e ast.Expr) { //nolint:gocyclo
	switch ex := e.(type) {
	case *ast.NilLit:
		p.write("nil")
	case *ast.BoolLit:
		p.write(fmt.Sprintf("%t", ex.Value))
	case *ast.IntLit:
		p.write(fmt.Sprintf("%d", ex.Value))
	case *ast.FloatLit:
		p.write(formatFloat(ex.Value))
	case *ast.StringLit:
		p.write(fmt.Sprintf("%q", ex.Value))
	case *ast.IdentExpr:
		p.write(ex.Name)
	case *ast.SelfExpr:
		p.write("self")
	case *ast.GroupExpr:
		p.write("(")
		p.printExpr(ex.Inner)
		p.write(")")
	case *ast.UnaryExpr:
		p.write(unaryOpStr(ex.Op))
		p.printExpr(ex.Operand)
	case *ast.BinaryExpr:
		p.printExpr(ex.Left)
		p.write(" ")
		p.write(binaryOpStr(ex.Op))
		p.write(" ")
		p.printExpr(ex.Right)
	case *ast.AssignExpr:
		p.printExpr(ex.Target)
		p.write(" ")

		if ex.Op != nil {
			p.write(binaryOpStr(*ex.Op))
		}

		p.write("= ")
		p.printExpr(ex.Value)
	case *ast.CallExpr:
		p.printExpr(ex.Callee)
		p.write("(")

		for i, a := range ex.Args {
			if i > 0 {
				p.write(", ")
			}

			p.printExpr(a)
		}

		p.write(")")
	case *ast.IndexExpr:
		p.printExpr(ex.Receiver)
		p.write("[")
		p.printExpr(ex.Index)
		p.write("]")
	case *ast.FieldExpr:
		p.printExpr(ex.Receiver)
		p.write(".")
		p.write(ex.Name)
	case *ast.PathExpr:
		p.write(ex.Type.Name)
		p.write("::")
		p.write(ex.Item)
	case *ast.StructLitExpr:
		p.write(ex.Type.Name)
		p.write(" { ")

		for i, fi := range ex.Fields {
			if i > 0 {
				p.write(", ")
			}

			p.write(fi.Name)
			p.write(": ")
			p.printExpr(fi.Value)
		}

		p.write(" }")
	case *ast.VecLitExpr:
		p.write("vec")

		if ex.ElemType != nil {
			p.write("<")
			p.printType(ex.ElemType)
			p.write(">")
		}

		p.write("[")

		for i, el := range ex.Elements {
			if i > 0 {
				p.write(", ")
			}

			p.printExpr(el)
		}

		p.write("]")
	case *ast.LambdaExpr:
		p.write("fn ")
		p.printParams(ex.Params)

		if ex.Ret != nil {
			p.write(" -> ")
			p.printType(ex.Ret)
		}

		p.write(" ")
		p.printBlock(ex.Body)
	case *ast.MatchExpr:
		p.write("match ")
		p.printExpr(ex.Scrutinee)
		p.write(" { ")

		for i, arm := range ex.Arms {
			if i > 0 {
				p.write(", ")
			}

			p.printExpr(arm.Pattern)
			p.write(" => ")
			p.printExpr(arm.Result)
		}

		p.write(" }")
	default:
		p.err = fmt.Errorf("fmtsrc: unhandled expression %T", e)
	}
}

// formatFloat mirrors value.StringOf's float rendering (§4.4 Open
// Question "float-to-string formatting precision"): at least one
// fractional digit and never exponential notation, so a literal
// round-trips through print/parse without losing its float-ness.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		return s + ".0"
	}

	return s
}

func unaryOpStr(op ast.UnaryOp) string {
	switch op {
	case ast.UnaryNeg:
		return "-"
	case ast.UnaryNot:
		return "!"
	default:
		return "?"
	}
}

func binaryOpStr(op ast.BinaryOp) string {
	switch op {
	case ast.BinAdd:
		return "+"
	case ast.BinSub:
		return "-"
	case ast.BinMul:
		return "*"
	case ast.BinDiv:
		return "/"
	case ast.BinMod:
		return "%"
	case ast.BinEq:
		return "=="
	case ast.BinNotEq:
		return "!="
	case ast.BinLt:
		return "<"
	case ast.BinGt:
		return ">"
	case ast.BinLtEq:
		return "<="
	case ast.BinGtEq:
		return ">="
	case ast.BinAnd:
		return "&&"
	case ast.BinOr:
		return "||"
	default:
		return "?"
	}
}
