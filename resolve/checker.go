package resolve

import (
	"fmt"

	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/internal/diag"
	"github.com/golangee/oxide/types"
	"github.com/golangee/oxide/util"
)

// checker runs the per-function/per-body pass (§4.3) over one Program,
// decorating every ast.Expr with its resolved type and every
// let/const/function/method with its resolved declared type.
type checker struct {
	prog        *Program
	bag         diag.Bag
	globalFrame *frame

	// selfType, currentStruct, returnType, loopDepth are the checker's
	// "current context", saved/restored around nested function/method/
	// lambda bodies the same way the evaluator saves/restores its own
	// call-frame context.
	selfType      *types.Type
	currentStruct *ast.StructDecl
	returnType    types.Type
	loopDepth     int
}

// builtinNames are the host functions of the initial environment (§6);
// they are callable without any user declaration, so the checker seeds
// them into the global frame the same way it seeds user functions.
var builtinNames = []string{
	"print", "println", "eprint", "eprintln",
	"timestamp", "read_line", "file_write", "typeof",
}

func newChecker(prog *Program) *checker {
	c := &checker{prog: prog, returnType: types.Nil}
	c.globalFrame = newFrame(nil)

	for _, name := range builtinNames {
		c.globalFrame.define(name, &cell{typ: types.Fn, assigned: true})
	}

	for name := range prog.Functions {
		c.globalFrame.define(name, &cell{typ: types.Fn, assigned: true})
	}

	return c
}

// checkTopConst type-checks one top-level const in source order,
// adding its name to the global frame only afterwards — a later
// top-level const may reference it, but it may not reference a later
// one (§9 Open Question: "no forward references" resolution).
func (c *checker) checkTopConst(cd *ast.TopConstDecl) {
	t := c.checkExpr(cd.Value, c.globalFrame)
	cd.ResolvedType = t
	c.globalFrame.define(cd.Name, &cell{typ: t, assigned: true})
}

func (c *checker) checkFunction(fn *ast.FunctionDecl) {
	env := newFrame(c.globalFrame)

	fn.ResolvedParams = make([]types.Param, 0, len(fn.Params))

	for _, p := range fn.Params {
		t, err := resolveTypeExpr(c.prog, p.Type, nil)
		if err != nil {
			c.bag.Add(fn, err.Error(), nil)
			continue
		}

		env.define(p.Name, &cell{typ: t, mut: p.Mut, assigned: true})
		fn.ResolvedParams = append(fn.ResolvedParams, types.Param{Name: p.Name, Type: t, Mut: p.Mut})
	}

	retType, err := resolveTypeExpr(c.prog, fn.Ret, nil)
	if err != nil {
		c.bag.Add(fn, err.Error(), nil)
	}

	fn.ResolvedRet = retType

	c.withContext(nil, nil, retType, func() {
		c.checkBlock(fn.Body, env)
	})
}

// checkStructImpl checks a struct's associated consts (in declaration
// order, each visible to the next) followed by its methods.
func (c *checker) checkStructImpl(sd *ast.StructDecl) {
	if sd.Impl == nil {
		return
	}

	self := types.Struct(sd.Resolved)

	implEnv := newFrame(c.globalFrame)

	for i := range sd.Impl.Consts {
		cs := &sd.Impl.Consts[i]

		t := c.checkExpr(cs.Value, implEnv)
		cs.ResolvedType = t
		implEnv.define(cs.Name, &cell{typ: t, assigned: true})

		sd.Resolved.Consts = append(sd.Resolved.Consts, types.ConstSpec{Name: cs.Name, Vis: cs.Vis, Type: t})
	}

	for i := range sd.Impl.Methods {
		c.checkMethod(sd, &sd.Impl.Methods[i], &self)
	}
}

func (c *checker) checkMethod(sd *ast.StructDecl, m *ast.MethodDecl, self *types.Type) {
	env := newFrame(c.globalFrame)

	if !m.IsStatic {
		// self is not rebindable inside a method body (§9 Open Question:
		// mutation of fields through self is required, but self itself
		// is never reassigned — resolved as "always immutable").
		env.define("self", &cell{typ: *self, mut: false, assigned: true})
	}

	for _, p := range m.Params {
		t, err := resolveTypeExpr(c.prog, p.Type, self)
		if err != nil {
			c.bag.Add(sd.Impl, err.Error(), nil)
			continue
		}

		env.define(p.Name, &cell{typ: t, mut: p.Mut, assigned: true})
	}

	retType, err := resolveTypeExpr(c.prog, m.Ret, self)
	if err != nil {
		c.bag.Add(sd.Impl, err.Error(), nil)
	}

	c.withContext(self, sd, retType, func() {
		c.checkBlock(m.Body, env)
	})
}

// withContext swaps in the context for a nested function/method/lambda
// body and restores the caller's context afterwards — mirrors how the
// evaluator pushes and pops a call frame.
func (c *checker) withContext(self *types.Type, st *ast.StructDecl, ret types.Type, body func()) {
	prevSelf, prevStruct, prevRet, prevLoop := c.selfType, c.currentStruct, c.returnType, c.loopDepth
	c.selfType, c.currentStruct, c.returnType, c.loopDepth = self, st, ret, 0

	body()

	c.selfType, c.currentStruct, c.returnType, c.loopDepth = prevSelf, prevStruct, prevRet, prevLoop
}

func (c *checker) insideStruct(st *types.StructType) bool {
	return c.currentStruct != nil && c.currentStruct.Resolved == st
}

// --- statements ---

func (c *checker) checkBlock(b *ast.BlockStmt, outer *frame) {
	env := newFrame(outer)

	for _, s := range b.Stmts {
		c.checkStmt(s, env)
	}
}

func (c *checker) checkStmt(s ast.Stmt, env *frame) {
	switch st := s.(type) {
	case *ast.BlockStmt:
		c.checkBlock(st, env)
	case *ast.ExprStmt:
		c.checkExpr(st.X, env)
	case *ast.LetStmt:
		c.checkLet(st, env)
	case *ast.ConstStmt:
		if env.declaredLocally(st.Name) {
			c.bag.Add(st, fmt.Sprintf("%q already declared", st.Name), nil)
			return
		}

		t := c.checkExpr(st.Value, env)
		st.ResolvedType = t
		env.define(st.Name, &cell{typ: t, assigned: true})
	case *ast.ReturnStmt:
		c.checkReturn(st, env)
	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.bag.Add(st, "break outside a loop", nil)
		}
	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.bag.Add(st, "continue outside a loop", nil)
		}
	case *ast.IfStmt:
		c.checkIf(st, env)
	case *ast.WhileStmt:
		condT := c.checkExpr(st.Cond, env)
		c.requireBool(condT, st, "while condition")

		c.loopDepth++
		c.checkBlock(st.Body, env)
		c.loopDepth--
	case *ast.LoopStmt:
		c.loopDepth++
		c.checkBlock(st.Body, env)
		c.loopDepth--
	case *ast.ForStmt:
		c.checkFor(st, env)
	case *ast.DeclStmt:
		c.checkDeclStmt(st, env)
	}
}

func (c *checker) checkLet(st *ast.LetStmt, env *frame) {
	var declType types.Type

	hasDeclType := st.Type != nil
	if hasDeclType {
		t, err := resolveTypeExpr(c.prog, st.Type, c.selfType)
		if err != nil {
			c.bag.Add(st, err.Error(), nil)
		}

		declType = t
	}

	hasValue := st.Value != nil

	var valType types.Type
	if hasValue {
		valType = c.checkExpr(st.Value, env)
	}

	switch {
	case hasDeclType && hasValue:
		if !staticAssignable(valType, declType) {
			c.bag.Add(st, fmt.Sprintf("cannot assign %s to declared type %s", valType, declType), nil)
		}

		st.ResolvedType = declType
	case hasValue:
		st.ResolvedType = valType
	case hasDeclType:
		st.ResolvedType = declType
	default:
		st.ResolvedType = types.Any
	}

	env.define(st.Name, &cell{typ: st.ResolvedType, mut: st.Mut, assigned: hasValue})
}

func (c *checker) checkReturn(st *ast.ReturnStmt, env *frame) {
	if st.Value == nil {
		if c.returnType.Kind != types.KNil {
			c.bag.Add(st, "bare return is only valid when the function's return type is nil", nil)
		}

		return
	}

	t := c.checkExpr(st.Value, env)
	if !staticAssignable(t, c.returnType) {
		c.bag.Add(st, fmt.Sprintf("return type mismatch: got %s, want %s", t, c.returnType), nil)
	}
}

func (c *checker) checkIf(st *ast.IfStmt, env *frame) {
	condT := c.checkExpr(st.Cond, env)
	c.requireBool(condT, st, "if condition")

	c.checkBlock(st.Then, env)

	if st.ElseIf != nil {
		c.checkIf(st.ElseIf, env)
	}

	if st.Else != nil {
		c.checkBlock(st.Else, env)
	}
}

func (c *checker) checkFor(st *ast.ForStmt, env *frame) {
	loopEnv := newFrame(env)

	if st.Init != nil {
		c.checkStmt(st.Init, loopEnv)
	}

	if st.Cond != nil {
		condT := c.checkExpr(st.Cond, loopEnv)
		c.requireBool(condT, st, "for condition")
	}

	c.loopDepth++
	c.checkBlock(st.Body, loopEnv)

	if st.Step != nil {
		c.checkExpr(st.Step, loopEnv)
	}

	c.loopDepth--
}

// checkDeclStmt resolves a function/struct/enum/impl declared in
// statement position (§4.2 lists these as statement forms). Structs
// and enums are registered into the same global namespace a top-level
// declaration would use — the spec is silent on nested-declaration
// scoping, and a single flat type registry is the simplest
// interpretation consistent with "single compilation unit" (§4.3).
func (c *checker) checkDeclStmt(ds *ast.DeclStmt, env *frame) {
	switch d := ds.Decl.(type) {
	case *ast.FunctionDecl:
		if env.declaredLocally(d.Name) {
			c.bag.Add(d, fmt.Sprintf("%q already declared", d.Name), nil)
			return
		}

		env.define(d.Name, &cell{typ: types.Fn, assigned: true})
		c.checkFunction(d)
	case *ast.StructDecl:
		if _, exists := c.prog.Structs[d.Name]; exists {
			c.bag.Add(d, fmt.Sprintf("%q already declared", d.Name), nil)
			return
		}

		d.Resolved = &types.StructType{Name: d.Name}
		c.prog.Structs[d.Name] = d
		buildFieldSpecs(c.prog, d, &c.bag)
		buildMethodSpecs(c.prog, d, &c.bag)
		c.checkStructImpl(d)
	case *ast.EnumDecl:
		if _, exists := c.prog.Enums[d.Name]; exists {
			c.bag.Add(d, fmt.Sprintf("%q already declared", d.Name), nil)
			return
		}

		d.Resolved = &types.EnumType{Name: d.Name, Variants: append([]string(nil), d.Variants...)}
		c.prog.Enums[d.Name] = d
	case *ast.ImplDecl:
		sd, ok := c.prog.Structs[d.StructName]
		if !ok {
			c.bag.Add(d, fmt.Sprintf("impl for undeclared struct %q", d.StructName), nil)
			return
		}

		if sd.Impl != nil {
			c.bag.Add(d, fmt.Sprintf("struct %q already has an impl block", sd.Name), nil)
			return
		}

		sd.Impl = d
		buildMethodSpecs(c.prog, sd, &c.bag)
		c.checkStructImpl(sd)
	}
}

func (c *checker) requireBool(t types.Type, node ast.Node, what string) {
	if t.Kind != types.KBool && t.Kind != types.KAny {
		c.bag.Add(node, fmt.Sprintf("%s must be bool, got %s", what, t), nil)
	}
}

// --- expressions ---

func (c *checker) checkExpr(e ast.Expr, env *frame) types.Type {
	t := c.checkExprRaw(e, env)
	e.SetType(t)

	return t
}

func (c *checker) checkExprRaw(e ast.Expr, env *frame) types.Type { //nolint:gocyclo
	switch ex := e.(type) {
	case *ast.NilLit:
		return types.Nil
	case *ast.BoolLit:
		return types.Bool
	case *ast.IntLit:
		return types.Int
	case *ast.FloatLit:
		return types.Float
	case *ast.StringLit:
		return types.Str
	case *ast.IdentExpr:
		if cl, ok := env.lookup(ex.Name); ok {
			return cl.typ
		}

		c.bag.Add(ex, fmt.Sprintf("undefined identifier %q", ex.Name), nil)

		return types.Any
	case *ast.SelfExpr:
		if c.selfType == nil {
			c.bag.Add(ex, "self used outside an instance method", nil)
			return types.Any
		}

		return *c.selfType
	case *ast.GroupExpr:
		return c.checkExpr(ex.Inner, env)
	case *ast.UnaryExpr:
		return c.checkUnary(ex, env)
	case *ast.BinaryExpr:
		l := c.checkExpr(ex.Left, env)
		r := c.checkExpr(ex.Right, env)

		return c.checkBinary(ex.Op, l, r, ex)
	case *ast.AssignExpr:
		return c.checkAssign(ex, env)
	case *ast.CallExpr:
		return c.checkCall(ex, env)
	case *ast.IndexExpr:
		return c.checkIndex(ex, env)
	case *ast.FieldExpr:
		return c.checkField(ex, env)
	case *ast.PathExpr:
		return c.checkPath(ex)
	case *ast.StructLitExpr:
		return c.checkStructLit(ex, env)
	case *ast.VecLitExpr:
		return c.checkVecLit(ex, env)
	case *ast.LambdaExpr:
		return c.checkLambda(ex, env)
	case *ast.MatchExpr:
		return c.checkMatch(ex, env)
	default:
		return types.Any
	}
}

func (c *checker) checkUnary(ex *ast.UnaryExpr, env *frame) types.Type {
	t := c.checkExpr(ex.Operand, env)

	switch ex.Op {
	case ast.UnaryNeg:
		if !isNumericish(t) {
			c.bag.Add(ex, fmt.Sprintf("unary - requires a numeric operand, got %s", t), nil)
		}

		return t
	case ast.UnaryNot:
		c.requireBool(t, ex, "!")
		return types.Bool
	default:
		return types.Any
	}
}

func (c *checker) checkBinary(op ast.BinaryOp, l, r types.Type, node ast.Node) types.Type {
	switch op {
	case ast.BinAdd:
		if l.Kind == types.KStr || r.Kind == types.KStr {
			return types.Str
		}

		return c.arithmeticResult(op, l, r, node)
	case ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinMod:
		return c.arithmeticResult(op, l, r, node)
	case ast.BinEq, ast.BinNotEq:
		if l.Kind != types.KAny && r.Kind != types.KAny && !types.Equal(l, r) {
			c.bag.Add(node, fmt.Sprintf("cannot compare %s with %s", l, r), nil)
		}

		return types.Bool
	case ast.BinLt, ast.BinGt, ast.BinLtEq, ast.BinGtEq:
		if !isNumericish(l) || !isNumericish(r) {
			c.bag.Add(node, "comparison requires numeric operands", nil)
		} else if l.Kind != types.KAny && r.Kind != types.KAny &&
			l.Kind != types.KNum && r.Kind != types.KNum && l.Kind != r.Kind {
			c.bag.Add(node, fmt.Sprintf("mismatched numeric kinds %s and %s", l, r), nil)
		}

		return types.Bool
	case ast.BinAnd, ast.BinOr:
		c.requireBool(l, node, "logical operand")
		c.requireBool(r, node, "logical operand")

		return types.Bool
	default:
		return types.Any
	}
}

func (c *checker) arithmeticResult(op ast.BinaryOp, l, r types.Type, node ast.Node) types.Type {
	if l.Kind == types.KAny || r.Kind == types.KAny || l.Kind == types.KNum || r.Kind == types.KNum {
		return types.Num
	}

	if !isNumericKind(l) || !isNumericKind(r) {
		c.bag.Add(node, fmt.Sprintf("arithmetic requires numeric operands, got %s and %s", l, r), nil)
		return types.Any
	}

	if l.Kind != r.Kind {
		c.bag.Add(node, fmt.Sprintf("mismatched numeric kinds %s and %s", l, r), nil)
		return types.Any
	}

	_ = op

	return l
}

func (c *checker) checkAssign(ex *ast.AssignExpr, env *frame) types.Type {
	var targetT types.Type

	switch t := ex.Target.(type) {
	case *ast.IdentExpr:
		cl, ok := env.lookup(t.Name)
		if !ok {
			c.bag.Add(t, fmt.Sprintf("undefined identifier %q", t.Name), nil)
			targetT = types.Any
		} else {
			if !cl.mut {
				if cl.assigned {
					c.bag.Add(ex, fmt.Sprintf("cannot assign to immutable %q", t.Name), nil)
				} else {
					// Deferred single assignment: an immutable cell
					// declared without an initializer gets exactly one
					// assignment before it locks (§3 Invariants).
					cl.assigned = true
				}
			}

			targetT = cl.typ
		}

		t.SetType(targetT)
	default:
		// Field/index targets are always assignable through (§4.4:
		// mutating through a reachable aggregate is always permitted;
		// only rebinding the cell itself is restricted).
		targetT = c.checkExpr(ex.Target, env)
	}

	valT := c.checkExpr(ex.Value, env)

	if ex.Op != nil {
		valT = c.checkBinary(*ex.Op, targetT, valT, ex)
	}

	if !staticAssignable(valT, targetT) {
		c.bag.Add(ex, fmt.Sprintf("cannot assign %s to %s", valT, targetT), nil)
	}

	return targetT
}

// checkCall special-cases a FieldExpr callee: `recv.name(args)` is a
// method call (§4.4 "Method dispatch") when `name` is a method of
// recv's struct type, and falls back to ordinary field access (e.g. a
// field that happens to hold a callable value) otherwise — the two
// share call syntax but are different namespaces.
func (c *checker) checkCall(ex *ast.CallExpr, env *frame) types.Type {
	var calleeT types.Type

	if fe, ok := ex.Callee.(*ast.FieldExpr); ok {
		recvT := c.checkExpr(fe.Receiver, env)

		switch {
		case recvT.Kind == types.KStruct && recvT.Struct != nil:
			if m, ok := recvT.Struct.Method(fe.Name); ok {
				if m.Vis == types.Private && !c.insideStruct(recvT.Struct) {
					c.bag.Add(fe, fmt.Sprintf("method %q of %q is private", fe.Name, recvT.Struct.Name), nil)
				}

				calleeT = types.Fn
			} else {
				calleeT = c.checkFieldOn(fe, recvT)
			}
		case recvT.Kind == types.KVec && isVecMethod(fe.Name):
			// push/pop/len (§3 "Vector built-in operations") are the
			// vector's only callable namespace; there is no field to
			// fall back to the way a struct has.
			calleeT = types.Fn
		default:
			calleeT = c.checkFieldOn(fe, recvT)
		}

		fe.SetType(calleeT)
	} else {
		calleeT = c.checkExpr(ex.Callee, env)
	}

	for _, a := range ex.Args {
		c.checkExpr(a, env)
	}

	if calleeT.Kind != types.KFn && calleeT.Kind != types.KAny {
		c.bag.Add(ex, fmt.Sprintf("cannot call a value of type %s", calleeT), nil)
	}

	// Arity and parameter types are not statically enforced (§4.3 "Call"
	// rule): fn carries no signature in its static type.
	return types.Any
}

func isVecMethod(name string) bool {
	return name == "push" || name == "pop" || name == "len"
}

func (c *checker) checkIndex(ex *ast.IndexExpr, env *frame) types.Type {
	recv := c.checkExpr(ex.Receiver, env)
	idx := c.checkExpr(ex.Index, env)

	if idx.Kind != types.KInt && idx.Kind != types.KAny {
		c.bag.Add(ex, fmt.Sprintf("index must be int, got %s", idx), nil)
	}

	switch {
	case recv.Kind == types.KVec:
		if recv.Elem != nil {
			return *recv.Elem
		}

		return types.Any
	case recv.Kind == types.KAny:
		return types.Any
	default:
		c.bag.Add(ex, fmt.Sprintf("indexing requires a vec receiver, got %s", recv), nil)
		return types.Any
	}
}

func (c *checker) checkField(ex *ast.FieldExpr, env *frame) types.Type {
	recv := c.checkExpr(ex.Receiver, env)
	return c.checkFieldOn(ex, recv)
}

func (c *checker) checkFieldOn(ex *ast.FieldExpr, recv types.Type) types.Type {
	if recv.Kind == types.KAny {
		return types.Any
	}

	if recv.Kind != types.KStruct || recv.Struct == nil {
		c.bag.Add(ex, fmt.Sprintf("field access requires a struct receiver, got %s", recv), nil)
		return types.Any
	}

	fs, ok := recv.Struct.Field(ex.Name)
	if !ok {
		c.bag.Add(ex, fmt.Sprintf("struct %q has no field %q", recv.Struct.Name, ex.Name), nil)
		return types.Any
	}

	if fs.Vis == types.Private && !c.insideStruct(recv.Struct) {
		c.bag.Add(ex, fmt.Sprintf("field %q of %q is private", ex.Name, recv.Struct.Name), nil)
	}

	return fs.Type
}

func (c *checker) checkPath(ex *ast.PathExpr) types.Type {
	name := ex.Type.Name

	if name == "Self" {
		if c.selfType == nil || c.selfType.Struct == nil {
			c.bag.Add(ex, "Self used outside an impl block", nil)
			return types.Any
		}

		return c.checkPathOnStruct(ex, c.selfType.Struct)
	}

	if sd, ok := c.prog.Structs[name]; ok {
		return c.checkPathOnStruct(ex, sd.Resolved)
	}

	if ed, ok := c.prog.Enums[name]; ok {
		if _, ok := ed.Resolved.Index(ex.Item); !ok {
			c.bag.Add(ex, fmt.Sprintf("enum %q has no variant %q", name, ex.Item), nil)
			return types.Any
		}

		return types.Enum(ed.Resolved)
	}

	c.bag.Add(ex, fmt.Sprintf("unknown type %q", name), nil)

	return types.Any
}

func (c *checker) checkPathOnStruct(ex *ast.PathExpr, st *types.StructType) types.Type {
	if m, ok := st.Method(ex.Item); ok {
		if m.Vis == types.Private && !c.insideStruct(st) {
			c.bag.Add(ex, fmt.Sprintf("method %q of %q is private", ex.Item, st.Name), nil)
		}

		return types.Fn
	}

	if cs, ok := st.Const(ex.Item); ok {
		if cs.Vis == types.Private && !c.insideStruct(st) {
			c.bag.Add(ex, fmt.Sprintf("const %q of %q is private", ex.Item, st.Name), nil)
		}

		return cs.Type
	}

	c.bag.Add(ex, fmt.Sprintf("%q has no member %q", st.Name, ex.Item), nil)

	return types.Any
}

func (c *checker) checkStructLit(ex *ast.StructLitExpr, env *frame) types.Type {
	name := ex.Type.Name

	var st *types.StructType

	switch {
	case name == "Self":
		if c.selfType == nil || c.selfType.Struct == nil {
			c.bag.Add(ex, "Self used outside an impl block", nil)
			return types.Any
		}

		st = c.selfType.Struct
	default:
		sd, ok := c.prog.Structs[name]
		if !ok {
			c.bag.Add(ex, fmt.Sprintf("unknown struct %q", name), nil)
			return types.Any
		}

		st = sd.Resolved
	}

	seen := util.NewFieldSet()

	for _, finit := range ex.Fields {
		if !seen.Add(finit.Name) {
			c.bag.Add(ex, fmt.Sprintf("duplicate field %q in struct literal", finit.Name), nil)
		}

		valT := c.checkExpr(finit.Value, env)

		spec, ok := st.Field(finit.Name)
		if !ok {
			c.bag.Add(ex, fmt.Sprintf("struct %q has no field %q", st.Name, finit.Name), nil)
			continue
		}

		if !staticAssignable(valT, spec.Type) {
			c.bag.Add(ex, fmt.Sprintf("field %q: cannot assign %s to %s", finit.Name, valT, spec.Type), nil)
		}
	}

	wantNames := make([]string, len(st.Fields))
	for i, f := range st.Fields {
		wantNames[i] = f.Name
	}

	if missing := seen.Missing(wantNames); len(missing) > 0 {
		c.bag.Add(ex, fmt.Sprintf("missing fields in struct literal for %q: %v", st.Name, missing), nil)
	}

	return types.Struct(st)
}

func (c *checker) checkVecLit(ex *ast.VecLitExpr, env *frame) types.Type {
	elemTypes := make([]types.Type, len(ex.Elements))
	for i, el := range ex.Elements {
		elemTypes[i] = c.checkExpr(el, env)
	}

	if ex.ElemType != nil {
		pinned, err := resolveTypeExpr(c.prog, ex.ElemType, c.selfType)
		if err != nil {
			c.bag.Add(ex, err.Error(), nil)
			return types.VecAny
		}

		for i, t := range elemTypes {
			if !staticAssignable(t, pinned) {
				c.bag.Add(ex.Elements[i], fmt.Sprintf("element %d: cannot assign %s to %s", i, t, pinned), nil)
			}
		}

		return types.Vec(pinned)
	}

	if len(elemTypes) == 0 {
		return types.VecAny
	}

	common := elemTypes[0]
	for _, t := range elemTypes[1:] {
		if !types.Equal(t, common) {
			return types.VecAny
		}
	}

	return types.Vec(common)
}

func (c *checker) checkLambda(ex *ast.LambdaExpr, env *frame) types.Type {
	lenv := newFrame(env)

	ex.ResolvedParams = make([]types.Param, 0, len(ex.Params))

	for _, p := range ex.Params {
		t, err := resolveTypeExpr(c.prog, p.Type, c.selfType)
		if err != nil {
			c.bag.Add(ex, err.Error(), nil)
			continue
		}

		lenv.define(p.Name, &cell{typ: t, mut: p.Mut, assigned: true})
		ex.ResolvedParams = append(ex.ResolvedParams, types.Param{Name: p.Name, Type: t, Mut: p.Mut})
	}

	retType, err := resolveTypeExpr(c.prog, ex.Ret, c.selfType)
	if err != nil {
		c.bag.Add(ex, err.Error(), nil)
	}

	ex.ResolvedRet = retType

	// A lambda is its own call frame for return/loop purposes, but it
	// keeps the enclosing self/struct context (methods may return
	// closures that still see Self, matching the evaluator's capture of
	// the defining environment).
	prevRet, prevLoop := c.returnType, c.loopDepth
	c.returnType, c.loopDepth = retType, 0

	c.checkBlock(ex.Body, lenv)

	c.returnType, c.loopDepth = prevRet, prevLoop

	return types.Fn
}

func (c *checker) checkMatch(ex *ast.MatchExpr, env *frame) types.Type {
	c.checkExpr(ex.Scrutinee, env)

	var common *types.Type

	mixed := false

	for _, arm := range ex.Arms {
		c.checkExpr(arm.Pattern, env)

		rt := c.checkExpr(arm.Result, env)

		if common == nil {
			cp := rt
			common = &cp
		} else if !types.Equal(*common, rt) {
			mixed = true
		}
	}

	if common == nil || mixed {
		return types.Any
	}

	return *common
}

func isNumericKind(t types.Type) bool {
	return t.Kind == types.KInt || t.Kind == types.KFloat
}

func isNumericish(t types.Type) bool {
	return isNumericKind(t) || t.Kind == types.KNum || t.Kind == types.KAny
}

// staticAssignable is types.Assignable loosened to defer to the
// evaluator whenever either side's static type is `any` — the static
// pass cannot know an `any` cell's current runtime type (§4.3: "the
// evaluator enforces the rest").
func staticAssignable(from, to types.Type) bool {
	if to.Kind == types.KAny || from.Kind == types.KAny {
		return true
	}

	return types.Assignable(from, to)
}
