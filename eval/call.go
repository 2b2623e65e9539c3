package eval

import (
	"fmt"

	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/types"
	"github.com/golangee/oxide/value"
)

// evalCall special-cases a FieldExpr callee identically to the
// resolver's checkCall: `recv.name(args)` dispatches to a method named
// name on recv's struct type when one exists, falling back to plain
// field access (e.g. a field holding a lambda) otherwise.
func (it *Interp) evalCall(ex *ast.CallExpr, env *Env) (value.Value, error) {
	var callee value.Value

	if fe, ok := ex.Callee.(*ast.FieldExpr); ok {
		recv, err := it.evalExpr(fe.Receiver, env)
		if err != nil {
			return nil, err
		}

		if vv, isVec := recv.(*value.Vec); isVec {
			args, err := it.evalArgs(ex.Args, env)
			if err != nil {
				return nil, err
			}

			return callVecMethod(vv, fe.Name, args)
		}

		sv, isStruct := recv.(*value.Struct)
		if !isStruct {
			return nil, fmt.Errorf("field access requires a struct receiver, got %s", value.KindName(recv.Kind()))
		}

		if m, ok := sv.Type.Method(fe.Name); ok {
			args, err := it.evalArgs(ex.Args, env)
			if err != nil {
				return nil, err
			}

			return it.invokeMethod(sv, m, args)
		}

		v, ok := sv.Get(fe.Name)
		if !ok {
			return nil, fmt.Errorf("struct %q has no field %q", sv.Type.Name, fe.Name)
		}

		callee = v
	} else {
		v, err := it.evalExpr(ex.Callee, env)
		if err != nil {
			return nil, err
		}

		callee = v
	}

	args, err := it.evalArgs(ex.Args, env)
	if err != nil {
		return nil, err
	}

	return it.call(callee, args)
}

// callVecMethod implements §3's three vector built-ins; push/pop/len
// are not user-overridable methods, so they never consult a struct's
// declared method set.
func callVecMethod(vv *value.Vec, name string, args []value.Value) (value.Value, error) {
	switch name {
	case "push":
		vv.Push(args[0])
		return value.Nil{}, nil
	case "pop":
		return vv.Pop()
	case "len":
		return value.Int(vv.Len()), nil
	default:
		return nil, fmt.Errorf("vec has no method %q", name)
	}
}

func (it *Interp) evalArgs(exprs []ast.Expr, env *Env) ([]value.Value, error) {
	args := make([]value.Value, len(exprs))

	for i, a := range exprs {
		v, err := it.evalExpr(a, env)
		if err != nil {
			return nil, err
		}

		args[i] = v
	}

	return args, nil
}

// call dispatches to whichever concrete callable kind v holds.
func (it *Interp) call(v value.Value, args []value.Value) (value.Value, error) {
	switch fn := v.(type) {
	case *Closure:
		return it.invoke(fn, args)
	case *value.Native:
		return fn.Call(args)
	default:
		return nil, fmt.Errorf("cannot call a value of type %s", value.KindName(v.Kind()))
	}
}

// invoke runs cl's body in a fresh frame chained to its captured
// environment (§4.4 step 5: "a function call pushes a frame whose
// outer link is the callable's captured environment, not the caller's
// frame" — lexical, not dynamic, scoping).
func (it *Interp) invoke(cl *Closure, args []value.Value) (value.Value, error) {
	callEnv := NewEnv(cl.Env)

	if len(args) != len(cl.Params) {
		return nil, fmt.Errorf("expected %d argument(s), got %d", len(cl.Params), len(args))
	}

	if cl.Self != nil {
		callEnv.Define("self", *cl.Self, false)
	}

	for i, p := range cl.Params {
		if !isRuntimeAssignable(args[i], p.Type) {
			return nil, fmt.Errorf("argument %d: cannot pass %s as %s", i+1, value.KindName(args[i].Kind()), p.Type)
		}

		callEnv.Define(p.Name, args[i], p.Mut)
	}

	it.selfStack = append(it.selfStack, cl.SelfType)
	err := it.execBlock(cl.Body, callEnv)
	it.selfStack = it.selfStack[:len(it.selfStack)-1]

	var result value.Value = value.Nil{}

	if err != nil {
		rs, ok := err.(returnSignal)
		if !ok {
			return nil, err
		}

		result = rs.val
	}

	if !isRuntimeAssignable(result, cl.Ret) {
		return nil, fmt.Errorf("return value: cannot return %s as %s", value.KindName(result.Kind()), cl.Ret)
	}

	return result, nil
}

// isRuntimeAssignable implements §4.4 step 4/7: the runtime-type match
// a parameter or return value must satisfy against its declared static
// type (looser than static Assignable in the nominal-vec case: a bare
// `vec` parameter, i.e. one with no element type annotation, accepts a
// vector of any element type).
func isRuntimeAssignable(v value.Value, t types.Type) bool {
	switch t.Kind {
	case types.KAny:
		return true
	case types.KNum:
		return v.Kind() == value.KInt || v.Kind() == value.KFloat
	case types.KFn:
		return v.Kind() == value.KFn
	case types.KVec:
		vv, ok := v.(*value.Vec)
		if !ok {
			return false
		}

		if t.Elem == nil || t.Elem.Kind == types.KAny {
			return true
		}

		return types.Equal(vv.ElemType, *t.Elem)
	case types.KStruct:
		sv, ok := v.(*value.Struct)
		return ok && sv.Type.Name == t.Name
	case types.KEnum:
		ev, ok := v.(value.Enum)
		return ok && ev.Type != nil && ev.Type.Name == t.Name
	case types.KNil:
		return v.Kind() == value.KNil
	case types.KBool:
		return v.Kind() == value.KBool
	case types.KInt:
		return v.Kind() == value.KInt
	case types.KFloat:
		return v.Kind() == value.KFloat
	case types.KStr:
		return v.Kind() == value.KStr
	default:
		return true
	}
}

// invokeMethod binds sv as `self` (for an instance method) and calls
// the matching ast.MethodDecl's body, found by name in sv's struct
// declaration's impl block.
func (it *Interp) invokeMethod(sv *value.Struct, m types.MethodSpec, args []value.Value) (value.Value, error) {
	sd, ok := it.structDecl(sv.Type.Name)
	if !ok {
		return nil, fmt.Errorf("unknown struct %q", sv.Type.Name)
	}

	body := it.findMethodBody(sd, m.Name)
	if body == nil {
		return nil, fmt.Errorf("method %q has no body", m.Name)
	}

	cl := &Closure{
		Params:   m.Params,
		Ret:      m.Ret,
		Body:     body,
		Env:      it.Global,
		SelfType: sv.Type,
	}

	if !m.IsStatic {
		var self value.Value = sv
		cl.Self = &self
	}

	return it.invoke(cl, args)
}

// staticMethodClosure builds a callable value for a bare static-method
// reference, e.g. `Point::origin` used as a value rather than called
// directly through PathExpr call syntax.
func (it *Interp) staticMethodClosure(sd *ast.StructDecl, m types.MethodSpec) *Closure {
	return &Closure{
		Params:   m.Params,
		Ret:      m.Ret,
		Body:     it.findMethodBody(sd, m.Name),
		Env:      it.Global,
		SelfType: sd.Resolved,
	}
}

func (it *Interp) findMethodBody(sd *ast.StructDecl, name string) *ast.BlockStmt {
	if sd.Impl == nil {
		return nil
	}

	for i := range sd.Impl.Methods {
		if sd.Impl.Methods[i].Name == name {
			return sd.Impl.Methods[i].Body
		}
	}

	return nil
}
