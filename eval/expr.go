package eval

import (
	"fmt"
	"math"

	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/types"
	"github.com/golangee/oxide/value"
)

func (it *Interp) evalExpr(e ast.Expr, env *Env) (value.Value, error) { //nolint:gocyclo
	switch ex := e.(type) {
	case *ast.NilLit:
		return value.Nil{}, nil
	case *ast.BoolLit:
		return value.Bool(ex.Value), nil
	case *ast.IntLit:
		return value.Int(ex.Value), nil
	case *ast.FloatLit:
		return value.Float(ex.Value), nil
	case *ast.StringLit:
		return value.Str(ex.Value), nil
	case *ast.IdentExpr:
		v, ok := env.Get(ex.Name)
		if !ok {
			if it.pendingConsts[ex.Name] {
				return nil, fmt.Errorf("circular reference to constant %q", ex.Name)
			}

			return nil, fmt.Errorf("undefined identifier %q", ex.Name)
		}

		return v, nil
	case *ast.SelfExpr:
		v, ok := env.Get("self")
		if !ok {
			return nil, fmt.Errorf("self used outside an instance method")
		}

		return v, nil
	case *ast.GroupExpr:
		return it.evalExpr(ex.Inner, env)
	case *ast.UnaryExpr:
		return it.evalUnary(ex, env)
	case *ast.BinaryExpr:
		return it.evalBinary(ex, env)
	case *ast.AssignExpr:
		return it.evalAssign(ex, env)
	case *ast.CallExpr:
		return it.evalCall(ex, env)
	case *ast.IndexExpr:
		return it.evalIndex(ex, env)
	case *ast.FieldExpr:
		return it.evalField(ex, env)
	case *ast.PathExpr:
		return it.evalPath(ex, env)
	case *ast.StructLitExpr:
		return it.evalStructLit(ex, env)
	case *ast.VecLitExpr:
		return it.evalVecLit(ex, env)
	case *ast.LambdaExpr:
		return &Closure{
			Params:   ex.ResolvedParams,
			Ret:      ex.ResolvedRet,
			Body:     ex.Body,
			Env:      env,
			SelfType: it.currentSelfType(),
		}, nil
	case *ast.MatchExpr:
		return it.evalMatch(ex, env)
	default:
		return nil, fmt.Errorf("eval: unhandled expression %T", e)
	}
}

func (it *Interp) evalUnary(ex *ast.UnaryExpr, env *Env) (value.Value, error) {
	v, err := it.evalExpr(ex.Operand, env)
	if err != nil {
		return nil, err
	}

	switch ex.Op {
	case ast.UnaryNeg:
		switch t := v.(type) {
		case value.Int:
			return -t, nil
		case value.Float:
			return -t, nil
		default:
			return nil, fmt.Errorf("unary - requires a numeric operand, got %s", value.KindName(v.Kind()))
		}
	case ast.UnaryNot:
		b, ok := v.(value.Bool)
		if !ok {
			return nil, fmt.Errorf("! requires a bool operand, got %s", value.KindName(v.Kind()))
		}

		return !b, nil
	default:
		return nil, fmt.Errorf("eval: unhandled unary operator")
	}
}

func (it *Interp) evalBinary(ex *ast.BinaryExpr, env *Env) (value.Value, error) {
	// && and || short-circuit: the right operand is only evaluated when
	// the left doesn't already decide the result.
	if ex.Op == ast.BinAnd || ex.Op == ast.BinOr {
		l, err := it.evalExpr(ex.Left, env)
		if err != nil {
			return nil, err
		}

		lb, ok := l.(value.Bool)
		if !ok {
			return nil, fmt.Errorf("logical operand must be bool, got %s", value.KindName(l.Kind()))
		}

		if ex.Op == ast.BinAnd && !bool(lb) {
			return value.Bool(false), nil
		}

		if ex.Op == ast.BinOr && bool(lb) {
			return value.Bool(true), nil
		}

		r, err := it.evalExpr(ex.Right, env)
		if err != nil {
			return nil, err
		}

		rb, ok := r.(value.Bool)
		if !ok {
			return nil, fmt.Errorf("logical operand must be bool, got %s", value.KindName(r.Kind()))
		}

		return rb, nil
	}

	l, err := it.evalExpr(ex.Left, env)
	if err != nil {
		return nil, err
	}

	r, err := it.evalExpr(ex.Right, env)
	if err != nil {
		return nil, err
	}

	return applyBinary(ex.Op, l, r)
}

func applyBinary(op ast.BinaryOp, l, r value.Value) (value.Value, error) {
	switch op {
	case ast.BinAdd:
		if _, ok := l.(value.Str); ok {
			return value.Str(value.StringOf(l) + value.StringOf(r)), nil
		}

		if _, ok := r.(value.Str); ok {
			return value.Str(value.StringOf(l) + value.StringOf(r)), nil
		}

		return numericBinary(op, l, r)
	case ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinMod:
		return numericBinary(op, l, r)
	case ast.BinEq:
		eq, err := value.Equal(l, r)
		if err != nil {
			return nil, err
		}

		return value.Bool(eq), nil
	case ast.BinNotEq:
		eq, err := value.Equal(l, r)
		if err != nil {
			return nil, err
		}

		return value.Bool(!eq), nil
	case ast.BinLt, ast.BinGt, ast.BinLtEq, ast.BinGtEq:
		return compareNumeric(op, l, r)
	default:
		return nil, fmt.Errorf("eval: unhandled binary operator")
	}
}

func numericBinary(op ast.BinaryOp, l, r value.Value) (value.Value, error) {
	switch a := l.(type) {
	case value.Int:
		b, ok := r.(value.Int)
		if !ok {
			return nil, fmt.Errorf("mismatched operand types: int and %s", value.KindName(r.Kind()))
		}

		return intArith(op, a, b)
	case value.Float:
		b, ok := r.(value.Float)
		if !ok {
			return nil, fmt.Errorf("mismatched operand types: float and %s", value.KindName(r.Kind()))
		}

		return floatArith(op, a, b)
	default:
		return nil, fmt.Errorf("arithmetic requires numeric operands, got %s", value.KindName(l.Kind()))
	}
}

func intArith(op ast.BinaryOp, a, b value.Int) (value.Value, error) {
	switch op {
	case ast.BinAdd:
		return a + b, nil
	case ast.BinSub:
		return a - b, nil
	case ast.BinMul:
		return a * b, nil
	case ast.BinDiv:
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}

		return a / b, nil
	case ast.BinMod:
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}

		// Go's % already takes the sign of the dividend (§4.4).
		return a % b, nil
	default:
		return nil, fmt.Errorf("eval: unhandled arithmetic operator")
	}
}

func floatArith(op ast.BinaryOp, a, b value.Float) (value.Value, error) {
	switch op {
	case ast.BinAdd:
		return a + b, nil
	case ast.BinSub:
		return a - b, nil
	case ast.BinMul:
		return a * b, nil
	case ast.BinDiv:
		return a / b, nil // IEEE result on zero divisor, per §4.4
	case ast.BinMod:
		return value.Float(math.Mod(float64(a), float64(b))), nil
	default:
		return nil, fmt.Errorf("eval: unhandled arithmetic operator")
	}
}

func compareNumeric(op ast.BinaryOp, l, r value.Value) (value.Value, error) {
	lf, lok := toFloat(l)
	rf, rok := toFloat(r)

	if !lok || !rok {
		return nil, fmt.Errorf("comparison requires numeric operands, got %s and %s", value.KindName(l.Kind()), value.KindName(r.Kind()))
	}

	var res bool

	switch op {
	case ast.BinLt:
		res = lf < rf
	case ast.BinGt:
		res = lf > rf
	case ast.BinLtEq:
		res = lf <= rf
	case ast.BinGtEq:
		res = lf >= rf
	}

	return value.Bool(res), nil
}

func toFloat(v value.Value) (float64, bool) {
	switch t := v.(type) {
	case value.Int:
		return float64(t), true
	case value.Float:
		return float64(t), true
	default:
		return 0, false
	}
}

// evalAssign evaluates the receiver/index of a field or index target
// exactly once, reusing it for both the compound-op read and the final
// write — a receiver like `f()` or an index like `arr[sideEffecting()]`
// must not be evaluated twice (§5 evaluation-order guarantees).
func (it *Interp) evalAssign(ex *ast.AssignExpr, env *Env) (value.Value, error) {
	switch t := ex.Target.(type) {
	case *ast.IdentExpr:
		val, err := it.evalAssignValue(ex, func() (value.Value, error) {
			v, ok := env.Get(t.Name)
			if !ok {
				return nil, fmt.Errorf("undefined identifier %q", t.Name)
			}

			return v, nil
		}, env)
		if err != nil {
			return nil, err
		}

		if err := env.Set(t.Name, val); err != nil {
			return nil, err
		}

		return val, nil
	case *ast.FieldExpr:
		recv, err := it.evalExpr(t.Receiver, env)
		if err != nil {
			return nil, err
		}

		sv, ok := recv.(*value.Struct)
		if !ok {
			return nil, fmt.Errorf("field assignment requires a struct receiver, got %s", value.KindName(recv.Kind()))
		}

		val, err := it.evalAssignValue(ex, func() (value.Value, error) {
			v, ok := sv.Get(t.Name)
			if !ok {
				return nil, fmt.Errorf("struct %q has no field %q", sv.Type.Name, t.Name)
			}

			return v, nil
		}, env)
		if err != nil {
			return nil, err
		}

		sv.Set(t.Name, val)

		return val, nil
	case *ast.IndexExpr:
		recv, err := it.evalExpr(t.Receiver, env)
		if err != nil {
			return nil, err
		}

		idxv, err := it.evalExpr(t.Index, env)
		if err != nil {
			return nil, err
		}

		vv, ok := recv.(*value.Vec)
		if !ok {
			return nil, fmt.Errorf("index assignment requires a vec receiver, got %s", value.KindName(recv.Kind()))
		}

		idx, ok := idxv.(value.Int)
		if !ok {
			return nil, fmt.Errorf("index must be int, got %s", value.KindName(idxv.Kind()))
		}

		val, err := it.evalAssignValue(ex, func() (value.Value, error) {
			return vv.Get(int(idx)), nil
		}, env)
		if err != nil {
			return nil, err
		}

		if err := vv.Set(int(idx), val); err != nil {
			return nil, err
		}

		return val, nil
	default:
		return nil, fmt.Errorf("eval: invalid assignment target %T", ex.Target)
	}
}

// evalAssignValue evaluates the right-hand side of ex, folding it with
// the current value (read via cur, called at most once) when ex is a
// compound assignment.
func (it *Interp) evalAssignValue(ex *ast.AssignExpr, cur func() (value.Value, error), env *Env) (value.Value, error) {
	val, err := it.evalExpr(ex.Value, env)
	if err != nil {
		return nil, err
	}

	if ex.Op == nil {
		return val, nil
	}

	curVal, err := cur()
	if err != nil {
		return nil, err
	}

	return applyBinary(*ex.Op, curVal, val)
}

func (it *Interp) evalIndex(ex *ast.IndexExpr, env *Env) (value.Value, error) {
	recv, err := it.evalExpr(ex.Receiver, env)
	if err != nil {
		return nil, err
	}

	idxv, err := it.evalExpr(ex.Index, env)
	if err != nil {
		return nil, err
	}

	vv, ok := recv.(*value.Vec)
	if !ok {
		return nil, fmt.Errorf("indexing requires a vec receiver, got %s", value.KindName(recv.Kind()))
	}

	idx, ok := idxv.(value.Int)
	if !ok {
		return nil, fmt.Errorf("index must be int, got %s", value.KindName(idxv.Kind()))
	}

	return vv.Get(int(idx)), nil
}

func (it *Interp) evalField(ex *ast.FieldExpr, env *Env) (value.Value, error) {
	recv, err := it.evalExpr(ex.Receiver, env)
	if err != nil {
		return nil, err
	}

	sv, ok := recv.(*value.Struct)
	if !ok {
		return nil, fmt.Errorf("field access requires a struct receiver, got %s", value.KindName(recv.Kind()))
	}

	v, ok := sv.Get(ex.Name)
	if !ok {
		return nil, fmt.Errorf("struct %q has no field %q", sv.Type.Name, ex.Name)
	}

	return v, nil
}

func (it *Interp) evalPath(ex *ast.PathExpr, env *Env) (value.Value, error) {
	name := ex.Type.Name

	if name == "Self" {
		st := it.currentSelfType()
		if st == nil {
			return nil, fmt.Errorf("Self used outside an impl block")
		}

		name = st.Name
	}

	if sd, ok := it.structDecl(name); ok {
		if v, ok := it.structConst(name, ex.Item); ok {
			return v, nil
		}

		if m, ok := sd.Resolved.Method(ex.Item); ok {
			return it.staticMethodClosure(sd, m), nil
		}

		return nil, fmt.Errorf("%q has no member %q", name, ex.Item)
	}

	if ed, ok := it.enumDecl(name); ok {
		idx, ok := ed.Resolved.Index(ex.Item)
		if !ok {
			return nil, fmt.Errorf("enum %q has no variant %q", name, ex.Item)
		}

		return value.Enum{Type: ed.Resolved, Variant: idx}, nil
	}

	return nil, fmt.Errorf("unknown type %q", name)
}

func (it *Interp) evalStructLit(ex *ast.StructLitExpr, env *Env) (value.Value, error) {
	name := ex.Type.Name

	if name == "Self" {
		st := it.currentSelfType()
		if st == nil {
			return nil, fmt.Errorf("Self used outside an impl block")
		}

		name = st.Name
	}

	sd, ok := it.structDecl(name)
	if !ok {
		return nil, fmt.Errorf("unknown struct %q", name)
	}

	fields := make(map[string]value.Value, len(ex.Fields))

	for _, finit := range ex.Fields {
		v, err := it.evalExpr(finit.Value, env)
		if err != nil {
			return nil, err
		}

		fields[finit.Name] = v
	}

	return value.NewStruct(sd.Resolved, fields), nil
}

func (it *Interp) evalVecLit(ex *ast.VecLitExpr, env *Env) (value.Value, error) {
	elems := make([]value.Value, len(ex.Elements))

	for i, el := range ex.Elements {
		v, err := it.evalExpr(el, env)
		if err != nil {
			return nil, err
		}

		elems[i] = v
	}

	elemType := types.Any
	if t := ex.Type(); t.Elem != nil {
		elemType = *t.Elem
	}

	return value.NewVec(elemType, elems), nil
}

func (it *Interp) evalMatch(ex *ast.MatchExpr, env *Env) (value.Value, error) {
	scrutinee, err := it.evalExpr(ex.Scrutinee, env)
	if err != nil {
		return nil, err
	}

	for _, arm := range ex.Arms {
		patVal, err := it.evalExpr(arm.Pattern, env)
		if err != nil {
			return nil, err
		}

		eq, err := value.Equal(scrutinee, patVal)
		if err != nil {
			return nil, err
		}

		if eq {
			return it.evalExpr(arm.Result, env)
		}
	}

	// No arm matched: §7 "no match arm matches when the result is
	// consumed... currently returns nil".
	return value.Nil{}, nil
}
