package eval

import (
	"fmt"

	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/value"
)

// execBlock pushes a fresh frame for b, executes its statements in
// order, and pops the frame on the way out — normally, on break,
// continue, return, or an unwinding error alike (§4.4 "each block
// pushes a frame; exiting the block... pops it").
func (it *Interp) execBlock(b *ast.BlockStmt, outer *Env) error {
	env := NewEnv(outer)

	for _, s := range b.Stmts {
		if err := it.execStmt(s, env); err != nil {
			return err
		}
	}

	return nil
}

func (it *Interp) execStmt(s ast.Stmt, env *Env) error { //nolint:gocyclo
	switch st := s.(type) {
	case *ast.BlockStmt:
		return it.execBlock(st, env)
	case *ast.ExprStmt:
		_, err := it.evalExpr(st.X, env)
		return err
	case *ast.LetStmt:
		return it.execLet(st, env)
	case *ast.ConstStmt:
		if env.declaredLocally(st.Name) {
			return fmt.Errorf("%q already declared", st.Name)
		}

		val, err := it.evalExpr(st.Value, env)
		if err != nil {
			return err
		}

		env.Define(st.Name, val, false)

		return nil
	case *ast.ReturnStmt:
		if st.Value == nil {
			return returnSignal{val: value.Nil{}}
		}

		val, err := it.evalExpr(st.Value, env)
		if err != nil {
			return err
		}

		return returnSignal{val: val}
	case *ast.BreakStmt:
		return errBreak
	case *ast.ContinueStmt:
		return errContinue
	case *ast.IfStmt:
		return it.execIf(st, env)
	case *ast.WhileStmt:
		return it.execWhile(st, env)
	case *ast.LoopStmt:
		return it.execLoop(st, env)
	case *ast.ForStmt:
		return it.execFor(st, env)
	case *ast.DeclStmt:
		return it.execDeclStmt(st, env)
	default:
		return fmt.Errorf("eval: unhandled statement %T", s)
	}
}

func (it *Interp) execLet(st *ast.LetStmt, env *Env) error {
	if st.Value == nil {
		env.DefineUninit(st.Name, st.Mut)
		return nil
	}

	val, err := it.evalExpr(st.Value, env)
	if err != nil {
		return err
	}

	env.Define(st.Name, val, st.Mut)

	return nil
}

func (it *Interp) execIf(st *ast.IfStmt, env *Env) error {
	cond, err := it.evalExpr(st.Cond, env)
	if err != nil {
		return err
	}

	if asBool(cond) {
		return it.execBlock(st.Then, env)
	}

	if st.ElseIf != nil {
		return it.execIf(st.ElseIf, env)
	}

	if st.Else != nil {
		return it.execBlock(st.Else, env)
	}

	return nil
}

func (it *Interp) execWhile(st *ast.WhileStmt, env *Env) error {
	for {
		cond, err := it.evalExpr(st.Cond, env)
		if err != nil {
			return err
		}

		if !asBool(cond) {
			return nil
		}

		if err := it.execBlock(st.Body, env); err != nil {
			if err == errBreak {
				return nil
			}

			if err == errContinue {
				continue
			}

			return err
		}
	}
}

func (it *Interp) execLoop(st *ast.LoopStmt, env *Env) error {
	for {
		if err := it.execBlock(st.Body, env); err != nil {
			if err == errBreak {
				return nil
			}

			if err == errContinue {
				continue
			}

			return err
		}
	}
}

func (it *Interp) execFor(st *ast.ForStmt, env *Env) error {
	loopEnv := NewEnv(env)

	if st.Init != nil {
		if err := it.execStmt(st.Init, loopEnv); err != nil {
			return err
		}
	}

	for {
		if st.Cond != nil {
			cond, err := it.evalExpr(st.Cond, loopEnv)
			if err != nil {
				return err
			}

			if !asBool(cond) {
				return nil
			}
		}

		if err := it.execBlock(st.Body, loopEnv); err != nil {
			if err == errBreak {
				return nil
			}

			if err != errContinue {
				return err
			}
		}

		if st.Step != nil {
			if _, err := it.evalExpr(st.Step, loopEnv); err != nil {
				return err
			}
		}
	}
}

func (it *Interp) execDeclStmt(ds *ast.DeclStmt, env *Env) error {
	switch d := ds.Decl.(type) {
	case *ast.FunctionDecl:
		if env.declaredLocally(d.Name) {
			return fmt.Errorf("%q already declared", d.Name)
		}

		env.Define(d.Name, &Closure{
			Params: d.ResolvedParams,
			Ret:    d.ResolvedRet,
			Body:   d.Body,
			Env:    env,
		}, false)
	case *ast.StructDecl:
		return it.evalImplConsts(d)
	case *ast.ImplDecl:
		if sd, ok := it.structDecl(d.StructName); ok {
			return it.evalImplConsts(sd)
		}
	case *ast.EnumDecl:
		// enums carry no runtime value of their own; variants are
		// looked up through the resolved types.EnumType at use sites.
	}

	return nil
}

func asBool(v value.Value) bool {
	b, _ := v.(value.Bool)
	return bool(b)
}
