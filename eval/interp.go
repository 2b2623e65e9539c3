// Package eval implements §4.4: a recursive tree walker over the
// resolver's annotated Program, executing it against a chain of
// environments and producing effects/values through the value
// package's runtime model.
//
// Grounded on other_examples' CWBudde-go-dws Eval type-switch dispatch
// (one `case *ast.X:` per node, delegating to evalX helpers) and
// MongooseMoo-barn's environment-holding Evaluator struct shape.
// Control-flow signals are modeled as Go error types carrying the
// break/continue/return payload rather than panics or goroutines,
// matching CWBudde's pattern and explicitly allowed by §4.4 Design
// Notes ("the host language's exceptions are one reasonable encoding,
// but any out-of-band mechanism works").
package eval

import (
	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/resolve"
	"github.com/golangee/oxide/types"
	"github.com/golangee/oxide/value"
)

// Interp holds everything a running program needs beyond the call
// stack itself: the resolved program, the top-level environment, and
// the two pieces of state (in-progress consts, associated const
// values) that don't fit the cell model.
type Interp struct {
	prog   *resolve.Program
	Global *Env

	pendingConsts map[string]bool
	// structConsts holds the evaluated value of every associated
	// constant, keyed "StructName::ConstName" — associated consts are
	// namespaced per struct, not bare names in any frame, so a PathExpr
	// looks them up here rather than through the Env chain.
	structConsts map[string]value.Value

	// selfStack tracks the enclosing struct type across nested calls so
	// that `Self` (the type-level form, §4.2) resolves inside any method
	// body, static or instance — invoke pushes/pops around a call.
	selfStack []*types.StructType
}

// currentSelfType returns the struct type of the innermost method call
// in progress, or nil outside any impl block.
func (it *Interp) currentSelfType() *types.StructType {
	if len(it.selfStack) == 0 {
		return nil
	}

	return it.selfStack[len(it.selfStack)-1]
}

// New builds an Interp with every top-level function bound into the
// global environment as a closure and every struct's associated
// constants evaluated, ready for Run.
func New(prog *resolve.Program) (*Interp, error) {
	it := &Interp{
		Global:        NewEnv(nil),
		pendingConsts: map[string]bool{},
		structConsts:  map[string]value.Value{},
	}

	if err := it.LoadProgram(prog); err != nil {
		return nil, err
	}

	return it, nil
}

// LoadProgram swaps in prog as the struct/enum/function lookup table,
// binding every function prog registers as a global closure and
// evaluating any associated constants not already recorded. The REPL
// calls this once per line with a freshly re-resolved Program spanning
// every line seen so far (§4.4 "the top-level environment persists
// between inputs") — existing Global cells (the running `let`/`const`
// state) are untouched, since only names LoadProgram itself defines
// are rebound.
func (it *Interp) LoadProgram(prog *resolve.Program) error {
	it.prog = prog

	for name, fn := range prog.Functions {
		it.Global.Define(name, &Closure{
			Params: fn.ResolvedParams,
			Ret:    fn.ResolvedRet,
			Body:   fn.Body,
			Env:    it.Global,
		}, false)
	}

	for _, sd := range prog.Structs {
		if err := it.evalImplConsts(sd); err != nil {
			return err
		}
	}

	return nil
}

// Run walks the file's top-level items in source order: top-level
// consts are bound eagerly, bare statements execute immediately (§4.4
// "REPL contract" — a file is the same pipeline the REPL re-enters per
// line, batched).
func (it *Interp) Run() error {
	for _, item := range it.prog.Items {
		if _, err := it.EvalItem(item); err != nil {
			if _, ok := err.(returnSignal); ok {
				return nil
			}

			return err
		}
	}

	return nil
}

// EvalItem executes a single top-level item against the global
// environment, returning the value of an expression statement (so the
// REPL can echo it per §4.4's "expression results are printed") or nil
// for every other item kind.
func (it *Interp) EvalItem(item ast.Node) (value.Value, error) {
	switch v := item.(type) {
	case *ast.TopConstDecl:
		return it.evalTopConst(v)
	case *ast.ExprStmt:
		return it.evalExpr(v.X, it.Global)
	case ast.Stmt:
		return value.Nil{}, it.execStmt(v, it.Global)
	default:
		// FunctionDecl/StructDecl/EnumDecl: already applied by LoadProgram.
		return value.Nil{}, nil
	}
}

func (it *Interp) evalTopConst(cd *ast.TopConstDecl) (value.Value, error) {
	it.pendingConsts[cd.Name] = true

	val, err := it.evalExpr(cd.Value, it.Global)

	delete(it.pendingConsts, cd.Name)

	if err != nil {
		return nil, err
	}

	it.Global.Define(cd.Name, val, false)

	return val, nil
}

// evalImplConsts evaluates sd's associated constants in source order
// into a frame scoped to that struct (so a later const may reference
// an earlier one), recording each result under its "Struct::Name" key.
func (it *Interp) evalImplConsts(sd *ast.StructDecl) error {
	if sd.Impl == nil {
		return nil
	}

	implEnv := NewEnv(it.Global)

	for i := range sd.Impl.Consts {
		cs := &sd.Impl.Consts[i]

		key := sd.Name + "::" + cs.Name
		if _, done := it.structConsts[key]; done {
			continue
		}

		val, err := it.evalExpr(cs.Value, implEnv)
		if err != nil {
			return err
		}

		implEnv.Define(cs.Name, val, false)
		it.structConsts[key] = val
	}

	return nil
}

func (it *Interp) structConst(structName, name string) (value.Value, bool) {
	v, ok := it.structConsts[structName+"::"+name]
	return v, ok
}

func (it *Interp) structDecl(name string) (*ast.StructDecl, bool) {
	sd, ok := it.prog.Structs[name]
	return sd, ok
}

func (it *Interp) enumDecl(name string) (*ast.EnumDecl, bool) {
	ed, ok := it.prog.Enums[name]
	return ed, ok
}
