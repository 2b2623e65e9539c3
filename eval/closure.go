package eval

import (
	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/types"
	"github.com/golangee/oxide/value"
)

// Closure is a user-defined function or method value: the checked
// signature, the body, and the environment frame it closed over at
// definition time (§4.4 "a function call pushes a frame whose outer
// link is the callable's captured environment").
type Closure struct {
	Params []types.Param
	Ret    types.Type
	Body   *ast.BlockStmt
	Env    *Env
	// Self is non-nil for a bound instance method: the receiver is
	// already fixed, so invocation binds it to `self` alongside the
	// declared parameters.
	Self *value.Value
	// SelfType is set for any method closure, static or bound, since
	// `Self` (the type-level form) resolves at call time regardless of
	// whether a runtime receiver value exists (§4.2 "Self").
	SelfType *types.StructType
}

func (*Closure) Kind() value.Kind         { return value.KFn }
func (*Closure) CallableKind() value.Kind { return value.KFn }
