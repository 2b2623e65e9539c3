// Package resolve implements §4.3: the global declaration pass and the
// per-function/per-body typing pass that decorates the tree built by
// parser with resolved types, ready for eval to walk without
// rechecking anything.
//
// Grounded on other_examples' nooga-paserati pkg/checker Environment
// (symbols map + outer pointer, Define/Resolve) for the typed
// environment chain — the shape §3's "Environments" section demands
// reused for static types instead of runtime values. Diagnostics are
// collected with internal/diag (teacher-grounded) so every error in a
// pass is reported, not just the first.
package resolve

import "github.com/golangee/oxide/ast"

// Resolve runs the global pass then the per-body pass over file,
// returning the fully-typed Program or the first diag.Bag's combined
// error.
func Resolve(file *ast.File) (*Program, error) {
	prog, bag := globalPass(file)
	if bag.Len() > 0 {
		return nil, bag.AsError()
	}

	c := newChecker(prog)

	for _, fn := range prog.Functions {
		c.checkFunction(fn)
	}

	for _, sd := range prog.Structs {
		c.checkStructImpl(sd)
	}

	// Top-level consts and bare statements are checked together, in
	// source order, against the same global frame consts are bound
	// into — this is what makes a top-level `let` visible to a later
	// top-level statement (§4.4 "REPL contract": "the top-level
	// environment persists between inputs", which a whole file is just
	// a batch of).
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.TopConstDecl:
			c.checkTopConst(it)
		case ast.Stmt:
			c.checkStmt(it, c.globalFrame)
		}
	}

	if c.bag.Len() > 0 {
		return nil, c.bag.AsError()
	}

	return prog, nil
}
