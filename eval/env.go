package eval

import (
	"fmt"

	"github.com/golangee/oxide/value"
)

// cell is one named storage slot: a current value, a mutability flag,
// and whether it has ever held a value (§3 GLOSSARY "Cell"). The
// declared type itself is not needed at runtime — assignment
// compatibility is fully enforced statically by the resolver (§4.3);
// the cell only needs to know whether rebinding is allowed at all, and
// an immutable cell without an initializer gets exactly one deferred
// assignment before rebinding locks for good (§3 Invariants).
type cell struct {
	val      value.Value
	mut      bool
	assigned bool
}

// Env is a frame of named cells chained to an outer frame — "a mapping
// of identifiers to cells, with a link to its outer frame" (§3
// GLOSSARY "Frame"). Frames are heap-allocated and shared by handle
// with any closure captured while the frame was live, which is what
// makes closures over mutable cells work (§9 Design Notes).
type Env struct {
	vars  map[string]*cell
	outer *Env
}

// NewEnv creates a fresh frame chained to outer (nil for the top-level
// environment).
func NewEnv(outer *Env) *Env {
	return &Env{vars: map[string]*cell{}, outer: outer}
}

// Define introduces name in this frame with an initial value, shadowing
// any outer binding of the same name (§3 "ordinary variables may be
// freely shadowed"). The cell counts as already assigned — a later
// Set may only succeed if mut is true.
func (e *Env) Define(name string, v value.Value, mut bool) {
	e.vars[name] = &cell{val: v, mut: mut, assigned: true}
}

// DefineUninit introduces name with no initializer. An immutable cell
// defined this way still accepts exactly one Set before it locks (§3
// Invariants: "a cell marked immutable may be assigned at most once
// after declaration without initializer").
func (e *Env) DefineUninit(name string, mut bool) {
	e.vars[name] = &cell{val: value.Uninit, mut: mut}
}

func (e *Env) find(name string) (*cell, bool) {
	for f := e; f != nil; f = f.outer {
		if c, ok := f.vars[name]; ok {
			return c, true
		}
	}

	return nil, false
}

// declaredLocally reports whether name is already bound in this frame
// specifically, ignoring outer frames — mirrors resolve's frame method
// of the same name, used to reject `const`/`fn` redeclaration in the
// same scope at runtime too (§3).
func (e *Env) declaredLocally(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Get looks up name through the frame chain.
func (e *Env) Get(name string) (value.Value, bool) {
	c, ok := e.find(name)
	if !ok {
		return nil, false
	}

	return c.val, true
}

// Set assigns v to the cell already bound to name, honoring the
// mutability flag recorded at Define time. It does not walk past a
// missing binding — the resolver already guarantees name is bound.
func (e *Env) Set(name string, v value.Value) error {
	c, ok := e.find(name)
	if !ok {
		return fmt.Errorf("undefined identifier %q", name)
	}

	if !c.mut {
		if c.assigned {
			return fmt.Errorf("cannot assign to immutable %q", name)
		}

		c.assigned = true
	}

	c.val = v

	return nil
}
