package resolve

import "github.com/golangee/oxide/types"

// cell is the static counterpart of eval's runtime cell: a declared
// type and a mutability flag, with no value (§4.3 "a typing
// environment identical in shape to the runtime environment"). assigned
// tracks whether the cell has an initializer (or has already received
// its one deferred assignment) — an immutable cell may be assigned
// exactly once when assigned is still false (§3 Invariants: "a cell
// marked immutable may be assigned at most once after declaration
// without initializer; an immutable cell with initializer may never be
// assigned again").
type cell struct {
	typ      types.Type
	mut      bool
	assigned bool
}

// frame is one block's worth of declared cells, chained to its
// lexical parent (§3 "Environments").
type frame struct {
	vars  map[string]*cell
	outer *frame
}

func newFrame(outer *frame) *frame {
	return &frame{vars: map[string]*cell{}, outer: outer}
}

// define introduces or shadows name in the innermost frame (§3
// "ordinary variables may be freely shadowed in any inner or same
// scope").
func (f *frame) define(name string, c *cell) {
	f.vars[name] = c
}

func (f *frame) lookup(name string) (*cell, bool) {
	for fr := f; fr != nil; fr = fr.outer {
		if c, ok := fr.vars[name]; ok {
			return c, true
		}
	}

	return nil, false
}

// declaredLocally reports whether name is already bound in this frame
// specifically, ignoring outer frames — unlike lookup, which walks
// outward for ordinary identifier resolution. Used to detect `const`/
// `fn` redeclaration in the same scope (§3 "redeclaration... in the
// same name-scope is a runtime error"), which must not fire across
// scopes the way ordinary shadowing is allowed to.
func (f *frame) declaredLocally(name string) bool {
	_, ok := f.vars[name]
	return ok
}
