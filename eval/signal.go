package eval

import "github.com/golangee/oxide/value"

// breakSignal and continueSignal are sentinel errors that unwind the
// Go call stack up to the nearest enclosing loop (§4.4 "Control-flow
// signals": "break/continue propagate to the nearest enclosing loop
// and return to the current function frame and no further"). This is
// CWBudde's pattern of returning sentinel values/errors from eval
// rather than using panics or goroutines for non-local exit.
type breakSignal struct{}

func (breakSignal) Error() string { return "break outside a loop" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue outside a loop" }

// returnSignal carries the value of a `return e;` up to the function
// call that is currently executing.
type returnSignal struct {
	val value.Value
}

func (returnSignal) Error() string { return "return outside a function" }

var (
	errBreak    error = breakSignal{}
	errContinue error = continueSignal{}
)
