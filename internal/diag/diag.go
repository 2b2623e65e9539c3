// Package diag centralizes source-span error reporting for the resolver;
// the parser reports a *token.PosError directly. It generalizes token.PosError (a single
// lexer error) into a per-run Bag that can collect many errors before
// the caller decides whether to keep going, and adds the colorized
// terminal rendering the CLI prints (§7).
//
// Grounded on the teacher's token.PosError/Explain caret-diagnostic
// style; the Bag accumulator and pkg/errors wrapping follow how
// other_examples' tree-walking interpreters (CWBudde-go-dws,
// MongooseMoo-barn) collect multiple errors per pass instead of
// stopping at the first one.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/golangee/oxide/token"
)

// Bag accumulates errors produced during a single lex/parse/resolve/
// eval pass. A Bag is not safe for concurrent use.
type Bag struct {
	errs []*token.PosError
}

// Add wraps cause (if non-nil) with pkg/errors so later %+v formatting
// keeps a stack trace, and appends a PosError built from node/msg.
func (b *Bag) Add(node token.Located, msg string, cause error) {
	pe := token.NewPosError(node, msg)
	if cause != nil {
		pe.SetCause(errors.WithStack(cause))
	}

	b.errs = append(b.errs, pe)
}

// AddErr appends an already-built PosError, e.g. one returned by the
// lexer.
func (b *Bag) AddErr(err *token.PosError) {
	b.errs = append(b.errs, err)
}

// Len reports how many errors have been collected.
func (b *Bag) Len() int {
	return len(b.errs)
}

// Errs returns the collected errors in report order.
func (b *Bag) Errs() []*token.PosError {
	return b.errs
}

// Err returns a single error combining every collected PosError's
// one-line message, or nil if the bag is empty. Suitable for returning
// from an API that only needs a plain `error`.
func (b *Bag) Err() error {
	if len(b.errs) == 0 {
		return nil
	}

	msgs := make([]string, len(b.errs))
	for i, e := range b.errs {
		msgs[i] = e.Error()
	}

	return errors.New(strings.Join(msgs, "\n"))
}

// AsError returns a *Error wrapping the bag, or nil if the bag is
// empty — lets a caller that only has a plain `error` in hand recover
// the full Bag with errors.As and render it with Print/Explain instead
// of settling for Err's flattened one-line messages (§6 "file, line,
// column, and a human message").
func (b *Bag) AsError() error {
	if len(b.errs) == 0 {
		return nil
	}

	return &Error{Bag: b}
}

// Error adapts a *Bag to the standard `error` interface while staying
// recoverable via errors.As, so a caller several layers removed from
// where the bag was built (the CLI, say) can still reach the
// caret-diagnostic renderer.
type Error struct {
	Bag *Bag
}

func (e *Error) Error() string {
	return e.Bag.Err().Error()
}

// Print writes every collected error's caret-annotated explanation to
// w, colorized unless color.NoColor is set (the CLI wires that to
// --no-color/NO_COLOR). lines is the source text split by line, used
// to reproduce the offending line the way §6 requires.
func (b *Bag) Print(w io.Writer, lines []string) {
	errLabel := color.New(color.FgRed, color.Bold)

	for _, e := range b.errs {
		errLabel.Fprint(w, "error: ")
		fmt.Fprintln(w, e.Error())
		fmt.Fprint(w, e.Explain(lines))
	}
}
