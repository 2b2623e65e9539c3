// Package builtin implements the host functions of the initial
// environment (§6): print/println/eprint/eprintln, timestamp,
// read_line, file_write, and typeof. Each is wired in as a
// *value.Native so a call site never distinguishes a built-in from a
// user-defined closure.
//
// Grounded on the teacher's habit of keeping I/O at the edges (its CLI
// owns stdin/stdout, never the parser/visitor): Install takes the
// streams explicitly rather than reaching for os.Stdin/os.Stdout,
// which keeps the package embeddable and testable against buffers the
// way `other_examples` interpreter built-ins are.
package builtin

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golangee/oxide/eval"
	"github.com/golangee/oxide/value"
)

// Names lists every built-in in declaration order, matching
// resolve.checker's seeded global names (§6 table) — exported so
// callers (tests, the REPL's completion list) don't need to duplicate
// the literal.
var Names = []string{
	"print", "println", "eprint", "eprintln",
	"timestamp", "read_line", "file_write", "typeof",
}

// Streams bundles the I/O the built-ins read and write; Install binds
// them into env's global frame.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Default wires the process's standard streams.
func Default() Streams {
	return Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Install defines every built-in as an immutable cell in env.
func Install(env *eval.Env, streams Streams) {
	in := bufio.NewReader(streams.Stdin)

	natives := []*value.Native{
		{NameStr: "print", Arity: 1, Fn: printTo(streams.Stdout, false)},
		{NameStr: "println", Arity: 1, Fn: printTo(streams.Stdout, true)},
		{NameStr: "eprint", Arity: 1, Fn: printTo(streams.Stderr, false)},
		{NameStr: "eprintln", Arity: 1, Fn: printTo(streams.Stderr, true)},
		{NameStr: "timestamp", Arity: 0, Fn: timestamp},
		{NameStr: "read_line", Arity: 0, Fn: readLine(in)},
		{NameStr: "file_write", Arity: 2, Fn: fileWrite},
		{NameStr: "typeof", Arity: 1, Fn: typeOf},
	}

	for _, n := range natives {
		env.Define(n.NameStr, n, false)
	}
}

func asStr(v value.Value, argPos int, fn string) (string, error) {
	s, ok := v.(value.Str)
	if !ok {
		return "", fmt.Errorf("%s: argument %d must be str, got %s", fn, argPos, value.KindName(v.Kind()))
	}

	return string(s), nil
}

func printTo(w io.Writer, newline bool) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		s, err := asStr(args[0], 1, "print")
		if err != nil {
			return nil, err
		}

		if newline {
			s += "\n"
		}

		if _, err := io.WriteString(w, s); err != nil {
			return nil, err
		}

		return value.Nil{}, nil
	}
}

func timestamp(args []value.Value) (value.Value, error) {
	return value.Int(time.Now().Unix()), nil
}

func readLine(in *bufio.Reader) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}

		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}

		return value.Str(line), nil
	}
}

func fileWrite(args []value.Value) (value.Value, error) {
	file, err := asStr(args[0], 1, "file_write")
	if err != nil {
		return nil, err
	}

	content, err := asStr(args[1], 2, "file_write")
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		return nil, err
	}

	return value.Str(file), nil
}

func typeOf(args []value.Value) (value.Value, error) {
	return value.Str(value.TypeOf(args[0])), nil
}
