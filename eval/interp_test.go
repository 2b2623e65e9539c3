package eval_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangee/oxide/eval"
	"github.com/golangee/oxide/parser"
	"github.com/golangee/oxide/resolve"
	"github.com/golangee/oxide/value"
)

// run parses, resolves, and evaluates src as a full file, returning the
// value EvalItem produced for the last item (as it would hand the REPL).
func run(t *testing.T, src string) (*eval.Interp, value.Value) {
	t.Helper()

	file, err := parser.Parse("test.ox", strings.NewReader(src))
	require.NoError(t, err)

	prog, err := resolve.Resolve(file)
	require.NoError(t, err)

	it, err := eval.New(prog)
	require.NoError(t, err)

	var last value.Value = value.Nil{}

	for _, item := range file.Items {
		v, err := it.EvalItem(item)
		require.NoError(t, err)

		last = v
	}

	return it, last
}

func TestEvalArithmetic(t *testing.T) {
	_, v := run(t, "let x = 2 + 3 * 4; x;")
	assert.Equal(t, value.Int(14), v)
}

func TestEvalStringConcat(t *testing.T) {
	_, v := run(t, `let s = "a" + "b" + "c"; s;`)
	assert.Equal(t, value.Str("abc"), v)
}

func TestEvalDivisionByZero(t *testing.T) {
	file, err := parser.Parse("test.ox", strings.NewReader("1 / 0;"))
	require.NoError(t, err)

	prog, err := resolve.Resolve(file)
	require.NoError(t, err)

	it, err := eval.New(prog)
	require.NoError(t, err)

	_, err = it.EvalItem(file.Items[0])
	require.Error(t, err)
}

func TestEvalIfElse(t *testing.T) {
	_, v := run(t, `
		fn pick(flag: bool) -> int {
			if flag {
				return 1;
			} else {
				return 2;
			}
		}
		pick(true);
	`)
	assert.Equal(t, value.Int(1), v)

	_, v = run(t, `
		fn pick(flag: bool) -> int {
			if flag {
				return 1;
			} else {
				return 2;
			}
		}
		pick(false);
	`)
	assert.Equal(t, value.Int(2), v)
}

func TestEvalWhileLoopAndMutation(t *testing.T) {
	_, v := run(t, `
		fn sum_to(n: int) -> int {
			let mut total = 0;
			let mut i = 0;
			while i < n {
				total += i;
				i += 1;
			}
			return total;
		}
		sum_to(5);
	`)
	assert.Equal(t, value.Int(10), v)
}

func TestEvalStructFieldsAndMethods(t *testing.T) {
	_, v := run(t, `
		struct Point {
			x: int,
			y: int,
		}
		impl Point {
			pub fn sum(self) -> int {
				return self.x + self.y;
			}
		}
		let p = Point { x: 3, y: 4 };
		p.sum();
	`)
	assert.Equal(t, value.Int(7), v)
}

func TestEvalVectorIndexAndPush(t *testing.T) {
	_, v := run(t, `
		let mut v = vec[1, 2, 3];
		v.push(4);
		v[3];
	`)
	assert.Equal(t, value.Int(4), v)
}

func TestEvalVectorPopAndLen(t *testing.T) {
	_, v := run(t, `
		let mut v = vec[1, 2, 3];
		v.push(4);
		let last = v.pop();
		v.len();
	`)
	assert.Equal(t, value.Int(3), v)
}

func TestEvalVectorPopOnEmptyErrors(t *testing.T) {
	file, err := parser.Parse("test.ox", strings.NewReader(`
		let mut v = vec<int>[];
		v.pop();
	`))
	require.NoError(t, err)

	prog, err := resolve.Resolve(file)
	require.NoError(t, err)

	it, err := eval.New(prog)
	require.NoError(t, err)

	for _, item := range file.Items[:len(file.Items)-1] {
		_, err := it.EvalItem(item)
		require.NoError(t, err)
	}

	_, err = it.EvalItem(file.Items[len(file.Items)-1])
	require.Error(t, err)
}

func TestEvalVectorOutOfRangeIsUninit(t *testing.T) {
	_, v := run(t, `
		let v = vec[1, 2];
		v[10];
	`)
	assert.Equal(t, value.Uninit, v)
}

func TestEvalMatchExpr(t *testing.T) {
	_, v := run(t, `
		fn classify(n: int) -> str {
			return match true {
				n == 1 => "one",
				n == 2 => "two",
				true => "many",
			};
		}
		classify(2);
	`)
	assert.Equal(t, value.Str("two"), v)
}

func TestEvalMatchExprNoArmYieldsNil(t *testing.T) {
	_, v := run(t, `
		match 5 {
			1 => "one",
			2 => "two",
		};
	`)
	assert.Equal(t, value.Nil{}, v)
}

func TestEvalClosureCapture(t *testing.T) {
	_, v := run(t, `
		fn make_adder(n: int) -> fn {
			return fn (x: int) -> int { return x + n; };
		}
		let add5 = make_adder(5);
		add5(10);
	`)
	assert.Equal(t, value.Int(15), v)
}

func TestEvalDeferredAssignToImmutableWithoutInitializer(t *testing.T) {
	_, v := run(t, `
		let x: int;
		x = 5;
		x;
	`)
	assert.Equal(t, value.Int(5), v)
}

func TestEvalSecondAssignToDeferredImmutableErrors(t *testing.T) {
	// The loop body assigns x once in the source, so the resolver accepts
	// it; the second iteration makes the second assignment at run time.
	file, err := parser.Parse("test.ox", strings.NewReader(`
		let x: int;
		let mut i = 0;
		while i < 2 {
			x = i;
			i += 1;
		}
	`))
	require.NoError(t, err)

	prog, err := resolve.Resolve(file)
	require.NoError(t, err)

	it, err := eval.New(prog)
	require.NoError(t, err)

	for _, item := range file.Items[:len(file.Items)-1] {
		_, err := it.EvalItem(item)
		require.NoError(t, err)
	}

	_, err = it.EvalItem(file.Items[len(file.Items)-1])
	require.Error(t, err)
}

func TestEvalCompoundFieldAssignEvaluatesReceiverOnce(t *testing.T) {
	_, v := run(t, `
		struct Counter { pub calls: int, pub total: int, }
		impl Counter {
			pub fn bump(self) -> Counter {
				self.calls += 1;
				return self;
			}
		}
		let c = Counter { calls: 0, total: 10 };
		c.bump().total += 1;
		c.calls;
	`)
	assert.Equal(t, value.Int(1), v)
}

func TestEvalEnumEquality(t *testing.T) {
	_, v := run(t, `
		enum Color { Red, Green, Blue }
		Color::Red == Color::Red;
	`)
	assert.Equal(t, value.Bool(true), v)
}
