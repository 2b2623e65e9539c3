package resolve_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangee/oxide/parser"
	"github.com/golangee/oxide/resolve"
)

func resolveSrc(t *testing.T, src string) error {
	t.Helper()

	file, err := parser.Parse("test.ox", strings.NewReader(src))
	require.NoError(t, err)

	_, err = resolve.Resolve(file)

	return err
}

func TestResolveAcceptsWellTypedProgram(t *testing.T) {
	err := resolveSrc(t, `
		fn add(a: int, b: int) -> int { return a + b; }
		let x = add(1, 2);
	`)
	require.NoError(t, err)
}

func TestResolveRejectsUndefinedIdentifier(t *testing.T) {
	err := resolveSrc(t, `let x = y;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "y")
}

func TestResolveRejectsDuplicateTopLevelName(t *testing.T) {
	err := resolveSrc(t, `
		fn f() -> nil {}
		struct f { x: int, }
	`)
	require.Error(t, err)
}

func TestResolveRejectsBadReturnType(t *testing.T) {
	err := resolveSrc(t, `fn f() -> int { return "oops"; }`)
	require.Error(t, err)
}

func TestResolveRejectsBreakOutsideLoop(t *testing.T) {
	err := resolveSrc(t, `fn f() -> nil { break; }`)
	require.Error(t, err)
}

func TestResolveAllowsBuiltinCalls(t *testing.T) {
	err := resolveSrc(t, `println("hi");`)
	require.NoError(t, err)
}

func TestResolveRejectsPrivateFieldAccessOutsideStruct(t *testing.T) {
	err := resolveSrc(t, `
		struct Point { x: int, }
		fn f() -> int {
			let p = Point { x: 1 };
			return p.x;
		}
	`)
	require.Error(t, err)
}

func TestResolveAllowsPublicFieldAccess(t *testing.T) {
	err := resolveSrc(t, `
		struct Point { pub x: int, }
		fn f() -> int {
			let p = Point { x: 1 };
			return p.x;
		}
	`)
	require.NoError(t, err)
}

func TestResolveAllowsVectorMethods(t *testing.T) {
	err := resolveSrc(t, `
		fn f() -> int {
			let mut v = vec[1, 2, 3];
			v.push(4);
			return v.len();
		}
	`)
	require.NoError(t, err)
}

func TestResolveRejectsMissingStructField(t *testing.T) {
	err := resolveSrc(t, `
		struct Point { pub x: int, pub y: int, }
		let p = Point { x: 1 };
	`)
	require.Error(t, err)
}

func TestResolveRejectsDuplicateConstInSameScope(t *testing.T) {
	err := resolveSrc(t, `
		fn f() -> nil {
			const x = 1;
			const x = 2;
		}
	`)
	require.Error(t, err)
}

func TestResolveAllowsConstShadowingInNestedScope(t *testing.T) {
	err := resolveSrc(t, `
		fn f() -> nil {
			const x = 1;
			if true {
				const x = 2;
			}
		}
	`)
	require.NoError(t, err)
}

func TestResolveRejectsDuplicateNestedFunctionInSameScope(t *testing.T) {
	err := resolveSrc(t, `
		fn f() -> nil {
			fn g() -> nil {}
			fn g() -> nil {}
		}
	`)
	require.Error(t, err)
}

func TestResolveAllowsLetShadowingInSameScope(t *testing.T) {
	err := resolveSrc(t, `
		fn f() -> int {
			let x = 1;
			let x = 2;
			return x;
		}
	`)
	require.NoError(t, err)
}

func TestResolveRejectsSelfOutsideImpl(t *testing.T) {
	err := resolveSrc(t, `fn f() -> nil { let x = self; }`)
	require.Error(t, err)
}
