package fmtsrc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangee/oxide/fmtsrc"
	"github.com/golangee/oxide/parser"
)

// printTwice parses src, prints it, reparses the printed text, and
// prints that — the §8 round-trip property holds when both printed
// forms are identical, regardless of how src was originally spaced.
func printTwice(t *testing.T, src string) (string, string) {
	t.Helper()

	file, err := parser.Parse("test.ox", strings.NewReader(src))
	require.NoError(t, err)

	var buf1 strings.Builder
	require.NoError(t, fmtsrc.Print(&buf1, file))

	file2, err := parser.Parse("test.ox", strings.NewReader(buf1.String()))
	require.NoError(t, err)

	var buf2 strings.Builder
	require.NoError(t, fmtsrc.Print(&buf2, file2))

	return buf1.String(), buf2.String()
}

func TestPrinterIsIdempotent(t *testing.T) {
	srcs := []string{
		`fn add(a: int, b: int) -> int { return a + b; }`,
		`struct Point { x: int, y: int, } impl Point { fn sum(self) -> int { return self.x + self.y; } }`,
		`enum Color { Red, Green, Blue }`,
		`let mut v = vec<int>[1, 2, 3]; v.push(4);`,
		`const limit = 10; fn over(n: int) -> bool { return n > limit; }`,
		`fn classify(n: int) -> str { return match true { n == 1 => "one", true => "many", }; }`,
	}

	for _, src := range srcs {
		first, second := printTwice(t, src)
		assert.Equal(t, first, second, "not idempotent for %q", src)
	}
}

func TestPrinterRendersVecLitWithElemType(t *testing.T) {
	out, _ := printTwice(t, `let v = vec<int>[1, 2];`)
	assert.Contains(t, out, "vec<int>[1, 2]")
}

func TestPrinterRendersStructLiteral(t *testing.T) {
	out, _ := printTwice(t, `struct P { x: int, } fn make() -> P { return P { x: 1 }; }`)
	assert.Contains(t, out, "P { x: 1 }")
}

func TestPrinterRendersPathExpr(t *testing.T) {
	out, _ := printTwice(t, `enum Color { Red, Green } fn pick() -> Color { return Color::Red; }`)
	assert.Contains(t, out, "Color::Red")
}

func TestPrinterRendersCompoundAssign(t *testing.T) {
	out, _ := printTwice(t, `fn f() -> int { let mut x = 0; x += 1; return x; }`)
	assert.Contains(t, out, "x += 1")
}
