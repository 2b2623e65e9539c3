package builtin_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangee/oxide/builtin"
	"github.com/golangee/oxide/eval"
	"github.com/golangee/oxide/value"
)

func newEnv(streams builtin.Streams) *eval.Env {
	env := eval.NewEnv(nil)
	builtin.Install(env, streams)

	return env
}

func callNative(t *testing.T, env *eval.Env, name string, args ...value.Value) (value.Value, error) {
	t.Helper()

	v, ok := env.Get(name)
	require.True(t, ok, "built-in %q not installed", name)

	native, ok := v.(*value.Native)
	require.True(t, ok, "%q is not a native", name)

	return native.Call(args)
}

func TestPrintWritesToStdout(t *testing.T) {
	var out bytes.Buffer

	env := newEnv(builtin.Streams{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &bytes.Buffer{}})

	_, err := callNative(t, env, "print", value.Str("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi", out.String())
}

func TestPrintlnAppendsNewline(t *testing.T) {
	var out bytes.Buffer

	env := newEnv(builtin.Streams{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &bytes.Buffer{}})

	_, err := callNative(t, env, "println", value.Str("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out.String())
}

func TestEprintWritesToStderr(t *testing.T) {
	var out, errOut bytes.Buffer

	env := newEnv(builtin.Streams{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &errOut})

	_, err := callNative(t, env, "eprintln", value.Str("oops"))
	require.NoError(t, err)
	assert.Equal(t, "", out.String())
	assert.Equal(t, "oops\n", errOut.String())
}

func TestPrintRejectsNonString(t *testing.T) {
	env := newEnv(builtin.Default())

	_, err := callNative(t, env, "print", value.Int(5))
	require.Error(t, err)
}

func TestReadLineStripsNewline(t *testing.T) {
	env := newEnv(builtin.Streams{Stdin: strings.NewReader("hello\r\n"), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	v, err := callNative(t, env, "read_line")
	require.NoError(t, err)
	assert.Equal(t, value.Str("hello"), v)
}

func TestReadLineAtEOF(t *testing.T) {
	env := newEnv(builtin.Streams{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	v, err := callNative(t, env, "read_line")
	require.NoError(t, err)
	assert.Equal(t, value.Str(""), v)
}

func TestTimestampReturnsInt(t *testing.T) {
	env := newEnv(builtin.Default())

	v, err := callNative(t, env, "timestamp")
	require.NoError(t, err)
	assert.IsType(t, value.Int(0), v)
}

func TestFileWriteRoundTrip(t *testing.T) {
	env := newEnv(builtin.Default())

	path := t.TempDir() + "/out.txt"

	v, err := callNative(t, env, "file_write", value.Str(path), value.Str("contents"))
	require.NoError(t, err)
	assert.Equal(t, value.Str(path), v)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(got))
}

func TestTypeOfReportsKindName(t *testing.T) {
	env := newEnv(builtin.Default())

	v, err := callNative(t, env, "typeof", value.Int(1))
	require.NoError(t, err)
	assert.Equal(t, value.Str("int"), v)
}

func TestArityMismatchErrors(t *testing.T) {
	env := newEnv(builtin.Default())

	_, err := callNative(t, env, "print")
	require.Error(t, err)
}
