package diag_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangee/oxide/internal/diag"
	"github.com/golangee/oxide/token"
)

func TestBagAsErrorNilWhenEmpty(t *testing.T) {
	var bag diag.Bag
	assert.Nil(t, bag.AsError())
}

func TestBagAsErrorRecoverableByErrorsAs(t *testing.T) {
	var bag diag.Bag
	bag.Add(token.NewLocated(token.Pos{File: "t.ox", Line: 1, Col: 1}, token.Pos{File: "t.ox", Line: 1, Col: 2}), "boom", nil)

	err := bag.AsError()
	require.Error(t, err)

	var de *diag.Error
	require.True(t, errors.As(err, &de))
	assert.Same(t, &bag, de.Bag)
	assert.Contains(t, de.Error(), "boom")
}

func TestBagPrintIncludesSourceLine(t *testing.T) {
	var bag diag.Bag
	bag.Add(token.NewLocated(token.Pos{File: "t.ox", Line: 1, Col: 1}, token.Pos{File: "t.ox", Line: 1, Col: 4}), "bad token", nil)

	var buf bytes.Buffer
	bag.Print(&buf, strings.Split("let x", "\n"))

	assert.Contains(t, buf.String(), "bad token")
	assert.Contains(t, buf.String(), "let x")
}
