// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangee/oxide/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()

	lex := token.NewLexer("test.ox", strings.NewReader(src))

	var toks []token.Token

	for {
		tok, err := lex.Next()
		require.NoError(t, err)

		toks = append(toks, tok)

		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestLexerKeywordsAndIdents(t *testing.T) {
	toks := scanAll(t, "let mut x = foo_bar;")

	kinds := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	assert.Equal(t, []token.Kind{
		token.Let, token.Mut, token.Ident, token.Assign, token.Ident, token.Semicolon, token.EOF,
	}, kinds)
	assert.Equal(t, "foo_bar", toks[4].Text)
}

func TestLexerNumbers(t *testing.T) {
	toks := scanAll(t, "1 2.5 10 0.1")

	require.Len(t, toks, 5)
	assert.Equal(t, token.Int, toks[0].Kind)
	assert.Equal(t, "1", toks[0].Text)
	assert.Equal(t, token.Float, toks[1].Kind)
	assert.Equal(t, "2.5", toks[1].Text)
	assert.Equal(t, token.Int, toks[2].Kind)
	assert.Equal(t, token.Float, toks[3].Kind)
}

func TestLexerStringEscapes(t *testing.T) {
	toks := scanAll(t, `"hi\n\t\"\\"`)

	require.Len(t, toks, 2)
	assert.Equal(t, token.String, toks[0].Kind)
	assert.Equal(t, "hi\n\t\"\\", toks[0].Text)
}

func TestLexerOperators(t *testing.T) {
	toks := scanAll(t, "+ += - -= -> :: == != <= >= && || !")

	kinds := make([]token.Kind, 0, len(toks)-1)
	for _, tok := range toks[:len(toks)-1] {
		kinds = append(kinds, tok.Kind)
	}

	assert.Equal(t, []token.Kind{
		token.Plus, token.PlusAssign, token.Minus, token.MinusAssign, token.Arrow,
		token.ColonColon, token.Eq, token.NotEq, token.LtEq, token.GtEq, token.AndAnd, token.OrOr, token.Not,
	}, kinds)
}

func TestLexerComments(t *testing.T) {
	toks := scanAll(t, "1 // a comment\n/* block */2")

	require.Len(t, toks, 3)
	assert.Equal(t, "1", toks[0].Text)
	assert.Equal(t, "2", toks[1].Text)
}

func TestLexerUnterminatedString(t *testing.T) {
	lex := token.NewLexer("test.ox", strings.NewReader(`"unterminated`))

	_, err := lex.Next()
	require.Error(t, err)

	var posErr *token.PosError
	require.ErrorAs(t, err, &posErr)
}

func TestLexerUnterminatedBlockComment(t *testing.T) {
	lex := token.NewLexer("test.ox", strings.NewReader("/* nope"))

	_, err := lex.Next()
	require.Error(t, err)
}

func TestLexerUnexpectedChar(t *testing.T) {
	lex := token.NewLexer("test.ox", strings.NewReader("$"))

	_, err := lex.Next()
	require.Error(t, err)
}

func TestLexerPositions(t *testing.T) {
	toks := scanAll(t, "a\nb")

	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Begin.Line)
	assert.Equal(t, 1, toks[0].Begin.Col)
	assert.Equal(t, 2, toks[1].Begin.Line)
	assert.Equal(t, 1, toks[1].Begin.Col)
}
