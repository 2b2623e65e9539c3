// Package parser implements the recursive-descent, operator-precedence
// parser of §4.2: token stream to syntax tree. It reports the first
// error encountered and stops (§4.2 "parsing aborts the compilation
// unit") — there is no error-recovery/resynchronization pass.
//
// Grounded on the teacher's top-down parser shape: a single lookahead
// token, an expect/advance pair, and *token.PosError carrying the
// offending node for every failure. The teacher's own parser.go builds
// a participle grammar instead of walking tokens by hand, so the
// statement/expression grammar itself is grounded on the pack's
// hand-rolled recursive-descent interpreters (other_examples'
// sam-decook-lox AST/grammar comment, nooga-paserati's checker) rather
// than on teacher content.
package parser

import (
	"fmt"
	"io"

	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/token"
)

// Parser holds one token of lookahead over a token.Lexer.
type Parser struct {
	lex     *token.Lexer
	tok     token.Token
	peeked  *token.Token
	lastEnd token.Pos // End of the most recently consumed token

	// noStructLit suppresses parsing a bare `Name {` as a struct literal
	// while parsing an if/while/for condition or match scrutinee, where
	// the brace instead opens the body/arm list.
	noStructLit bool
}

// New creates a Parser over lex and primes the first lookahead token.
func New(lex *token.Lexer) (*Parser, error) {
	p := &Parser{lex: lex}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return p, nil
}

// Parse lexes and parses an entire compilation unit from r.
func Parse(filename string, r io.Reader) (*ast.File, error) {
	p, err := New(token.NewLexer(filename, r))
	if err != nil {
		return nil, err
	}

	return p.parseFile()
}

// ParseExpr parses a single expression followed by EOF, with no
// trailing `;`. The REPL does not use it; it parses input with Parse.
func ParseExpr(filename string, r io.Reader) (ast.Expr, error) {
	p, err := New(token.NewLexer(filename, r))
	if err != nil {
		return nil, err
	}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}

	return e, nil
}

func (p *Parser) advance() error {
	p.lastEnd = p.tok.End

	if p.peeked != nil {
		p.tok = *p.peeked
		p.peeked = nil

		return nil
	}

	tok, err := p.lex.Next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

func (p *Parser) peek() (token.Token, error) {
	if p.peeked == nil {
		tok, err := p.lex.Next()
		if err != nil {
			return token.Token{}, err
		}

		p.peeked = &tok
	}

	return *p.peeked, nil
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

// expect consumes the current token if it has kind k, else reports a
// parse error naming k.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.tok.Kind != k {
		return token.Token{}, p.errorf("expected %s, found %s", k, p.tok.Kind)
	}

	tok := p.tok
	err := p.advance()

	return tok, err
}

// accept consumes the current token and reports whether it had kind k.
func (p *Parser) accept(k token.Kind) (bool, error) {
	if p.tok.Kind != k {
		return false, nil
	}

	return true, p.advance()
}

// span builds an ast.Span from begin to the position just before the
// current (not-yet-consumed) token — i.e. the end of the node just
// finished parsing.
func (p *Parser) span(begin token.Pos) ast.Span {
	return ast.NewSpan(begin, p.lastEnd)
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return token.NewPosError(token.NewLocated(p.tok.Begin, p.tok.End), fmt.Sprintf(format, args...))
}
