package parser

import (
	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/token"
)

// parseBlock parses `{ stmt* }`.
func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	begin := p.tok.Begin

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var stmts []ast.Stmt

	for !p.at(token.RBrace) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, s)
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	return &ast.BlockStmt{StmtBase: ast.StmtBase{Span: p.span(begin)}, Stmts: stmts}, nil
}

// parseStatement parses any one of the statement forms of §4.2.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Let:
		return p.parseLetStmt()
	case token.Const:
		begin := p.tok.Begin

		c, err := p.parseConstStmt()
		if err != nil {
			return nil, err
		}

		c.Span = p.span(begin)

		return &c, nil
	case token.Return:
		return p.parseReturnStmt()
	case token.Break:
		return p.parseSimpleKeywordStmt(token.Break, func(s ast.StmtBase) ast.Stmt { return &ast.BreakStmt{StmtBase: s} })
	case token.Continue:
		return p.parseSimpleKeywordStmt(token.Continue, func(s ast.StmtBase) ast.Stmt { return &ast.ContinueStmt{StmtBase: s} })
	case token.If:
		return p.parseIfStmt()
	case token.While:
		return p.parseWhileStmt()
	case token.Loop:
		return p.parseLoopStmt()
	case token.For:
		return p.parseForStmt()
	case token.Fn, token.Struct, token.Enum, token.Impl:
		return p.parseDeclStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseSimpleKeywordStmt(k token.Kind, build func(ast.StmtBase) ast.Stmt) (ast.Stmt, error) {
	begin := p.tok.Begin

	if _, err := p.expect(k); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return build(ast.StmtBase{Span: p.span(begin)}), nil
}

func (p *Parser) parseDeclStmt() (*ast.DeclStmt, error) {
	begin := p.tok.Begin

	d, err := p.parseTopDecl()
	if err != nil {
		return nil, err
	}

	return &ast.DeclStmt{StmtBase: ast.StmtBase{Span: p.span(begin)}, Decl: d}, nil
}

func (p *Parser) parseLetStmt() (*ast.LetStmt, error) {
	begin := p.tok.Begin

	if _, err := p.expect(token.Let); err != nil {
		return nil, err
	}

	mut := false
	if ok, err := p.accept(token.Mut); err != nil {
		return nil, err
	} else if ok {
		mut = true
	}

	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	var typ *ast.TypeExpr

	if ok, err := p.accept(token.Colon); err != nil {
		return nil, err
	} else if ok {
		typ, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}

	var value ast.Expr

	if ok, err := p.accept(token.Assign); err != nil {
		return nil, err
	} else if ok {
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.LetStmt{
		StmtBase: ast.StmtBase{Span: p.span(begin)},
		Name:     name.Text,
		Mut:      mut,
		Type:     typ,
		Value:    value,
	}, nil
}

// parseConstStmt parses `const NAME = e;`, consuming the trailing `;`
// but not setting a span, so statement-position, impl-position and
// top-level callers can each wrap it their own way.
func (p *Parser) parseConstStmt() (ast.ConstStmt, error) {
	if _, err := p.expect(token.Const); err != nil {
		return ast.ConstStmt{}, err
	}

	name, err := p.expect(token.Ident)
	if err != nil {
		return ast.ConstStmt{}, err
	}

	if _, err := p.expect(token.Assign); err != nil {
		return ast.ConstStmt{}, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return ast.ConstStmt{}, err
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return ast.ConstStmt{}, err
	}

	return ast.ConstStmt{Name: name.Text, Value: value}, nil
}

func (p *Parser) parseReturnStmt() (*ast.ReturnStmt, error) {
	begin := p.tok.Begin

	if _, err := p.expect(token.Return); err != nil {
		return nil, err
	}

	var value ast.Expr

	if !p.at(token.Semicolon) {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		value = v
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{StmtBase: ast.StmtBase{Span: p.span(begin)}, Value: value}, nil
}

// parseIfStmt parses `if cond { ... } [else if ... | else { ... }]`.
func (p *Parser) parseIfStmt() (*ast.IfStmt, error) {
	begin := p.tok.Begin

	if _, err := p.expect(token.If); err != nil {
		return nil, err
	}

	cond, err := p.parseExprNoStructLit()
	if err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{StmtBase: ast.StmtBase{Span: p.span(begin)}, Cond: cond, Then: then}

	if ok, err := p.accept(token.Else); err != nil {
		return nil, err
	} else if ok {
		if p.at(token.If) {
			elseIf, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}

			stmt.ElseIf = elseIf
		} else {
			elseBlock, err := p.parseBlock()
			if err != nil {
				return nil, err
			}

			stmt.Else = elseBlock
		}

		stmt.Span = p.span(begin)
	}

	return stmt, nil
}

func (p *Parser) parseWhileStmt() (*ast.WhileStmt, error) {
	begin := p.tok.Begin

	if _, err := p.expect(token.While); err != nil {
		return nil, err
	}

	cond, err := p.parseExprNoStructLit()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{StmtBase: ast.StmtBase{Span: p.span(begin)}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseLoopStmt() (*ast.LoopStmt, error) {
	begin := p.tok.Begin

	if _, err := p.expect(token.Loop); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.LoopStmt{StmtBase: ast.StmtBase{Span: p.span(begin)}, Body: body}, nil
}

// parseForStmt parses `for init? ; cond? ; step? { body }`. Any of the
// three clauses may be empty (§4.4).
func (p *Parser) parseForStmt() (*ast.ForStmt, error) {
	begin := p.tok.Begin

	if _, err := p.expect(token.For); err != nil {
		return nil, err
	}

	var init ast.Stmt

	if !p.at(token.Semicolon) {
		if p.at(token.Let) {
			s, err := p.parseLetStmt()
			if err != nil {
				return nil, err
			}

			init = s
		} else {
			s, err := p.parseExprStmt()
			if err != nil {
				return nil, err
			}

			init = s
		}
	} else {
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
	}

	var cond ast.Expr

	if !p.at(token.Semicolon) {
		c, err := p.parseExprNoStructLit()
		if err != nil {
			return nil, err
		}

		cond = c
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	var step ast.Expr

	if !p.at(token.LBrace) {
		s, err := p.parseExprNoStructLit()
		if err != nil {
			return nil, err
		}

		step = s
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{
		StmtBase: ast.StmtBase{Span: p.span(begin)},
		Init:     init,
		Cond:     cond,
		Step:     step,
		Body:     body,
	}, nil
}

// parseExprStmt parses an expression, consuming its own trailing `;`
// (§4.2's "match... must be terminated with ; when used as a
// statement" falls out naturally here since match is just an
// expression like any other in statement position).
func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	begin := p.tok.Begin

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.ExprStmt{StmtBase: ast.StmtBase{Span: p.span(begin)}, X: e}, nil
}
