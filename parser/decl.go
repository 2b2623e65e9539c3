package parser

import (
	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/token"
	"github.com/golangee/oxide/types"
)

// parseFile parses an entire compilation unit: a sequence of top-level
// declarations and bare statements until EOF (§3 "Declarations", §8
// concrete scenarios run statements directly at file scope).
func (p *Parser) parseFile() (*ast.File, error) {
	begin := p.tok.Begin

	var items []ast.Node

	for !p.at(token.EOF) {
		switch p.tok.Kind {
		case token.Fn, token.Struct, token.Enum, token.Impl, token.Const:
			d, err := p.parseTopDecl()
			if err != nil {
				return nil, err
			}

			items = append(items, d)
		default:
			s, err := p.parseStatement()
			if err != nil {
				return nil, err
			}

			items = append(items, s)
		}
	}

	return &ast.File{Span: p.span(begin), Items: items}, nil
}

// parseTopDecl parses one of the declaration forms valid at file scope
// or, via parseDeclStmt, nested inside a block (§4.2).
func (p *Parser) parseTopDecl() (ast.Decl, error) {
	switch p.tok.Kind {
	case token.Fn:
		return p.parseFunctionDecl()
	case token.Struct:
		return p.parseStructDecl()
	case token.Enum:
		return p.parseEnumDecl()
	case token.Impl:
		return p.parseImplDecl()
	case token.Const:
		return p.parseTopConstDecl()
	default:
		return nil, p.errorf("expected a declaration, found %s", p.tok.Kind)
	}
}

func (p *Parser) parseFunctionDecl() (*ast.FunctionDecl, error) {
	begin := p.tok.Begin

	if _, err := p.expect(token.Fn); err != nil {
		return nil, err
	}

	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	params, _, err := p.parseParamList(false)
	if err != nil {
		return nil, err
	}

	ret, err := p.parseOptionalReturnType()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDecl{
		DeclBase: ast.DeclBase{Span: p.span(begin)},
		Name:     name.Text,
		Params:   params,
		Ret:      ret,
		Body:     body,
	}, nil
}

func (p *Parser) parseStructDecl() (*ast.StructDecl, error) {
	begin := p.tok.Begin

	if _, err := p.expect(token.Struct); err != nil {
		return nil, err
	}

	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var fields []ast.FieldDecl

	for !p.at(token.RBrace) {
		vis := types.Private

		if ok, err := p.accept(token.Pub); err != nil {
			return nil, err
		} else if ok {
			vis = types.Public
		}

		fname, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}

		ftype, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		fields = append(fields, ast.FieldDecl{Name: fname.Text, Type: *ftype, Vis: vis})

		if ok, err := p.accept(token.Comma); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	return &ast.StructDecl{
		DeclBase: ast.DeclBase{Span: p.span(begin)},
		Name:     name.Text,
		Fields:   fields,
	}, nil
}

func (p *Parser) parseEnumDecl() (*ast.EnumDecl, error) {
	begin := p.tok.Begin

	if _, err := p.expect(token.Enum); err != nil {
		return nil, err
	}

	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var variants []string

	for !p.at(token.RBrace) {
		v, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}

		variants = append(variants, v.Text)

		if ok, err := p.accept(token.Comma); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	return &ast.EnumDecl{
		DeclBase: ast.DeclBase{Span: p.span(begin)},
		Name:     name.Text,
		Variants: variants,
	}, nil
}

func (p *Parser) parseTopConstDecl() (*ast.TopConstDecl, error) {
	begin := p.tok.Begin

	c, err := p.parseConstStmt()
	if err != nil {
		return nil, err
	}

	return &ast.TopConstDecl{
		DeclBase: ast.DeclBase{Span: p.span(begin)},
		Name:     c.Name,
		Value:    c.Value,
	}, nil
}

// parseImplDecl parses `impl StructName { method|const ... }`. Pairing
// with the matching StructDecl happens in the resolver's global pass
// (§4.3), not here.
func (p *Parser) parseImplDecl() (*ast.ImplDecl, error) {
	begin := p.tok.Begin

	if _, err := p.expect(token.Impl); err != nil {
		return nil, err
	}

	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var methods []ast.MethodDecl

	var consts []ast.ConstStmt

	for !p.at(token.RBrace) {
		vis := types.Private

		if ok, err := p.accept(token.Pub); err != nil {
			return nil, err
		} else if ok {
			vis = types.Public
		}

		switch p.tok.Kind {
		case token.Fn:
			m, err := p.parseMethodDecl(vis)
			if err != nil {
				return nil, err
			}

			methods = append(methods, m)
		case token.Const:
			constBegin := p.tok.Begin

			c, err := p.parseConstStmt()
			if err != nil {
				return nil, err
			}

			c.Vis = vis
			c.Span = p.span(constBegin)
			consts = append(consts, c)
		default:
			return nil, p.errorf("expected fn or const inside impl, found %s", p.tok.Kind)
		}
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	return &ast.ImplDecl{
		DeclBase:   ast.DeclBase{Span: p.span(begin)},
		StructName: name.Text,
		Methods:    methods,
		Consts:     consts,
	}, nil
}

func (p *Parser) parseMethodDecl(vis types.Visibility) (ast.MethodDecl, error) {
	if _, err := p.expect(token.Fn); err != nil {
		return ast.MethodDecl{}, err
	}

	name, err := p.expect(token.Ident)
	if err != nil {
		return ast.MethodDecl{}, err
	}

	params, isStatic, err := p.parseParamList(true)
	if err != nil {
		return ast.MethodDecl{}, err
	}

	ret, err := p.parseOptionalReturnType()
	if err != nil {
		return ast.MethodDecl{}, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return ast.MethodDecl{}, err
	}

	return ast.MethodDecl{
		Name:     name.Text,
		Vis:      vis,
		IsStatic: isStatic,
		Params:   params,
		Ret:      ret,
		Body:     body,
	}, nil
}
