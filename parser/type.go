package parser

import (
	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/token"
)

// parseTypeExpr parses a type as written in source (§3): a bare name,
// `any`/`num`, the `nil`/`fn`/`Self` keywords, or `vec`/`vec<T>`.
func (p *Parser) parseTypeExpr() (*ast.TypeExpr, error) {
	begin := p.tok.Begin

	switch p.tok.Kind {
	case token.Vec:
		if err := p.advance(); err != nil {
			return nil, err
		}

		var elem *ast.TypeExpr

		if ok, err := p.accept(token.Lt); err != nil {
			return nil, err
		} else if ok {
			e, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}

			elem = e

			if _, err := p.expect(token.Gt); err != nil {
				return nil, err
			}
		}

		return &ast.TypeExpr{Span: p.span(begin), Name: "vec", Elem: elem}, nil
	case token.Fn:
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.TypeExpr{Span: p.span(begin), Name: "fn"}, nil
	case token.SelfType:
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.TypeExpr{Span: p.span(begin), Name: "Self"}, nil
	case token.Nil:
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.TypeExpr{Span: p.span(begin), Name: "nil"}, nil
	case token.Ident:
		name := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.TypeExpr{Span: p.span(begin), Name: name}, nil
	default:
		return nil, p.errorf("expected a type, found %s", p.tok.Kind)
	}
}

// parseOptionalReturnType parses an optional `-> T`; a missing arrow
// means `-> nil` (§4.2 "Function signature parsing").
func (p *Parser) parseOptionalReturnType() (*ast.TypeExpr, error) {
	if ok, err := p.accept(token.Arrow); err != nil {
		return nil, err
	} else if !ok {
		return nil, nil
	}

	return p.parseTypeExpr()
}

// parseParamList parses `(params)`. When allowSelf is true, a bare
// `self` as the very first parameter is accepted and reported via
// isStatic == false (no type annotation, per §3); otherwise isStatic
// is always true and meaningless to the caller.
func (p *Parser) parseParamList(allowSelf bool) (params []ast.Param, isStatic bool, err error) {
	isStatic = true

	if _, err = p.expect(token.LParen); err != nil {
		return nil, false, err
	}

	first := true

	for !p.at(token.RParen) {
		if first && allowSelf && p.at(token.SelfValue) {
			if err = p.advance(); err != nil {
				return nil, false, err
			}

			isStatic = false
			first = false

			var ok bool

			if ok, err = p.accept(token.Comma); err != nil {
				return nil, false, err
			} else if !ok {
				break
			}

			continue
		}

		first = false

		mut := false
		if ok, aerr := p.accept(token.Mut); aerr != nil {
			return nil, false, aerr
		} else if ok {
			mut = true
		}

		var name token.Token

		if name, err = p.expect(token.Ident); err != nil {
			return nil, false, err
		}

		if _, err = p.expect(token.Colon); err != nil {
			return nil, false, err
		}

		var typ *ast.TypeExpr

		if typ, err = p.parseTypeExpr(); err != nil {
			return nil, false, err
		}

		params = append(params, ast.Param{Name: name.Text, Type: typ, Mut: mut})

		var ok bool

		if ok, err = p.accept(token.Comma); err != nil {
			return nil, false, err
		} else if !ok {
			break
		}
	}

	if _, err = p.expect(token.RParen); err != nil {
		return nil, false, err
	}

	return params, isStatic, nil
}
