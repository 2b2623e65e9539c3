package parser

import (
	"strconv"

	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/token"
)

// parseExpr parses a full expression at the lowest precedence level
// (assignment), with struct literals allowed (§4.2).
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignment()
}

// parseExprNoStructLit parses an expression in a context where a bare
// `Name {` cannot be a struct literal — an `if`/`while`/`for` condition
// or a `match` scrutinee, where the brace instead opens the body/arm
// list. This is the same ambiguity C-family languages with struct
// literals resolve the same way.
func (p *Parser) parseExprNoStructLit() (ast.Expr, error) {
	saved := p.noStructLit
	p.noStructLit = true

	e, err := p.parseAssignment()

	p.noStructLit = saved

	return e, err
}

// parseAssignment implements the right-associative assignment level
// and the assignment-target constraint (§4.2): the left-hand side of
// `=`/`op=` must be an identifier, field access, or index expression.
func (p *Parser) parseAssignment() (ast.Expr, error) {
	begin := p.tok.Begin

	left, err := p.parseLogicOr()
	if err != nil {
		return nil, err
	}

	op, isAssign := assignOp(p.tok.Kind)
	if !isAssign {
		return left, nil
	}

	if !isAssignTarget(left) {
		return nil, p.errorf("invalid assignment target")
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}

	return &ast.AssignExpr{
		ExprBase: ast.ExprBase{Span: p.span(begin)},
		Target:   left,
		Op:       op,
		Value:    value,
	}, nil
}

func isAssignTarget(e ast.Expr) bool {
	switch e.(type) {
	case *ast.IdentExpr, *ast.FieldExpr, *ast.IndexExpr:
		return true
	default:
		return false
	}
}

// assignOp reports the compound binary op a compound-assignment token
// represents, or (_, false) for `=` or any non-assignment token.
func assignOp(k token.Kind) (*ast.BinaryOp, bool) {
	var op ast.BinaryOp

	switch k {
	case token.Assign:
		return nil, true
	case token.PlusAssign:
		op = ast.BinAdd
	case token.MinusAssign:
		op = ast.BinSub
	case token.StarAssign:
		op = ast.BinMul
	case token.SlashAssign:
		op = ast.BinDiv
	case token.PercentAssign:
		op = ast.BinMod
	default:
		return nil, false
	}

	return &op, true
}

func (p *Parser) parseLogicOr() (ast.Expr, error) {
	begin := p.tok.Begin

	left, err := p.parseLogicAnd()
	if err != nil {
		return nil, err
	}

	for p.at(token.OrOr) {
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseLogicAnd()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}, Op: ast.BinOr, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parseLogicAnd() (ast.Expr, error) {
	begin := p.tok.Begin

	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for p.at(token.AndAnd) {
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}, Op: ast.BinAnd, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	begin := p.tok.Begin

	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.at(token.Eq) || p.at(token.NotEq) {
		op := ast.BinEq
		if p.tok.Kind == token.NotEq {
			op = ast.BinNotEq
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}, Op: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	begin := p.tok.Begin

	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for {
		var op ast.BinaryOp

		switch p.tok.Kind {
		case token.Lt:
			op = ast.BinLt
		case token.Gt:
			op = ast.BinGt
		case token.LtEq:
			op = ast.BinLtEq
		case token.GtEq:
			op = ast.BinGtEq
		default:
			return left, nil
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	begin := p.tok.Begin

	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.at(token.Plus) || p.at(token.Minus) {
		op := ast.BinAdd
		if p.tok.Kind == token.Minus {
			op = ast.BinSub
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}, Op: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	begin := p.tok.Begin

	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		var op ast.BinaryOp

		switch p.tok.Kind {
		case token.Star:
			op = ast.BinMul
		case token.Slash:
			op = ast.BinDiv
		case token.Percent:
			op = ast.BinMod
		default:
			return left, nil
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	begin := p.tok.Begin

	var op ast.UnaryOp

	switch p.tok.Kind {
	case token.Minus:
		op = ast.UnaryNeg
	case token.Not:
		op = ast.UnaryNot
	default:
		return p.parsePostfix()
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &ast.UnaryExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}, Op: op, Operand: operand}, nil
}

// parsePostfix parses call/index/field chains on top of a primary
// expression (§4.2 postfix precedence is the highest, above unary).
// `Name::item` paths are parsed as part of the primary itself.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	begin := p.tok.Begin

	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.tok.Kind {
		case token.LParen:
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}

			e = &ast.CallExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}, Callee: e, Args: args}
		case token.LBracket:
			if err := p.advance(); err != nil {
				return nil, err
			}

			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}

			e = &ast.IndexExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}, Receiver: e, Index: idx}
		case token.Dot:
			if err := p.advance(); err != nil {
				return nil, err
			}

			name, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}

			e = &ast.FieldExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}, Receiver: e, Name: name.Text}
		default:
			return e, nil
		}
	}
}

// parseArgs parses `(arg, ...)`, the LParen already current.
func (p *Parser) parseArgs() ([]ast.Expr, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var args []ast.Expr

	for !p.at(token.RParen) {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, a)

		if ok, err := p.accept(token.Comma); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	return args, nil
}

// parsePrimary parses literals, identifiers, grouping, struct/vec
// literals, lambdas, and `match` (§4.2 "Match is primary").
func (p *Parser) parsePrimary() (ast.Expr, error) {
	begin := p.tok.Begin

	switch p.tok.Kind {
	case token.Int:
		v, err := strconv.ParseInt(p.tok.Text, 10, 64)
		if err != nil {
			return nil, p.errorf("malformed int literal %q", p.tok.Text)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.IntLit{ExprBase: ast.ExprBase{Span: p.span(begin)}, Value: v}, nil
	case token.Float:
		v, err := strconv.ParseFloat(p.tok.Text, 64)
		if err != nil {
			return nil, p.errorf("malformed float literal %q", p.tok.Text)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.FloatLit{ExprBase: ast.ExprBase{Span: p.span(begin)}, Value: v}, nil
	case token.String:
		text := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.StringLit{ExprBase: ast.ExprBase{Span: p.span(begin)}, Value: text}, nil
	case token.True, token.False:
		v := p.tok.Kind == token.True
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.BoolLit{ExprBase: ast.ExprBase{Span: p.span(begin)}, Value: v}, nil
	case token.Nil:
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.NilLit{ExprBase: ast.ExprBase{Span: p.span(begin)}}, nil
	case token.SelfValue:
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.SelfExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}}, nil
	case token.LParen:
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}

		return &ast.GroupExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}, Inner: inner}, nil
	case token.Vec:
		return p.parseVecLit(begin)
	case token.Fn:
		return p.parseLambda(begin)
	case token.Match:
		return p.parseMatch(begin)
	case token.SelfType:
		return p.parsePathOrIdent(begin, "Self")
	case token.Ident:
		name := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.finishIdentOrStructLit(begin, name)
	default:
		return nil, p.errorf("unexpected token %s", p.tok.Kind)
	}
}

// parsePathOrIdent handles the `Self` keyword used as the left side of
// a path access (`Self::new`) the same way a struct/enum name is.
func (p *Parser) parsePathOrIdent(begin token.Pos, name string) (ast.Expr, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	return p.finishIdentOrStructLit(begin, name)
}

func (p *Parser) finishIdentOrStructLit(begin token.Pos, name string) (ast.Expr, error) {
	if p.at(token.ColonColon) {
		if err := p.advance(); err != nil {
			return nil, err
		}

		item, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}

		return &ast.PathExpr{
			ExprBase: ast.ExprBase{Span: p.span(begin)},
			Type:     ast.Ident{Span: p.span(begin), Name: name},
			Item:     item.Text,
		}, nil
	}

	if p.at(token.LBrace) && !p.noStructLit {
		return p.parseStructLitBody(begin, name)
	}

	return &ast.IdentExpr{ExprBase: ast.ExprBase{Span: p.span(begin)}, Name: name}, nil
}

func (p *Parser) parseStructLitBody(begin token.Pos, name string) (ast.Expr, error) {
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var fields []ast.StructFieldInit

	for !p.at(token.RBrace) {
		fname, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}

		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		fields = append(fields, ast.StructFieldInit{Name: fname.Text, Value: val})

		if ok, err := p.accept(token.Comma); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	return &ast.StructLitExpr{
		ExprBase: ast.ExprBase{Span: p.span(begin)},
		Type:     ast.Ident{Span: p.span(begin), Name: name},
		Fields:   fields,
	}, nil
}

// parseVecLit parses `vec[e, ...]` or `vec<T>[e, ...]` (§4.2).
func (p *Parser) parseVecLit(begin token.Pos) (ast.Expr, error) {
	if _, err := p.expect(token.Vec); err != nil {
		return nil, err
	}

	var elemType *ast.TypeExpr

	if ok, err := p.accept(token.Lt); err != nil {
		return nil, err
	} else if ok {
		t, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		elemType = t

		if _, err := p.expect(token.Gt); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.LBracket); err != nil {
		return nil, err
	}

	var elems []ast.Expr

	for !p.at(token.RBracket) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)

		if ok, err := p.accept(token.Comma); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}

	if _, err := p.expect(token.RBracket); err != nil {
		return nil, err
	}

	return &ast.VecLitExpr{
		ExprBase: ast.ExprBase{Span: p.span(begin)},
		ElemType: elemType,
		Elements: elems,
	}, nil
}

// parseLambda parses `fn (params) [-> T] block`.
func (p *Parser) parseLambda(begin token.Pos) (ast.Expr, error) {
	if _, err := p.expect(token.Fn); err != nil {
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

	return &ast.LambdaExpr{
		ExprBase: ast.ExprBase{Span: p.span(begin)},
		Params:   params,
		Ret:      ret,
		Body:     body,
	}, nil
}

// parseMatch parses `match scrutinee { pattern => expr, ... }` (§4.2).
func (p *Parser) parseMatch(begin token.Pos) (ast.Expr, error) {
	if _, err := p.expect(token.Match); err != nil {
		return nil, err
	}

	scrutinee, err := p.parseExprNoStructLit()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var arms []ast.MatchArm

	for !p.at(token.RBrace) {
		pattern, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.FatArrow); err != nil {
			return nil, err
		}

		result, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		arms = append(arms, ast.MatchArm{Pattern: pattern, Result: result})

		if ok, err := p.accept(token.Comma); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	return &ast.MatchExpr{
		ExprBase:  ast.ExprBase{Span: p.span(begin)},
		Scrutinee: scrutinee,
		Arms:      arms,
	}, nil
}
