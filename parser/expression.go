package parser

import "github.com/metaphox/mosaic-lang/ast"

// ── Expressions ───────────────────────────────────────────────────────────────
//
// Precedence, lowest first:
//
//	||   &&   |   ^   &   == !=   > >= < <=   << >>   + -   / * %   unary   call
//
// Every binary level is left-associative. An operator has to sit on the same
// line as the end of its left operand; a line break ends the expression.

// binaryOperatorMatcher consumes the operator of one precedence level if the
// upcoming tokens spell one.
type binaryOperatorMatcher func(p *Parser) (ast.BinaryOperator, bool)

func (p *Parser) parseExpression() ast.Expression {
	return p.parseLogicOr()
}

// parseBinary parses operand (op operand)* and folds it to the left.
func (p *Parser) parseBinary(operand func() ast.Expression, match binaryOperatorMatcher) ast.Expression {
	left := operand()
	for p.sameLine() {
		op, ok := match(p)
		if !ok {
			break
		}
		right := operand()
		left = ast.Binary{Left: left, Right: right, Operator: op}
	}
	return left
}

func (p *Parser) parseLogicOr() ast.Expression {
	return p.parseBinary(p.parseLogicAnd, func(p *Parser) (ast.BinaryOperator, bool) {
		return ast.LogicOr, p.matchSeq(ast.PIPE, ast.PIPE)
	})
}

func (p *Parser) parseLogicAnd() ast.Expression {
	return p.parseBinary(p.parseBitwiseOr, func(p *Parser) (ast.BinaryOperator, bool) {
		return ast.LogicAnd, p.matchSeq(ast.AMPERSAND, ast.AMPERSAND)
	})
}

func (p *Parser) parseBitwiseOr() ast.Expression {
	return p.parseBinary(p.parseBitwiseXor, func(p *Parser) (ast.BinaryOperator, bool) {
		return ast.BitwiseOr, p.matchSingle(ast.PIPE)
	})
}

func (p *Parser) parseBitwiseXor() ast.Expression {
	return p.parseBinary(p.parseBitwiseAnd, func(p *Parser) (ast.BinaryOperator, bool) {
		return ast.BitwiseXor, p.match(ast.CARET)
	})
}

func (p *Parser) parseBitwiseAnd() ast.Expression {
	return p.parseBinary(p.parseEquality, func(p *Parser) (ast.BinaryOperator, bool) {
		return ast.BitwiseAnd, p.matchSingle(ast.AMPERSAND)
	})
}

func (p *Parser) parseEquality() ast.Expression {
	return p.parseBinary(p.parseComparison, func(p *Parser) (ast.BinaryOperator, bool) {
		switch {
		case p.matchSeq(ast.EQUAL, ast.EQUAL):
			return ast.Equal, true
		case p.matchSeq(ast.BANG, ast.EQUAL):
			return ast.NotEqual, true
		}
		return 0, false
	})
}

func (p *Parser) parseComparison() ast.Expression {
	return p.parseBinary(p.parseShift, func(p *Parser) (ast.BinaryOperator, bool) {
		switch {
		case p.matchSeq(ast.GREATER_THAN, ast.EQUAL):
			return ast.GreaterThanOrEqual, true
		case p.matchSeq(ast.LESS_THAN, ast.EQUAL):
			return ast.LessThanOrEqual, true
		case p.matchSingle(ast.GREATER_THAN):
			return ast.GreaterThan, true
		case p.matchSingle(ast.LESS_THAN):
			return ast.LessThan, true
		}
		return 0, false
	})
}

func (p *Parser) parseShift() ast.Expression {
	return p.parseBinary(p.parseTerm, func(p *Parser) (ast.BinaryOperator, bool) {
		switch {
		case p.matchSeq(ast.LESS_THAN, ast.LESS_THAN):
			return ast.LeftShift, true
		case p.matchSeq(ast.GREATER_THAN, ast.GREATER_THAN):
			return ast.RightShift, true
		}
		return 0, false
	})
}

func (p *Parser) parseTerm() ast.Expression {
	return p.parseBinary(p.parseFactor, func(p *Parser) (ast.BinaryOperator, bool) {
		switch {
		case p.match(ast.PLUS):
			return ast.Plus, true
		case p.match(ast.MINUS):
			return ast.Minus, true
		}
		return 0, false
	})
}

func (p *Parser) parseFactor() ast.Expression {
	return p.parseBinary(p.parseUnary, func(p *Parser) (ast.BinaryOperator, bool) {
		switch {
		case p.match(ast.SLASH):
			return ast.Divide, true
		case p.match(ast.STAR):
			return ast.Multiply, true
		case p.match(ast.PERCENT):
			return ast.Remainder, true
		}
		return 0, false
	})
}

func (p *Parser) parseUnary() ast.Expression {
	switch {
	case p.match(ast.BANG):
		return ast.Unary{Operand: p.parseUnary(), Operator: ast.Not}
	case p.match(ast.MINUS):
		return ast.Unary{Operand: p.parseUnary(), Operator: ast.Negate}
	}
	return p.parseCall()
}

// parseCall parses a primary expression and, when it is a getter directly
// followed by '(' on the same line, the argument list of a call.
func (p *Parser) parseCall() ast.Expression {
	expr := p.parsePrimary()
	getter, ok := expr.(ast.Getter)
	if !ok || !p.sameLine() || !p.match(ast.LPAREN) {
		return expr
	}

	var args []ast.Expression
	if !p.match(ast.RPAREN) {
		args = append(args, p.parseExpression())
		for p.match(ast.COMMA) {
			args = append(args, p.parseExpression())
		}
		p.consume(ast.RPAREN, "expected ')' after arguments")
	}
	return ast.Call{Callee: getter, Arguments: args}
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.peek().Type {
	case ast.SELF, ast.IDENT:
		return p.parseGetter()
	case ast.TRUE:
		p.advance()
		return ast.BoolLiteral{Value: true}
	case ast.FALSE:
		p.advance()
		return ast.BoolLiteral{Value: false}
	case ast.NIL:
		p.advance()
		return ast.NilLiteral{}
	case ast.INTEGER_LITERAL:
		return ast.IntegerLiteral{Token: p.advance()}
	case ast.FIXED_LITERAL:
		return ast.FixedLiteral{Token: p.advance()}
	case ast.STRING_LITERAL:
		return ast.StringLiteral{Token: p.advance()}
	case ast.ARRAY_LITERAL:
		return ast.ArrayLiteral{Token: p.advance()}
	case ast.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.consume(ast.RPAREN, "expected ')' after expression")
		return ast.Grouping{Inner: inner}
	case ast.EOF:
		p.fail(UnexpectedEndOfFile, msgExpectExpression)
	}
	p.fail(UnexpectedToken, msgExpectExpression)
	return nil
}

// parseGetter parses `self`, `self.a.b` or `a.b.c`. The chain stops at a line
// break.
func (p *Parser) parseGetter() ast.Getter {
	var g ast.Getter
	if p.check(ast.SELF) {
		tok := p.advance()
		g.Self = &tok
	} else {
		g.Path = append(g.Path, ast.Identifier{Token: p.consume(ast.IDENT, "expected identifier")})
	}
	for p.sameLine() && p.match(ast.DOT) {
		g.Path = append(g.Path, ast.Identifier{Token: p.consume(ast.IDENT, "expected identifier after '.'")})
	}
	return g
}
