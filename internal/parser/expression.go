package parser

import (
	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/source"
	"weave/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (*ast.Expr, bool) {
	cond, ok := p.parseBinaryExpr(0) // минимальный приоритет = 0
	if !ok {
		return nil, false
	}
	if p.at(token.Question) && !p.stmtBreak(p.lx.Peek()) {
		return p.parseTernaryExpr(cond)
	}
	return cond, true
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (*ast.Expr, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	for {
		tok := p.lx.Peek()

		// Оператор на новой строке — statement уже закончился
		if p.stmtBreak(tok) {
			break
		}

		prec, isRightAssoc := p.getBinaryOperatorPrec(tok.Kind)
		if prec < minPrec {
			break // приоритет слишком низкий, либо не оператор
		}

		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after binary operator")
			return nil, false
		}

		op := p.tokenKindToBinaryOp(opTok.Kind)
		left = &ast.Expr{
			Kind: ast.ExprBinary,
			Span: left.Span.Cover(right.Span),
			Binary: &ast.BinaryExpr{
				Op:     op,
				OpSpan: opTok.Span,
				Left:   left,
				Right:  right,
			},
		}
	}

	return left, true
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (*ast.Expr, bool) {
	type prefixOp struct {
		op   ast.ExprUnaryOp
		span source.Span
	}

	var prefixes []prefixOp
	for {
		tok := p.lx.Peek()
		op, ok := p.getUnaryOperator(tok.Kind)
		if !ok {
			break
		}
		opTok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: opTok.Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return nil, false
	}

	// Применяем префиксы изнутри наружу
	for i := len(prefixes) - 1; i >= 0; i-- {
		pre := prefixes[i]
		expr = &ast.Expr{
			Kind: ast.ExprUnary,
			Span: pre.span.Cover(expr.Span),
			Unary: &ast.UnaryExpr{
				Op:      pre.op,
				OpSpan:  pre.span,
				Operand: expr,
			},
		}
	}
	return expr, true
}

// parsePostfixExpr: primary с хвостом вызовов f(...)(...).
// Скобка вызова должна стоять на той же строке, что и callee.
func (p *Parser) parsePostfixExpr() (*ast.Expr, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}
	for p.at(token.LParen) && !p.stmtBreak(p.lx.Peek()) {
		expr, ok = p.parseCallArgs(expr)
		if !ok {
			return nil, false
		}
	}
	return expr, true
}

// parseCallArgs парсит список аргументов вызова: '(' [expr {',' expr}] ')'
func (p *Parser) parseCallArgs(callee *ast.Expr) (*ast.Expr, bool) {
	p.advance() // '('
	p.parenDepth++
	defer func() { p.parenDepth-- }()

	var args []*ast.Expr
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	rparen, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after call arguments")
	if !ok {
		return nil, false
	}
	return &ast.Expr{
		Kind: ast.ExprCall,
		Span: callee.Span.Cover(rparen.Span),
		Call: &ast.CallExpr{
			Callee: callee,
			Args:   args,
		},
	}, true
}
