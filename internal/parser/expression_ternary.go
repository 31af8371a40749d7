package parser

import (
	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/token"
)

// parseTernaryExpr parses: condition ? true_expr : false_expr
// The condition has already been parsed and passed in as `cond`.
// Right-associative: both branches parse a full expression again.
func (p *Parser) parseTernaryExpr(cond *ast.Expr) (*ast.Expr, bool) {
	p.advance() // consume '?'

	trueExpr, ok := p.parseExpr()
	if !ok {
		p.err(diag.SynExpectExpression, "expected expression after '?'")
		return nil, false
	}

	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in ternary expression"); !ok {
		return nil, false
	}

	falseExpr, ok := p.parseExpr()
	if !ok {
		p.err(diag.SynExpectExpression, "expected expression after ':'")
		return nil, false
	}

	return &ast.Expr{
		Kind: ast.ExprTernary,
		Span: cond.Span.Cover(falseExpr.Span),
		Ternary: &ast.TernaryExpr{
			Cond: cond,
			Then: trueExpr,
			Else: falseExpr,
		},
	}, true
}
