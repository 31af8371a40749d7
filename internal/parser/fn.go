package parser

import (
	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/token"
)

// parseFnStmt разбирает объявление функции:
//
//	fn name(a: Int, b: Int) -> Int = a + b
//
// Тело — ровно одно выражение.
func (p *Parser) parseFnStmt() (*ast.Stmt, bool) {
	fnTok := p.advance() // 'fn'

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name after 'fn'")
	if !ok {
		return nil, false
	}

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return nil, false
	}
	p.parenDepth++

	var params []ast.FnParam
	if !p.at(token.RParen) {
		for {
			param, ok := p.parseFnParam()
			if !ok {
				p.parenDepth--
				return nil, false
			}
			params = append(params, param)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); !ok {
		p.parenDepth--
		return nil, false
	}
	p.parenDepth--

	if _, ok := p.expect(token.Arrow, diag.SynExpectArrow, "expected '->' before result type"); !ok {
		return nil, false
	}
	result, ok := p.parseTypeSyn()
	if !ok {
		return nil, false
	}

	eqTok, ok := p.expect(token.Assign, diag.SynExpectEquals, "expected '=' before function body")
	if !ok {
		return nil, false
	}

	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.finishStmt() {
		return nil, false
	}

	return &ast.Stmt{
		Kind: ast.StmtFn,
		Span: fnTok.Span.Cover(body.Span),
		Fn: &ast.FnStmt{
			Name:     nameTok.Text,
			NameSpan: nameTok.Span,
			Params:   params,
			Result:   result,
			Body:     body,
			FnSpan:   fnTok.Span,
			EqSpan:   eqTok.Span,
		},
	}, true
}

// parseFnParam: name ':' Type
func (p *Parser) parseFnParam() (ast.FnParam, bool) {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
	if !ok {
		return ast.FnParam{}, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name"); !ok {
		return ast.FnParam{}, false
	}
	typeSyn, ok := p.parseTypeSyn()
	if !ok {
		return ast.FnParam{}, false
	}
	return ast.FnParam{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Type:     typeSyn,
		Span:     nameTok.Span.Cover(typeSyn.Span),
	}, true
}
