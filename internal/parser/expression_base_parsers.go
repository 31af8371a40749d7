package parser

import (
	"strconv"

	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/token"
)

// parsePrimaryExpr разбирает атомарные выражения: идентификаторы,
// литералы и скобочные формы ((), (e), (a, b)).
func (p *Parser) parsePrimaryExpr() (*ast.Expr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return &ast.Expr{Kind: ast.ExprIdent, Span: tok.Span, Ident: tok.Text}, true

	case token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse:
		return p.parseLiteral()

	case token.LParen:
		return p.parseParenExpr()

	default:
		p.err(diag.SynExpectExpression, "expected expression")
		return nil, false
	}
}

// parseLiteral декодирует значение литерала прямо при разборе.
func (p *Parser) parseLiteral() (*ast.Expr, bool) {
	tok := p.advance()
	lit := &ast.Lit{Text: tok.Text}

	switch tok.Kind {
	case token.IntLit:
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.report(diag.SynBadLiteral, diag.SevError, tok.Span, "integer literal out of range")
			return nil, false
		}
		lit.Kind = ast.LitInt
		lit.Int = v

	case token.FloatLit:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.report(diag.SynBadLiteral, diag.SevError, tok.Span, "malformed float literal")
			return nil, false
		}
		lit.Kind = ast.LitFloat
		lit.Float = v

	case token.StringLit:
		lit.Kind = ast.LitString
		lit.Str = token.Unquote(tok.Text)

	case token.KwTrue, token.KwFalse:
		lit.Kind = ast.LitBool
		lit.Bool = tok.Kind == token.KwTrue

	default:
		p.err(diag.SynExpectExpression, "expected literal")
		return nil, false
	}

	return &ast.Expr{Kind: ast.ExprLit, Span: tok.Span, Lit: lit}, true
}

// parseParenExpr: '()' — unit, '(e)' — группировка, '(a, b, ...)' — кортеж.
func (p *Parser) parseParenExpr() (*ast.Expr, bool) {
	lparen := p.advance() // '('
	p.parenDepth++
	defer func() { p.parenDepth-- }()

	// '()' — unit литерал
	if p.at(token.RParen) {
		rparen := p.advance()
		span := lparen.Span.Cover(rparen.Span)
		return &ast.Expr{
			Kind: ast.ExprLit,
			Span: span,
			Lit:  &ast.Lit{Kind: ast.LitUnit, Text: "()"},
		}, true
	}

	first, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	// '(e)' — просто группировка
	if !p.at(token.Comma) {
		rparen, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		if !ok {
			return nil, false
		}
		return &ast.Expr{
			Kind:  ast.ExprGroup,
			Span:  lparen.Span.Cover(rparen.Span),
			Group: first,
		}, true
	}

	// '(a, b, ...)' — кортеж
	elems := []*ast.Expr{first}
	for p.at(token.Comma) {
		p.advance()
		elem, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		elems = append(elems, elem)
	}
	rparen, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after tuple elements")
	if !ok {
		return nil, false
	}
	return &ast.Expr{
		Kind:  ast.ExprTuple,
		Span:  lparen.Span.Cover(rparen.Span),
		Tuple: elems,
	}, true
}
