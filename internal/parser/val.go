package parser

import (
	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/token"
)

// parseValStmt разбирает объявление значения:
//
//	val name = expr
//	val name: Type = expr
//	val (a, b) = expr
func (p *Parser) parseValStmt() (*ast.Stmt, bool) {
	valTok := p.advance() // 'val'

	pattern, ok := p.parsePattern()
	if !ok {
		return nil, false
	}

	var typeSyn *ast.TypeSyn
	if p.at(token.Colon) {
		p.advance()
		typeSyn, ok = p.parseTypeSyn()
		if !ok {
			return nil, false
		}
	}

	if !p.at(token.Assign) {
		sp := p.getDiagnosticSpan()
		p.reportWithFix(diag.SynExpectEquals, sp,
			"expected '=' in val declaration",
			"insert '='",
			diag.FixEdit{Span: sp.ZeroideToStart(), NewText: "= "})
		return nil, false
	}
	eqTok := p.advance()

	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.finishStmt() {
		return nil, false
	}

	return &ast.Stmt{
		Kind: ast.StmtVal,
		Span: valTok.Span.Cover(value.Span),
		Val: &ast.ValStmt{
			Pattern: pattern,
			Type:    typeSyn,
			Value:   value,
			ValSpan: valTok.Span,
			EqSpan:  eqTok.Span,
		},
	}, true
}

// parsePattern разбирает образец привязки: имя или кортеж образцов.
func (p *Parser) parsePattern() (*ast.Pattern, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return &ast.Pattern{Kind: ast.PatternName, Span: tok.Span, Name: tok.Text}, true

	case token.LParen:
		lparen := p.advance()
		p.parenDepth++
		defer func() { p.parenDepth-- }()

		if p.at(token.RParen) {
			rparen := p.advance()
			p.report(diag.SynEmptyTuple, diag.SevError,
				lparen.Span.Cover(rparen.Span), "empty destructuring pattern")
			return nil, false
		}

		var elems []*ast.Pattern
		for {
			elem, ok := p.parsePattern()
			if !ok {
				return nil, false
			}
			elems = append(elems, elem)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		rparen, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' in pattern")
		if !ok {
			return nil, false
		}
		// '(a)' — не кортеж, просто скобки вокруг образца
		if len(elems) == 1 {
			return elems[0], true
		}
		return &ast.Pattern{
			Kind:  ast.PatternTuple,
			Span:  lparen.Span.Cover(rparen.Span),
			Elems: elems,
		}, true

	default:
		p.err(diag.SynExpectPatternName, "expected name or tuple pattern after 'val'")
		return nil, false
	}
}
