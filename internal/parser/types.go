package parser

import (
	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/token"
)

// parseTypeSyn разбирает тип как он записан в исходнике:
//
//	Int | Float | Bool | String        — именованный тип
//	()                                 — unit
//	(A, B)                             — кортеж
//	(A, B) -> R                        — функциональный тип
func (p *Parser) parseTypeSyn() (*ast.TypeSyn, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return &ast.TypeSyn{Kind: ast.TypeSynName, Span: tok.Span, Name: tok.Text}, true
	case token.LParen:
		return p.parseParenType()
	default:
		p.err(diag.SynExpectType, "expected type")
		return nil, false
	}
}

func (p *Parser) parseParenType() (*ast.TypeSyn, bool) {
	lparen := p.advance() // '('
	p.parenDepth++

	var elems []*ast.TypeSyn
	if !p.at(token.RParen) {
		for {
			elem, ok := p.parseTypeSyn()
			if !ok {
				p.parenDepth--
				return nil, false
			}
			elems = append(elems, elem)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	rparen, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' in type")
	p.parenDepth--
	if !ok {
		return nil, false
	}

	// '->' после скобок — функциональный тип, скобки были списком параметров
	if p.at(token.Arrow) && !p.stmtBreak(p.lx.Peek()) {
		p.advance()
		result, ok := p.parseTypeSyn()
		if !ok {
			return nil, false
		}
		return &ast.TypeSyn{
			Kind:   ast.TypeSynFn,
			Span:   lparen.Span.Cover(result.Span),
			Params: elems,
			Result: result,
		}, true
	}

	switch len(elems) {
	case 0:
		return &ast.TypeSyn{Kind: ast.TypeSynUnit, Span: lparen.Span.Cover(rparen.Span)}, true
	case 1:
		// '(T)' — группировка
		return elems[0], true
	default:
		return &ast.TypeSyn{
			Kind:  ast.TypeSynTuple,
			Span:  lparen.Span.Cover(rparen.Span),
			Elems: elems,
		}, true
	}
}
