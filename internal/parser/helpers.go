package parser

import (
	"weave/internal/diag"
	"weave/internal/source"
	"weave/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan — возвращает лучший span для диагностики.
// Для EOF и пустых Invalid токенов указываем на позицию сразу после
// последнего съеденного токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if (peek.Kind == token.EOF || peek.Kind == token.Invalid) && peek.Span.Empty() {
		if p.lastSpan.End > 0 {
			return source.Span{
				File:  p.lastSpan.File,
				Start: p.lastSpan.End,
				End:   p.lastSpan.End,
			}
		}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter != nil {
		if sev == diag.SevError {
			p.opts.CurrentErrors++
		}
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
			return true
		}
		return false // достигли максимального количества ошибок
	}
	return false // нет reporter - ничего не записали
}

// reportWithFix — как report, но с прикреплённой правкой.
func (p *Parser) reportWithFix(code diag.Code, sp source.Span, msg, fixTitle string, edit diag.FixEdit) bool {
	if p.opts.Reporter == nil {
		return false
	}
	p.opts.CurrentErrors++
	if p.opts.Enough() {
		return false
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg).
		WithFix(fixTitle, edit).
		Emit()
	return true
}

// stmtBreak — правда, если перед следующим токеном перевод строки и мы
// не внутри скобок. В этом месте выражение заканчивается.
func (p *Parser) stmtBreak(tok token.Token) bool {
	return p.parenDepth == 0 && tok.NewlineBefore()
}
