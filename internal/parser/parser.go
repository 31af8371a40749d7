package parser

import (
	"slices"

	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/lexer"
	"weave/internal/source"
	"weave/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   *ast.File
	Bag    *diag.Bag // заполняется, только если Reporter — BagReporter
	Errors uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next)
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики

	// Глубина открытых скобок. Внутри скобок переводы строк не
	// завершают выражение.
	parenDepth int
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		fs:       fs,
		opts:     opts,
		lastSpan: lx.Peek().Span.ZeroideToStart(),
	}

	file := p.parseStmts()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File:   file,
		Bag:    bag,
		Errors: p.opts.CurrentErrors,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseStmts — основной цикл верхнего уровня: пока не EOF — parseStmt.
func (p *Parser) parseStmts() *ast.File {
	startSpan := p.lx.Peek().Span
	file := &ast.File{}
	for !p.at(token.EOF) {
		// пустые statements: подряд идущие ';'
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		stmt, ok := p.parseStmt()
		if !ok {
			p.resync()
			continue
		}
		file.Stmts = append(file.Stmts, stmt)
	}
	file.Span = startSpan.Cover(p.lastSpan)
	return file
}

// parseStmt выбирает по первому токену нужный распознаватель.
func (p *Parser) parseStmt() (*ast.Stmt, bool) {
	switch p.lx.Peek().Kind {
	case token.KwVal:
		return p.parseValStmt()
	case token.KwFn:
		return p.parseFnStmt()
	default:
		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if !p.finishStmt() {
			return nil, false
		}
		return &ast.Stmt{Kind: ast.StmtExpr, Span: expr.Span, Expr: expr}, true
	}
}

// finishStmt проверяет, что statement корректно завершён: ';', перевод
// строки перед следующим токеном или EOF. ';' съедается.
func (p *Parser) finishStmt() bool {
	next := p.lx.Peek()
	switch {
	case next.Kind == token.Semicolon:
		p.advance()
		return true
	case next.Kind == token.EOF:
		return true
	case next.NewlineBefore():
		return true
	default:
		p.err(diag.SynTrailingTokens, "expected newline or ';' after statement")
		return false
	}
}

// resync пропускает токены до начала следующего statement: до ';'
// (съедается), до токена на новой строке или до EOF. Первый токен
// съедается безусловно, иначе можно застрять на месте ошибки.
func (p *Parser) resync() {
	p.parenDepth = 0
	for first := true; ; first = false {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			return
		}
		if !first && tok.NewlineBefore() {
			return
		}
		p.advance()
		if tok.Kind == token.Semicolon {
			return
		}
	}
}
