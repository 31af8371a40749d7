package parser

import (
	"fmt"
	"strings"
	"testing"

	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/lexer"
	"weave/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, src string) Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.wv", []byte(src))
	file := fs.Get(id)
	bag := diag.NewBag(32)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return ParseFile(fs, lx, Options{Reporter: &diag.BagReporter{Bag: bag}})
}

// mustParse разбирает src и требует отсутствия ошибок.
func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	res := parseSource(t, src)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %s", src, diagnosticsSummary(res.Bag))
	}
	return res.File
}

// mustParseExpr разбирает единственный expression statement.
func mustParseExpr(t *testing.T, src string) *ast.Expr {
	t.Helper()
	file := mustParse(t, src)
	if len(file.Stmts) != 1 || file.Stmts[0].Kind != ast.StmtExpr {
		t.Fatalf("expected a single expression statement for %q, got %d stmts", src, len(file.Stmts))
	}
	return file.Stmts[0].Expr
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
