package parser

import (
	"testing"

	"weave/internal/ast"
	"weave/internal/diag"
)

func valType(t *testing.T, src string) *ast.TypeSyn {
	t.Helper()
	file := mustParse(t, src)
	if len(file.Stmts) != 1 || file.Stmts[0].Kind != ast.StmtVal {
		t.Fatalf("expected single val statement, got %d statements", len(file.Stmts))
	}
	ts := file.Stmts[0].Val.Type
	if ts == nil {
		t.Fatalf("val statement has no type annotation")
	}
	return ts
}

func TestType_Named(t *testing.T) {
	ts := valType(t, "val x: Int = 1")
	if ts.Kind != ast.TypeSynName || ts.Name != "Int" {
		t.Fatalf("expected named type Int, got kind=%d name=%q", ts.Kind, ts.Name)
	}
}

func TestType_Unit(t *testing.T) {
	ts := valType(t, "val u: () = ()")
	if ts.Kind != ast.TypeSynUnit {
		t.Fatalf("expected unit type, got kind=%d", ts.Kind)
	}
}

func TestType_Tuple(t *testing.T) {
	ts := valType(t, `val p: (Int, String) = f()`)
	if ts.Kind != ast.TypeSynTuple {
		t.Fatalf("expected tuple type, got kind=%d", ts.Kind)
	}
	if len(ts.Elems) != 2 {
		t.Fatalf("expected 2 tuple elements, got %d", len(ts.Elems))
	}
	if ts.Elems[0].Name != "Int" || ts.Elems[1].Name != "String" {
		t.Fatalf("unexpected tuple elements: %q, %q", ts.Elems[0].Name, ts.Elems[1].Name)
	}
}

func TestType_ParensGroupSingle(t *testing.T) {
	// (T) без запятой и стрелки — просто группировка
	ts := valType(t, "val x: (Int) = 1")
	if ts.Kind != ast.TypeSynName || ts.Name != "Int" {
		t.Fatalf("expected (Int) to unwrap to named Int, got kind=%d name=%q", ts.Kind, ts.Name)
	}
}

func TestType_NestedTuple(t *testing.T) {
	ts := valType(t, "val q: ((Int, String), Bool) = f()")
	if ts.Kind != ast.TypeSynTuple || len(ts.Elems) != 2 {
		t.Fatalf("expected 2-tuple, got kind=%d elems=%d", ts.Kind, len(ts.Elems))
	}
	inner := ts.Elems[0]
	if inner.Kind != ast.TypeSynTuple || len(inner.Elems) != 2 {
		t.Fatalf("expected nested 2-tuple, got kind=%d elems=%d", inner.Kind, len(inner.Elems))
	}
	if ts.Elems[1].Name != "Bool" {
		t.Fatalf("expected Bool second element, got %q", ts.Elems[1].Name)
	}
}

func TestType_Fn(t *testing.T) {
	ts := valType(t, "val f: (Int) -> Bool = g")
	if ts.Kind != ast.TypeSynFn {
		t.Fatalf("expected fn type, got kind=%d", ts.Kind)
	}
	if len(ts.Params) != 1 || ts.Params[0].Name != "Int" {
		t.Fatalf("unexpected params: %+v", ts.Params)
	}
	if ts.Result == nil || ts.Result.Name != "Bool" {
		t.Fatalf("unexpected result: %+v", ts.Result)
	}
}

func TestType_FnNoParams(t *testing.T) {
	ts := valType(t, "val f: () -> Int = g")
	if ts.Kind != ast.TypeSynFn || len(ts.Params) != 0 {
		t.Fatalf("expected fn type without params, got kind=%d params=%d", ts.Kind, len(ts.Params))
	}
	if ts.Result == nil || ts.Result.Name != "Int" {
		t.Fatalf("unexpected result: %+v", ts.Result)
	}
}

func TestType_FnRightAssociative(t *testing.T) {
	// (Int) -> (Int) -> Int == (Int) -> ((Int) -> Int)
	ts := valType(t, "val f: (Int) -> (Int) -> Int = g")
	if ts.Kind != ast.TypeSynFn {
		t.Fatalf("expected fn type, got kind=%d", ts.Kind)
	}
	inner := ts.Result
	if inner == nil || inner.Kind != ast.TypeSynFn {
		t.Fatalf("expected fn result, got %+v", inner)
	}
	if inner.Result == nil || inner.Result.Name != "Int" {
		t.Fatalf("unexpected innermost result: %+v", inner.Result)
	}
}

func TestType_FnTupleResult(t *testing.T) {
	// скобки в позиции результата без '->' дальше — кортеж
	ts := valType(t, "val f: (Int) -> (Int, Bool) = g")
	if ts.Kind != ast.TypeSynFn {
		t.Fatalf("expected fn type, got kind=%d", ts.Kind)
	}
	if ts.Result == nil || ts.Result.Kind != ast.TypeSynTuple || len(ts.Result.Elems) != 2 {
		t.Fatalf("expected tuple result, got %+v", ts.Result)
	}
}

func TestType_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{name: "missing type after colon", src: "val x: = 1", code: diag.SynExpectType},
		{name: "unclosed paren type", src: "val x: (Int = 1", code: diag.SynUnclosedParen},
		{name: "fn type requires parens", src: "val f: Int -> Int = g", code: diag.SynExpectEquals},
		{name: "missing fn result", src: "val f: (Int) -> = g", code: diag.SynExpectType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseSource(t, tt.src)
			if res.Errors == 0 {
				t.Fatalf("expected parse errors, got none")
			}
			if !hasCode(res.Bag, tt.code) {
				t.Fatalf("expected code %v, got: %s", tt.code, diagnosticsSummary(res.Bag))
			}
		})
	}
}
