package sema

import (
	"fmt"
	"strings"
	"testing"

	"weave/internal/diag"
	"weave/internal/lexer"
	"weave/internal/parser"
	"weave/internal/source"
	"weave/internal/types"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	items := bag.Items()
	if len(items) == 0 {
		return "<none>"
	}
	lines := make([]string, 0, len(items))
	for _, d := range items {
		lines = append(lines, fmt.Sprintf("%s: %s", d.Code.ID(), d.Message))
	}
	return strings.Join(lines, "; ")
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// checkUnit parses src and checks it against c, returning the combined bag.
// Parse errors fail the test: these tests exercise sema only.
func checkUnit(t *testing.T, c *Checker, src string) *diag.Bag {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("check.wv", []byte(src))
	file := fs.Get(id)
	bag := diag.NewBag(32)
	rep := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(fs, lx, parser.Options{Reporter: rep})
	if res.Errors != 0 {
		t.Fatalf("unexpected parse errors: %s", diagnosticsSummary(bag))
	}
	c.CheckFile(res.File, Options{Reporter: rep})
	return bag
}

func checkSource(t *testing.T, src string) (*Checker, *diag.Bag) {
	t.Helper()
	c := NewChecker(types.NewInterner())
	bag := checkUnit(t, c, src)
	return c, bag
}

func mustCheck(t *testing.T, src string) *Checker {
	t.Helper()
	c, bag := checkSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return c
}

func symbolLabel(t *testing.T, c *Checker, name string) string {
	t.Helper()
	sym := c.Lookup(name)
	if sym == nil {
		t.Fatalf("symbol %q not found in document scope", name)
	}
	return types.Label(c.Types(), sym.Type)
}

func expectSymbol(t *testing.T, c *Checker, name, label string) {
	t.Helper()
	if got := symbolLabel(t, c, name); got != label {
		t.Errorf("%s: expected type %s, got %s", name, label, got)
	}
}

func expectError(t *testing.T, src string, code diag.Code) {
	t.Helper()
	_, bag := checkSource(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics for %q, got none", src)
	}
	if !hasCode(bag, code) {
		t.Fatalf("expected %s, got: %s", code.ID(), diagnosticsSummary(bag))
	}
}

func TestCheck_LiteralInference(t *testing.T) {
	c := mustCheck(t, `
val i = 42
val f = 1.5
val s = "hi"
val b = true
val u = ()
`)
	expectSymbol(t, c, "i", "Int")
	expectSymbol(t, c, "f", "Float")
	expectSymbol(t, c, "s", "String")
	expectSymbol(t, c, "b", "Bool")
	expectSymbol(t, c, "u", "()")
}

func TestCheck_Arithmetic(t *testing.T) {
	c := mustCheck(t, `
val x = 1 + 2 * 3 - 4 / 2 % 3
val y = 1.5 + 2.5
val s = "con" + "cat"
`)
	expectSymbol(t, c, "x", "Int")
	expectSymbol(t, c, "y", "Float")
	expectSymbol(t, c, "s", "String")
}

func TestCheck_ArithmeticErrors(t *testing.T) {
	expectError(t, "val x = 1 + 1.5", diag.SemaInvalidBinaryOperands)
	expectError(t, "val x = 1.5 % 2.0", diag.SemaInvalidBinaryOperands)
	expectError(t, `val x = "a" - "b"`, diag.SemaInvalidBinaryOperands)
	expectError(t, "val x = true + false", diag.SemaInvalidBinaryOperands)
}

func TestCheck_Comparisons(t *testing.T) {
	c := mustCheck(t, `
val a = 1 < 2
val b = "x" <= "y"
val c = 1.5 > 0.5
val d = (1, "s") == (2, "t")
val e = () != ()
`)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		expectSymbol(t, c, name, "Bool")
	}
}

func TestCheck_ComparisonErrors(t *testing.T) {
	expectError(t, "val x = true < false", diag.SemaInvalidBinaryOperands)
	expectError(t, `val x = 1 == "one"`, diag.SemaInvalidBinaryOperands)
	expectError(t, "fn f(a: Int) -> Int = a\nval g = f\nval x = g == g", diag.SemaInvalidBinaryOperands)
}

func TestCheck_Logical(t *testing.T) {
	c := mustCheck(t, "val a = true && false || true")
	expectSymbol(t, c, "a", "Bool")
	expectError(t, "val x = 1 && true", diag.SemaInvalidBinaryOperands)
}

func TestCheck_Unary(t *testing.T) {
	c := mustCheck(t, `
val a = -1
val b = -1.5
val c = !true
`)
	expectSymbol(t, c, "a", "Int")
	expectSymbol(t, c, "b", "Float")
	expectSymbol(t, c, "c", "Bool")

	expectError(t, "val x = -true", diag.SemaInvalidUnaryOperand)
	expectError(t, "val x = !3", diag.SemaInvalidUnaryOperand)
}

func TestCheck_Ternary(t *testing.T) {
	c := mustCheck(t, "val x = 1 < 2 ? 10 : 20")
	expectSymbol(t, c, "x", "Int")

	expectError(t, `val x = true ? 1 : "one"`, diag.SemaTypeMismatch)
	expectError(t, "val x = 1 ? 2 : 3", diag.SemaInvalidCondition)
}

func TestCheck_Annotations(t *testing.T) {
	c := mustCheck(t, `
val x: Int = 1
val p: (Int, String) = (1, "a")
val u: () = ()
`)
	expectSymbol(t, c, "x", "Int")
	expectSymbol(t, c, "p", "(Int, String)")
	expectSymbol(t, c, "u", "()")
}

func TestCheck_AnnotationMismatchBindsDeclared(t *testing.T) {
	c, bag := checkSource(t, `val x: Int = "oops"`)
	if !hasCode(bag, diag.SemaTypeMismatch) {
		t.Fatalf("expected type mismatch, got: %s", diagnosticsSummary(bag))
	}
	// Recovery keeps the declared type so later references stay typed.
	expectSymbol(t, c, "x", "Int")
}

func TestCheck_UnknownTypeName(t *testing.T) {
	expectError(t, "val x: Foo = 1", diag.SemaUnknownType)
}

func TestCheck_Destructuring(t *testing.T) {
	c := mustCheck(t, `
val p = (1, "a")
val (n, s) = p
val ((a, b), flag) = ((1, 2), true)
`)
	expectSymbol(t, c, "n", "Int")
	expectSymbol(t, c, "s", "String")
	expectSymbol(t, c, "a", "Int")
	expectSymbol(t, c, "b", "Int")
	expectSymbol(t, c, "flag", "Bool")
}

func TestCheck_DestructuringErrors(t *testing.T) {
	expectError(t, "val (a, b, c) = (1, 2)", diag.SemaTupleArityMismatch)
	expectError(t, "val (a, b) = 5", diag.SemaNotATuple)
}

func TestCheck_FnDeclaration(t *testing.T) {
	c := mustCheck(t, `
fn add(a: Int, b: Int) -> Int = a + b
val s = add(1, 2)
`)
	expectSymbol(t, c, "add", "(Int, Int) -> Int")
	expectSymbol(t, c, "s", "Int")
}

func TestCheck_FnRecursion(t *testing.T) {
	c := mustCheck(t, "fn fact(n: Int) -> Int = n <= 1 ? 1 : n * fact(n - 1)")
	expectSymbol(t, c, "fact", "(Int) -> Int")
}

func TestCheck_FnBodyMismatch(t *testing.T) {
	expectError(t, `fn bad(a: Int) -> Int = "nope"`, diag.SemaTypeMismatch)
}

func TestCheck_FnAsValue(t *testing.T) {
	c := mustCheck(t, `
fn inc(a: Int) -> Int = a + 1
val g = inc
val y = g(4)
`)
	expectSymbol(t, c, "g", "(Int) -> Int")
	expectSymbol(t, c, "y", "Int")

	expectError(t, "fn inc(a: Int) -> Int = a + 1\nval g = inc\nval z = g(true)", diag.SemaTypeMismatch)
	expectError(t, "fn inc(a: Int) -> Int = a + 1\nval z = inc(1, 2)", diag.SemaWrongArgCount)
}

func TestCheck_ParamsShadowDocumentScope(t *testing.T) {
	c := mustCheck(t, `
val a = "outer"
fn twice(a: Int) -> Int = a * 2
val b = twice(4)
`)
	expectSymbol(t, c, "a", "String")
	expectSymbol(t, c, "b", "Int")
}

func TestCheck_NotCallable(t *testing.T) {
	expectError(t, "val x = 5\nval y = x(1)", diag.SemaNotCallable)
}

func TestCheck_UnresolvedDoesNotCascade(t *testing.T) {
	_, bag := checkSource(t, `
val y = nope
val z = y
val w = z + 1
`)
	errs := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			errs++
		}
	}
	if errs != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %s", errs, diagnosticsSummary(bag))
	}
	if !hasCode(bag, diag.SemaUnresolvedSymbol) {
		t.Fatalf("expected unresolved symbol, got: %s", diagnosticsSummary(bag))
	}
}

func TestCheck_DuplicateDefinition(t *testing.T) {
	_, bag := checkSource(t, "val x = 1\nval x = 2")
	if !hasCode(bag, diag.SemaDuplicateSymbol) {
		t.Fatalf("expected duplicate symbol, got: %s", diagnosticsSummary(bag))
	}
	for _, d := range bag.Items() {
		if d.Code == diag.SemaDuplicateSymbol && len(d.Notes) == 0 {
			t.Fatalf("expected a note pointing at the previous definition")
		}
	}
}

func TestCheck_DuplicateInPattern(t *testing.T) {
	expectError(t, "val (x, x) = (1, 2)", diag.SemaDuplicateSymbol)
}

func TestCheck_ShadowingBuiltinRejected(t *testing.T) {
	_, bag := checkSource(t, "val println = 1")
	if !hasCode(bag, diag.SemaDuplicateSymbol) {
		t.Fatalf("expected duplicate symbol, got: %s", diagnosticsSummary(bag))
	}
}

func TestCheck_ReservedNames(t *testing.T) {
	expectError(t, "val __w_x = 1", diag.SemaReservedName)
	expectError(t, "fn __w_f(a: Int) -> Int = a", diag.SemaReservedName)
	expectError(t, "fn f(__w_a: Int) -> Int = 1", diag.SemaReservedName)
}

func TestCheck_BuiltinCalls(t *testing.T) {
	c := mustCheck(t, `
val u = println("hi")
val n = len("abc")
val s = str(42)
val a = abs(0 - 3)
val f = abs(1.5)
val m = min(1, 2)
val x = max(1.5, 2.5)
`)
	expectSymbol(t, c, "u", "()")
	expectSymbol(t, c, "n", "Int")
	expectSymbol(t, c, "s", "String")
	expectSymbol(t, c, "a", "Int")
	expectSymbol(t, c, "f", "Float")
	expectSymbol(t, c, "m", "Int")
	expectSymbol(t, c, "x", "Float")
}

func TestCheck_BuiltinCallErrors(t *testing.T) {
	expectError(t, "val x = len(5)", diag.SemaTypeMismatch)
	expectError(t, "val x = min(1, 2.0)", diag.SemaTypeMismatch)
	expectError(t, "val x = abs(true)", diag.SemaTypeMismatch)
	expectError(t, `val x = println("a", "b")`, diag.SemaWrongArgCount)
	expectError(t, "val x = str()", diag.SemaWrongArgCount)
}

func TestCheck_BuiltinIsNotAValue(t *testing.T) {
	expectError(t, "val p = println", diag.SemaTypeMismatch)
}

func TestCheck_InstrumentedProgramShape(t *testing.T) {
	// The exact statement shapes the instrumenter emits must check clean.
	mustCheck(t, `__w_sect()
__w_pos(1, 1, 1, 10)
val x = 41 ;__w_bind("x", x, 1, 5);__w_end()
__w_pos(2, 1, 2, 12)
val res0 = x + 1 ;__w_bind("res0", res0, 2, 5);__w_end()
__w_close()
`)
}

func TestCheck_ProbeBindsNonUnit(t *testing.T) {
	c := mustCheck(t, `val res0 = __w_probe("val x = ")`)
	sym := c.Lookup("res0")
	if sym == nil {
		t.Fatalf("probe binding not found")
	}
	tt, ok := c.Types().Lookup(sym.Type)
	if !ok || tt.Kind != types.KindProbe {
		t.Fatalf("expected probe type, got %s", types.Label(c.Types(), sym.Type))
	}
}

func TestCheck_IntrinsicArgErrors(t *testing.T) {
	expectError(t, "__w_pos(1, 1, 1)", diag.SemaWrongArgCount)
	expectError(t, `__w_pos("a", 1, 1, 1)`, diag.SemaTypeMismatch)
	expectError(t, `val x = 1 ;__w_bind(2, x, 1, 1)`, diag.SemaTypeMismatch)
	expectError(t, "val x = __w_probe(42)", diag.SemaTypeMismatch)
}

func TestCheck_ScopePersistsAcrossUnits(t *testing.T) {
	c := NewChecker(types.NewInterner())
	if bag := checkUnit(t, c, "val x = 41"); bag.HasErrors() {
		t.Fatalf("first unit: %s", diagnosticsSummary(bag))
	}
	if bag := checkUnit(t, c, "val y = x + 1"); bag.HasErrors() {
		t.Fatalf("second unit: %s", diagnosticsSummary(bag))
	}
	expectSymbol(t, c, "y", "Int")
}

func TestCheck_ResetDropsDocumentScope(t *testing.T) {
	c := NewChecker(types.NewInterner())
	if bag := checkUnit(t, c, "val x = 1"); bag.HasErrors() {
		t.Fatalf("seed unit: %s", diagnosticsSummary(bag))
	}
	c.Reset()
	bag := checkUnit(t, c, "val y = x")
	if !hasCode(bag, diag.SemaUnresolvedSymbol) {
		t.Fatalf("expected unresolved after reset, got: %s", diagnosticsSummary(bag))
	}
	if c.Lookup("println") == nil {
		t.Fatalf("built-ins must survive a reset")
	}
}

func TestCheck_FnTypeAnnotation(t *testing.T) {
	c := mustCheck(t, `
fn inc(a: Int) -> Int = a + 1
val g: (Int) -> Int = inc
`)
	expectSymbol(t, c, "g", "(Int) -> Int")

	expectError(t, "fn inc(a: Int) -> Int = a + 1\nval g: (Float) -> Int = inc", diag.SemaTypeMismatch)
}
