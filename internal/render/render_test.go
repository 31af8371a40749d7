package render_test

import (
	"errors"
	"strings"
	"testing"

	"weave/internal/diag"
	"weave/internal/document"
	"weave/internal/instrument"
	"weave/internal/render"
	"weave/internal/types"
	"weave/internal/vm"
)

var interner = types.NewInterner()

func fragmentOf(texts ...string) instrument.Fragment {
	stmts := make([]instrument.Statement, len(texts))
	for i, t := range texts {
		stmts[i] = instrument.Statement{Text: t}
	}
	return instrument.Fragment{Stmts: stmts}
}

func snippet(mode instrument.Mode, texts ...string) instrument.Snippet {
	return instrument.Snippet{Fragment: fragmentOf(texts...), Mode: mode}
}

func section(stmts ...document.Statement) document.Section {
	return document.Section{Stmts: stmts}
}

func binder(name string, v vm.Value) document.Binder {
	return document.Binder{Name: name, Value: v}
}

func intVal(n int64) vm.Value {
	return vm.MakeInt(n, interner.Builtins().Int)
}

func probeVal(res *vm.ProbeResult) vm.Value {
	return vm.MakeProbe(res, interner.Builtins().Probe)
}

func typeErrorDiags(msg string) []diag.Diagnostic {
	return []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.SemaTypeMismatch,
		Message:  msg,
	}}
}

type captureSink struct {
	errs []string
}

func (s *captureSink) Error(msg string) {
	s.errs = append(s.errs, msg)
}

func renderOne(t *testing.T, sec document.Section, sn instrument.Snippet) string {
	t.Helper()
	text, err := render.Snippet(sec, sn, interner, &captureSink{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return text
}

func TestSnippet_ValBinding(t *testing.T) {
	sn := snippet(instrument.ModeDefault, "val x = 1")
	sec := section(document.Statement{Binders: []document.Binder{binder("x", intVal(1))}})
	got := renderOne(t, sec, sn)
	want := "@ val x = 1\nx: Int = 1"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSnippet_SynthesizedBinder(t *testing.T) {
	sn := snippet(instrument.ModeDefault, "1 + 1")
	sec := section(document.Statement{Binders: []document.Binder{binder("res0", intVal(2))}})
	got := renderOne(t, sec, sn)
	want := "@ 1 + 1\nres0: Int = 2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSnippet_OutputNoBinder(t *testing.T) {
	sn := snippet(instrument.ModeDefault, `println("hi")`)
	sec := section(document.Statement{Output: "hi\n"})
	got := renderOne(t, sec, sn)
	want := "@ println(\"hi\")\nhi"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSnippet_OutputWithoutNewline(t *testing.T) {
	sn := snippet(instrument.ModeDefault, `print("x")`, "val a = 1")
	sec := section(
		document.Statement{Output: "x"},
		document.Statement{Binders: []document.Binder{binder("a", intVal(1))}},
	)
	got := renderOne(t, sec, sn)
	want := "@ print(\"x\")\nx\n@ val a = 1\na: Int = 1"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSnippet_MultipleBinders(t *testing.T) {
	sn := snippet(instrument.ModeDefault, "val (a, b) = (1, 2)")
	sec := section(document.Statement{Binders: []document.Binder{
		binder("a", intVal(1)),
		binder("b", intVal(2)),
	}})
	got := renderOne(t, sec, sn)
	want := "@ val (a, b) = (1, 2)\na: Int = 1\nb: Int = 2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSnippet_FailTypeError(t *testing.T) {
	sn := snippet(instrument.ModeFail, "val x: String = 1")
	sec := section(document.Statement{Binders: []document.Binder{
		binder("res0", probeVal(&vm.ProbeResult{
			Status: vm.ProbeTypeError,
			Text:   "val x: String = 1",
			Diags:  typeErrorDiags("cannot bind Int value to declared type String"),
		})),
	}})
	got := renderOne(t, sec, sn)
	want := "@ val x: String = 1\ncannot bind Int value to declared type String"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "=") && strings.Contains(got, "res0") {
		t.Errorf("fail render must not show a binder value line: %q", got)
	}
}

func TestSnippet_FailParseError(t *testing.T) {
	sn := snippet(instrument.ModeFail, "val b = )")
	sec := section(document.Statement{Binders: []document.Binder{
		binder("res0", probeVal(&vm.ProbeResult{
			Status: vm.ProbeParseError,
			Text:   "val b = )",
			Diags:  typeErrorDiags("expected an expression"),
		})),
	}})
	got := renderOne(t, sec, sn)
	want := "@ val b = )\nexpected an expression"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// A fail statement that compiles renders its inferred type and reports
// an error to the sink, without aborting the render.
func TestSnippet_FailUnexpectedlyCompiles(t *testing.T) {
	sn := snippet(instrument.ModeFail, "1 + 1")
	sec := section(document.Statement{Binders: []document.Binder{
		binder("res0", probeVal(&vm.ProbeResult{
			Status: vm.ProbeTypeChecked,
			Text:   "1 + 1",
			Label:  "Int",
		})),
	}})

	sink := &captureSink{}
	got, err := render.Snippet(sec, sn, interner, sink)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "@ 1 + 1\nres0: Int"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if len(sink.errs) != 1 || !strings.Contains(sink.errs[0], "1 + 1") {
		t.Errorf("sink errors = %v, want one mentioning the statement", sink.errs)
	}
}

func TestSnippet_FailNonProbeValue(t *testing.T) {
	sn := snippet(instrument.ModeFail, "1 + 1")
	sec := section(document.Statement{Binders: []document.Binder{
		binder("res0", intVal(2)),
	}})
	_, err := render.Snippet(sec, sn, interner, &captureSink{})
	if !errors.Is(err, render.ErrContractViolation) {
		t.Errorf("err = %v, want ErrContractViolation", err)
	}
}

func TestSnippet_FailBinderCount(t *testing.T) {
	sn := snippet(instrument.ModeFail, "1 + 1")
	sec := section(document.Statement{})
	_, err := render.Snippet(sec, sn, interner, &captureSink{})
	if !errors.Is(err, render.ErrContractViolation) {
		t.Errorf("err = %v, want ErrContractViolation", err)
	}
}

func TestSnippet_StatementCountMismatch(t *testing.T) {
	sn := snippet(instrument.ModeDefault, "val x = 1", "val y = 2")
	sec := section(document.Statement{})
	_, err := render.Snippet(sec, sn, interner, &captureSink{})
	if !errors.Is(err, render.ErrContractViolation) {
		t.Errorf("err = %v, want ErrContractViolation", err)
	}
}

func TestSnippet_Empty(t *testing.T) {
	got := renderOne(t, section(), snippet(instrument.ModeDefault))
	if got != "" {
		t.Errorf("empty snippet renders %q, want empty", got)
	}
}

func TestDocument_OrderAndCount(t *testing.T) {
	snippets := []instrument.Snippet{
		snippet(instrument.ModeDefault, "val a = 1"),
		snippet(instrument.ModeDefault, "a + 1"),
	}
	doc := document.RuntimeDocument{Sections: []document.Section{
		section(document.Statement{Binders: []document.Binder{binder("a", intVal(1))}}),
		section(document.Statement{Binders: []document.Binder{binder("res0", intVal(2))}}),
	}}

	texts, err := render.Document(doc, snippets, interner, &captureSink{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("got %d texts", len(texts))
	}
	if texts[0] != "@ val a = 1\na: Int = 1" || texts[1] != "@ a + 1\nres0: Int = 2" {
		t.Errorf("texts = %q", texts)
	}
}

func TestDocument_SectionCountMismatch(t *testing.T) {
	snippets := []instrument.Snippet{snippet(instrument.ModeDefault, "val a = 1")}
	_, err := render.Document(document.RuntimeDocument{}, snippets, interner, &captureSink{})
	if !errors.Is(err, render.ErrContractViolation) {
		t.Errorf("err = %v, want ErrContractViolation", err)
	}
}
