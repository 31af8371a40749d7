package engine_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"weave/internal/engine"
	"weave/internal/instrument"
	"weave/internal/source"
)

func newEngine() (*engine.Engine, *engine.CaptureLogger) {
	log := &engine.CaptureLogger{}
	return engine.New(log, engine.Options{}), log
}

func snippetOf(name, text string, mode instrument.Mode) engine.Snippet {
	return engine.Snippet{Input: source.NewVirtualInput(name, text), Mode: mode}
}

func renderTexts(t *testing.T, snippets ...engine.Snippet) ([]string, *engine.CaptureLogger) {
	t.Helper()
	e, log := newEngine()
	doc, err := e.Render(snippets)
	if err != nil {
		t.Fatalf("render: %v (errors logged: %v)", err, log.Errors)
	}
	if doc.Empty() {
		t.Fatalf("render came back empty, errors logged: %v", log.Errors)
	}
	return doc.Texts, log
}

func renderOne(t *testing.T, text string, mode instrument.Mode) string {
	t.Helper()
	texts, _ := renderTexts(t, snippetOf("snippet.wv", text, mode))
	return texts[0]
}

func TestRender_ValBinding(t *testing.T) {
	got := renderOne(t, "val x = 1", instrument.ModeDefault)
	want := "@ val x = 1\nx: Int = 1"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_BareExpression(t *testing.T) {
	got := renderOne(t, "1 + 1", instrument.ModeDefault)
	want := "@ 1 + 1\nres0: Int = 2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_FailTypeError(t *testing.T) {
	got := renderOne(t, "val x: String = 1", instrument.ModeFail)
	want := "@ val x: String = 1\ncannot bind Int value to declared type String"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_PrintOutput(t *testing.T) {
	got := renderOne(t, `println("hi")`, instrument.ModeDefault)
	want := "@ println(\"hi\")\nhi"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Names bound in one snippet stay visible in every later snippet of the
// same render.
func TestRender_CrossSnippetScope(t *testing.T) {
	texts, _ := renderTexts(t,
		snippetOf("one.wv", "val a = 1", instrument.ModeDefault),
		snippetOf("two.wv", "a + 1", instrument.ModeDefault),
	)
	if texts[0] != "@ val a = 1\na: Int = 1" {
		t.Errorf("first = %q", texts[0])
	}
	if texts[1] != "@ a + 1\nres0: Int = 2" {
		t.Errorf("second = %q", texts[1])
	}
}

func TestRender_ValueShapes(t *testing.T) {
	got := renderOne(t,
		"val f = 1.5\nval t = (1, \"a\")\nfn inc(n: Int) -> Int = n + 1",
		instrument.ModeDefault)
	want := "@ val f = 1.5\nf: Float = 1.5\n" +
		"@ val t = (1, \"a\")\nt: (Int, String) = (1, \"a\")\n" +
		"@ fn inc(n: Int) -> Int = n + 1\ninc: (Int) -> Int = <fn inc>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_OutputInterleaving(t *testing.T) {
	got := renderOne(t,
		"val a = 1\nprint(\"x\")\nprintln(a + 1)",
		instrument.ModeDefault)
	want := "@ val a = 1\na: Int = 1\n" +
		"@ print(\"x\")\nx\n" +
		"@ println(a + 1)\n2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_MultiLineStatement(t *testing.T) {
	got := renderOne(t, "val x = 1 +\n  2", instrument.ModeDefault)
	want := "@ val x = 1 +\n  2\nx: Int = 3"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_Destructuring(t *testing.T) {
	got := renderOne(t, "val (a, b) = (1, 2)", instrument.ModeDefault)
	want := "@ val (a, b) = (1, 2)\na: Int = 1\nb: Int = 2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_EmptySnippet(t *testing.T) {
	e, log := newEngine()
	doc, err := e.Render([]engine.Snippet{snippetOf("empty.wv", "", instrument.ModeDefault)})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if doc.Empty() {
		t.Fatal("one empty snippet still yields one rendered text")
	}
	if doc.Texts[0] != "" {
		t.Errorf("text = %q, want empty", doc.Texts[0])
	}
	if len(log.Errors) != 0 {
		t.Errorf("errors = %v", log.Errors)
	}
}

// A fail snippet that compiles renders its inferred type and logs an
// error; the render itself still succeeds.
func TestRender_FailUnexpectedlyCompiles(t *testing.T) {
	texts, log := renderTexts(t, snippetOf("oops.wv", "1 + 1", instrument.ModeFail))
	if texts[0] != "@ 1 + 1\nres0: Int" {
		t.Errorf("text = %q", texts[0])
	}
	if len(log.Errors) != 1 || !strings.Contains(log.Errors[0], "1 + 1") {
		t.Errorf("errors = %v", log.Errors)
	}
}

// The probe compiles the statement in isolation: document bindings are
// invisible, so referencing one is the compile failure being asserted.
func TestRender_FailProbeIsolated(t *testing.T) {
	texts, _ := renderTexts(t,
		snippetOf("one.wv", "val a = 1", instrument.ModeDefault),
		snippetOf("two.wv", "a + 1", instrument.ModeFail),
	)
	want := "@ a + 1\nundefined name \"a\""
	if texts[1] != want {
		t.Errorf("got %q, want %q", texts[1], want)
	}
}

// Probe quoting must round-trip escape sequences so the probed text
// compiles exactly as written.
func TestRender_FailProbeQuoting(t *testing.T) {
	got := renderOne(t, "val n: Int = \"a\\nb\"", instrument.ModeFail)
	want := "@ val n: Int = \"a\\nb\"\ncannot bind String value to declared type Int"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_CompileFailureEmptiesDocument(t *testing.T) {
	e, log := newEngine()
	doc, err := e.Render([]engine.Snippet{
		snippetOf("ok.wv", "val a = 1", instrument.ModeDefault),
		snippetOf("bad.wv", "val x: String = 1", instrument.ModeDefault),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !doc.Empty() {
		t.Errorf("document should be empty, got %q", doc.Texts)
	}
	if len(log.Errors) == 0 {
		t.Fatal("expected logged compile errors")
	}
	joined := strings.Join(log.Errors, "\n")
	if !strings.Contains(joined, "cannot bind Int value to declared type String") {
		t.Errorf("errors = %v", log.Errors)
	}
	if strings.Contains(joined, "__w_") {
		t.Errorf("instrumentation leaked into logged diagnostics:\n%s", joined)
	}
}

// Any runtime failure empties the whole document, including sections
// that had already completed.
func TestRender_RuntimeFailureAllOrNothing(t *testing.T) {
	e, log := newEngine()
	doc, err := e.Render([]engine.Snippet{
		snippetOf("ok.wv", "val a = 1", instrument.ModeDefault),
		snippetOf("boom.wv", "val b = 1 / 0", instrument.ModeDefault),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !doc.Empty() {
		t.Errorf("document should be empty, got %q", doc.Texts)
	}
	if len(log.Errors) != 1 {
		t.Fatalf("errors = %v", log.Errors)
	}
	if !strings.Contains(log.Errors[0], "division by zero") {
		t.Errorf("error = %q", log.Errors[0])
	}
	if !strings.Contains(log.Errors[0], "boom.wv:1:1") {
		t.Errorf("error should locate the failing statement, got %q", log.Errors[0])
	}
}

// A failing snippet sliced out of a document reports the failure in
// document coordinates.
func TestRender_FailureMapsToDocument(t *testing.T) {
	docText := "# Title\n\n```weave\nval x = 1 / 0\n```\n"
	body := "val x = 1 / 0\n"
	start := strings.Index(docText, body)
	if start < 0 {
		t.Fatal("fixture broke")
	}
	docInput := source.NewFileInput("doc.md", docText)
	slice, err := docInput.Slice(uint32(start), uint32(start+len(body)))
	if err != nil {
		t.Fatalf("slice: %v", err)
	}

	e, log := newEngine()
	res, err := e.Render([]engine.Snippet{{Input: slice, Mode: instrument.ModeDefault}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !res.Empty() {
		t.Errorf("expected empty document")
	}
	if len(log.Errors) != 1 || !strings.Contains(log.Errors[0], "doc.md:4:1") {
		t.Errorf("errors = %v, want position doc.md:4:1", log.Errors)
	}
}

func TestRender_ParseFailureAborts(t *testing.T) {
	e, log := newEngine()
	_, err := e.Render([]engine.Snippet{snippetOf("bad.wv", "val = 1", instrument.ModeDefault)})
	if !errors.Is(err, engine.ErrSnippetParse) {
		t.Fatalf("err = %v, want ErrSnippetParse", err)
	}
	if len(log.Errors) == 0 {
		t.Error("expected the parse diagnostics to be logged")
	}
}

func TestRender_Idempotent(t *testing.T) {
	snippets := func() []engine.Snippet {
		return []engine.Snippet{
			snippetOf("one.wv", "val a = 2\nprintln(a * 3)", instrument.ModeDefault),
			snippetOf("two.wv", "a + 4", instrument.ModeDefault),
		}
	}

	e1, _ := newEngine()
	first, err := e1.Render(snippets())
	if err != nil {
		t.Fatalf("first render: %v", err)
	}

	e2, _ := newEngine()
	second, err := e2.Render(snippets())
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if strings.Join(first.Texts, "\x00") != strings.Join(second.Texts, "\x00") {
		t.Errorf("fresh-engine renders differ:\n%q\n%q", first.Texts, second.Texts)
	}

	// The same engine renders again without contamination.
	third, err := e1.Render(snippets())
	if err != nil {
		t.Fatalf("third render: %v", err)
	}
	if strings.Join(first.Texts, "\x00") != strings.Join(third.Texts, "\x00") {
		t.Errorf("driver reuse changed the output:\n%q\n%q", first.Texts, third.Texts)
	}
}

func writeLibrary(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRender_LibraryPrelude(t *testing.T) {
	dir := writeLibrary(t, map[string]string{
		"helpers.wv": "fn double(n: Int) -> Int = n * 2\nval base = 10\n",
	})

	e, log := newEngine()
	if err := e.LoadLibrary(dir); err != nil {
		t.Fatalf("load library: %v", err)
	}
	doc, err := e.Render([]engine.Snippet{snippetOf("s.wv", "double(base)", instrument.ModeDefault)})
	if err != nil {
		t.Fatalf("render: %v (%v)", err, log.Errors)
	}
	want := "@ double(base)\nres0: Int = 20"
	if doc.Texts[0] != want {
		t.Errorf("got %q, want %q", doc.Texts[0], want)
	}
}

// Library names count as taken when synthesizing binder names.
func TestRender_LibraryNamesReserved(t *testing.T) {
	dir := writeLibrary(t, map[string]string{
		"lib.wv": "val res0 = 7\n",
	})

	e, _ := newEngine()
	if err := e.LoadLibrary(dir); err != nil {
		t.Fatalf("load library: %v", err)
	}
	doc, err := e.Render([]engine.Snippet{snippetOf("s.wv", "1 + 1", instrument.ModeDefault)})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "@ 1 + 1\nres1: Int = 2"
	if doc.Texts[0] != want {
		t.Errorf("got %q, want %q", doc.Texts[0], want)
	}
}

func TestRender_LibraryParseError(t *testing.T) {
	dir := writeLibrary(t, map[string]string{
		"broken.wv": "val = nope\n",
	})
	e, _ := newEngine()
	if err := e.LoadLibrary(dir); !errors.Is(err, engine.ErrSnippetParse) {
		t.Errorf("err = %v, want ErrSnippetParse", err)
	}
}

func TestRender_LibraryMissingDir(t *testing.T) {
	e, _ := newEngine()
	if err := e.LoadLibrary(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
