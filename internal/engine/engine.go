// Package engine orchestrates a render call: parse the snippets,
// instrument them into one program, compile and execute it against the
// embedded toolchain, and merge the runtime result back into
// per-snippet text.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"weave/internal/diag"
	"weave/internal/diagfmt"
	"weave/internal/document"
	"weave/internal/instrument"
	"weave/internal/observ"
	"weave/internal/render"
	"weave/internal/source"
	"weave/internal/toolchain"
	"weave/internal/vm"
)

// ErrSnippetParse aborts a render whose Default-mode snippet does not
// parse into statements.
var ErrSnippetParse = errors.New("snippet does not parse")

// Snippet is one fenced block to execute.
type Snippet struct {
	Input *source.Input
	Mode  instrument.Mode
}

// EvaluatedDocument is the outcome of one render: one rendered text per
// input snippet, in input order. An empty document signals "leave every
// snippet as written"; compile and runtime failures degrade to it after
// logging, regardless of how many snippets had already succeeded.
type EvaluatedDocument struct {
	Texts []string
}

// Empty reports whether the render produced nothing to substitute.
func (d EvaluatedDocument) Empty() bool {
	return len(d.Texts) == 0
}

// Options tune one engine.
type Options struct {
	// MaxDiagnostics caps the compile diagnostics kept per render.
	MaxDiagnostics int
	// Color enables colored diagnostic previews in log output.
	Color bool
}

// Engine runs render calls. One engine owns one compiler driver, so a
// single engine must not render concurrently; give each worker its own.
type Engine struct {
	driver  *toolchain.Driver
	log     Logger
	opts    Options
	prelude prelude
}

// New builds an engine. A nil logger discards everything.
func New(log Logger, opts Options) *Engine {
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{
		driver: toolchain.NewDriver(opts.MaxDiagnostics),
		log:    log,
		opts:   opts,
	}
}

// RenderOptions tune one render call.
type RenderOptions struct {
	// EnableTimings collects per-phase durations into the returned
	// report.
	EnableTimings bool
	// Observer receives phase boundaries as the render progresses.
	Observer PhaseObserver
}

// Render executes the snippets and returns their rendered texts. The
// returned error reports defects and unusable inputs; user-level
// failures (snippet code that does not compile, runtime failures) are
// logged and yield an empty document instead.
func (e *Engine) Render(snippets []Snippet) (EvaluatedDocument, error) {
	doc, _, err := e.RenderWithOptions(snippets, RenderOptions{})
	return doc, err
}

// RenderWithOptions is Render with phase observation and timing
// collection. The report is zero unless EnableTimings is set.
func (e *Engine) RenderWithOptions(snippets []Snippet, opts RenderOptions) (EvaluatedDocument, observ.Report, error) {
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	report := func() observ.Report {
		if timer == nil {
			return observ.Report{}
		}
		return timer.Report()
	}

	ph := startPhase(timer, opts.Observer, "parse")
	parsed, err := e.parseAll(snippets)
	ph.done(fmt.Sprintf("snippets=%d", len(snippets)))
	if err != nil {
		return EvaluatedDocument{}, report(), err
	}

	ph = startPhase(timer, opts.Observer, "instrument")
	res := instrument.Instrument(parsed, instrument.Options{Reserved: e.prelude.names})
	program := e.prelude.text + res.Program
	ph.done(fmt.Sprintf("bytes=%d", len(program)))

	ph = startPhase(timer, opts.Observer, "compile")
	compiled := e.driver.Compile(program)
	ph.done(fmt.Sprintf("diags=%d", compiled.Bag.Len()))
	e.logCompileDiagnostics(compiled)
	if !compiled.Ok() {
		return EvaluatedDocument{}, report(), nil
	}

	ph = startPhase(timer, opts.Observer, "run")
	builder := document.NewBuilder()
	runErr := compiled.Unit.Run(&runHost{Builder: builder})
	doc, failure, err := builder.Build(runErr)
	ph.done("")
	if err != nil {
		return EvaluatedDocument{}, report(), err
	}
	if failure != nil {
		loc := MapPosition(failure.Section, failure.Pos, inputsOf(snippets))
		e.log.ErrorAt(loc, failure.Err)
		return EvaluatedDocument{}, report(), nil
	}

	ph = startPhase(timer, opts.Observer, "render")
	texts, err := render.Document(doc, parsed, e.driver.Types(), e.log)
	ph.done(fmt.Sprintf("sections=%d", len(doc.Sections)))
	if err != nil {
		return EvaluatedDocument{}, report(), err
	}
	return EvaluatedDocument{Texts: texts}, report(), nil
}

// parseAll turns the inputs into instrumentable fragments. Fail-mode
// snippets are split lexically and may be arbitrarily broken; a
// Default-mode snippet that does not parse aborts the whole render.
func (e *Engine) parseAll(snippets []Snippet) ([]instrument.Snippet, error) {
	parsed := make([]instrument.Snippet, len(snippets))
	for i, sn := range snippets {
		if sn.Input == nil {
			return nil, fmt.Errorf("snippet %d has no input", i)
		}
		if sn.Mode == instrument.ModeFail {
			parsed[i] = instrument.Snippet{Fragment: instrument.SplitFragment(sn.Input), Mode: sn.Mode}
			continue
		}
		bag := diag.NewBag(16)
		frag, ok := instrument.ParseFragment(sn.Input, &diag.BagReporter{Bag: bag})
		if !ok {
			e.logSnippetDiagnostics(sn.Input, bag)
			return nil, fmt.Errorf("%w: %s", ErrSnippetParse, sn.Input.Name())
		}
		parsed[i] = instrument.Snippet{Fragment: frag, Mode: sn.Mode}
	}
	return parsed, nil
}

// logSnippetDiagnostics reports a snippet's parse errors at their
// position in the underlying document.
func (e *Engine) logSnippetDiagnostics(in *source.Input, bag *diag.Bag) {
	for _, d := range bag.Items() {
		if d.Severity != diag.SevError {
			continue
		}
		loc := translate(in, d.Primary.Start, d.Primary.End)
		e.log.ErrorAt(loc, errors.New(d.Message))
	}
}

// logCompileDiagnostics routes compile diagnostics to the logger by
// severity. Positions stay in instrumented-program coordinates; the
// preview lines have the instrumentation suffix trimmed off.
func (e *Engine) logCompileDiagnostics(res *toolchain.CompileResult) {
	opts := diagfmt.PrettyOpts{
		Color:      e.opts.Color,
		TrimMarker: instrument.Sentinel,
	}
	var buf bytes.Buffer
	for _, d := range res.Bag.Items() {
		buf.Reset()
		diagfmt.PrettyOne(&buf, d, res.FileSet, opts)
		msg := strings.TrimRight(buf.String(), "\n")
		switch d.Severity {
		case diag.SevError:
			e.log.Error(msg)
		case diag.SevWarning:
			e.log.Warning(msg)
		default:
			e.log.Info(msg)
		}
	}
}

func inputsOf(snippets []Snippet) []*source.Input {
	ins := make([]*source.Input, len(snippets))
	for i, sn := range snippets {
		ins[i] = sn.Input
	}
	return ins
}

// runHost composes the document builder with the probe compiler: the
// builder takes the section and binder callbacks, probes go to an
// isolated front end.
type runHost struct {
	*document.Builder
}

func (h *runHost) Probe(text string) *vm.ProbeResult {
	return toolchain.Check(text)
}
