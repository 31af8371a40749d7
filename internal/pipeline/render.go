package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"weave/internal/diag"
	"weave/internal/docscan"
	"weave/internal/engine"
	"weave/internal/observ"
	"weave/internal/source"
)

// DefaultMaxDiagnostics caps compile diagnostics per file unless the
// request overrides it.
const DefaultMaxDiagnostics = 64

// RenderRequest configures a multi-file render run.
type RenderRequest struct {
	Paths          []string
	Label          string // fence info word, docscan.DefaultLabel when empty
	LibDir         string
	Jobs           int
	MaxDiagnostics int
	Color          bool
	Quiet          bool
	EnableTimings  bool
	Progress       ProgressSink
}

// FileResult captures one document's render outcome. Output always
// holds a complete document: the substituted text on success, the
// source text when the render degraded or found nothing to run.
type FileResult struct {
	Path     string
	Doc      *docscan.Document
	Source   string
	Output   string
	Texts    []string // rendered text per snippet, nil when degraded
	Snippets int
	Rendered bool
	Changed  bool
	Failed   bool
	Log      string // captured console lines, print-ready
	Timings  Timings
	Timing   observ.Report
}

// RenderResult aggregates per-file outcomes in request order.
type RenderResult struct {
	Files  []FileResult
	Failed int
}

// Render renders every requested document. Markup problems, snippet
// diagnostics and runtime failures are recorded on the file's result;
// only defects and cancellation abort the run as a whole.
func Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return nil, fmt.Errorf("missing render request")
	}

	out := &RenderResult{Files: make([]FileResult, len(req.Paths))}
	if len(req.Paths) == 0 {
		return out, nil
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	workers := min(jobs, len(req.Paths))

	if req.Progress != nil {
		for _, path := range req.Paths {
			req.Progress.OnEvent(Event{File: path, Stage: StageScan, Status: StatusQueued})
		}
	}

	work := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(work)
		for i := range req.Paths {
			select {
			case work <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	// Один движок (и значит один драйвер) на воркера; файлы внутри
	// воркера рендерятся строго последовательно.
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			sink := &logBuffer{}
			log := &engine.ConsoleLogger{Out: sink, Err: sink, Quiet: req.Quiet}
			eng := engine.New(log, engine.Options{
				MaxDiagnostics: maxDiagnostics(req),
				Color:          req.Color,
			})
			if req.LibDir != "" {
				if err := eng.LoadLibrary(req.LibDir); err != nil {
					return fmt.Errorf("library %s: %w", req.LibDir, err)
				}
			}

			for i := range work {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				var buf bytes.Buffer
				sink.buf = &buf
				res, err := renderFile(eng, log, req, req.Paths[i])
				res.Log = buf.String()
				sink.buf = nil

				// Индекс уникален для файла, мьютекс не нужен.
				out.Files[i] = res
				if err != nil {
					return fmt.Errorf("%s: %w", req.Paths[i], err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	for i := range out.Files {
		if out.Files[i].Failed {
			out.Failed++
		}
	}
	return out, nil
}

// renderFile runs the scan-render-substitute sequence for one path.
// The returned error is reserved for defects; expected failures set
// res.Failed and are already logged.
func renderFile(eng *engine.Engine, log engine.Logger, req *RenderRequest, path string) (FileResult, error) {
	res := FileResult{Path: path}
	emit(req.Progress, Event{File: path, Stage: StageScan, Status: StatusWorking})
	scanStart := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error(fmt.Sprintf("%s: %v", diag.IOReadFailed.Title(), err))
		res.Failed = true
		emit(req.Progress, Event{File: path, Stage: StageScan, Status: StatusError, Err: err})
		return res, nil
	}

	input := source.NewFileInput(path, string(data))
	res.Source = input.Text()
	res.Output = res.Source

	bag := diag.NewBag(maxDiagnostics(req))
	doc, err := docscan.Scan(input, docscan.Options{
		Label:    req.Label,
		Reporter: &diag.BagReporter{Bag: bag},
	})
	if err != nil {
		return res, err
	}
	res.Doc = doc
	res.Snippets = len(doc.Blocks)
	res.Timings.Set(StageScan, time.Since(scanStart))

	if len(doc.Blocks) == 0 && !bag.HasErrors() {
		diag.ReportWarning(&diag.BagReporter{Bag: bag}, diag.DocNoSnippets,
			source.Span{}, "no runnable snippets").Emit()
	}
	logDocDiagnostics(log, input, bag)
	if bag.HasErrors() {
		res.Failed = true
		emit(req.Progress, Event{File: path, Stage: StageScan, Status: StatusError})
		return res, nil
	}
	emit(req.Progress, Event{File: path, Stage: StageScan, Status: StatusDone, Elapsed: time.Since(scanStart)})
	if len(doc.Blocks) == 0 {
		emit(req.Progress, Event{File: path, Stage: StageRender, Status: StatusDone})
		return res, nil
	}

	snippets := make([]engine.Snippet, len(doc.Blocks))
	for i, b := range doc.Blocks {
		snippets[i] = engine.Snippet{Input: b.Input, Mode: b.Mode}
	}

	obs := phaseObserver{sink: req.Progress, file: path}
	evaluated, timing, err := eng.RenderWithOptions(snippets, engine.RenderOptions{
		EnableTimings: req.EnableTimings,
		Observer:      obs.OnPhase,
	})
	res.Timing = timing
	recordPhaseTimings(&res.Timings, timing)
	if err != nil {
		if errors.Is(err, engine.ErrSnippetParse) {
			res.Failed = true
			emit(req.Progress, Event{File: path, Stage: StageParse, Status: StatusError, Err: err})
			return res, nil
		}
		return res, err
	}
	if evaluated.Empty() {
		res.Failed = true
		emit(req.Progress, Event{File: path, Stage: StageRender, Status: StatusError})
		return res, nil
	}

	output, err := docscan.Substitute(doc, evaluated.Texts)
	if err != nil {
		return res, err
	}
	res.Texts = evaluated.Texts
	res.Output = output
	res.Rendered = true
	res.Changed = output != res.Source
	emit(req.Progress, Event{File: path, Stage: StageRender, Status: StatusDone})
	return res, nil
}

// logDocDiagnostics routes document-level diagnostics to the logger
// with positions resolved against the document text.
func logDocDiagnostics(log engine.Logger, input *source.Input, bag *diag.Bag) {
	for _, d := range bag.Items() {
		loc := source.Loc{Input: input, Start: d.Primary.Start, End: d.Primary.End}
		switch d.Severity {
		case diag.SevError:
			log.ErrorAt(loc, errors.New(d.Message))
		case diag.SevWarning:
			log.Warning(fmt.Sprintf("%s: %s", loc, d.Message))
		default:
			log.Info(fmt.Sprintf("%s: %s", loc, d.Message))
		}
	}
}

// phaseObserver translates engine phase boundaries into progress
// events for one file.
type phaseObserver struct {
	sink ProgressSink
	file string
}

func (p phaseObserver) OnPhase(ev engine.PhaseEvent) {
	if p.sink == nil {
		return
	}
	stage, ok := stageOfPhase(ev.Name)
	if !ok {
		return
	}
	switch ev.Status {
	case engine.PhaseStart:
		p.sink.OnEvent(Event{File: p.file, Stage: stage, Status: StatusWorking})
	case engine.PhaseEnd:
		p.sink.OnEvent(Event{File: p.file, Stage: stage, Status: StatusDone, Elapsed: ev.Elapsed})
	}
}

func stageOfPhase(name string) (Stage, bool) {
	switch name {
	case "parse":
		return StageParse, true
	case "instrument":
		return StageInstrument, true
	case "compile":
		return StageCompile, true
	case "run":
		return StageRun, true
	case "render":
		return StageRender, true
	}
	return "", false
}

func recordPhaseTimings(t *Timings, rep observ.Report) {
	for _, p := range rep.Phases {
		if stage, ok := stageOfPhase(p.Name); ok {
			t.Add(stage, observ.Millis(p.DurationMS))
		}
	}
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

func maxDiagnostics(req *RenderRequest) int {
	if req.MaxDiagnostics > 0 {
		return req.MaxDiagnostics
	}
	return DefaultMaxDiagnostics
}

// logBuffer routes engine log output into the current file's buffer so
// one worker serves many files through a single logger.
type logBuffer struct {
	buf *bytes.Buffer
}

func (s *logBuffer) Write(p []byte) (int, error) {
	if s.buf == nil {
		return len(p), nil
	}
	return s.buf.Write(p)
}
