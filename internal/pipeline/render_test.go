package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"weave/internal/pipeline"
)

func writeDoc(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func render(t *testing.T, req *pipeline.RenderRequest) *pipeline.RenderResult {
	t.Helper()
	res, err := pipeline.Render(context.Background(), req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return res
}

func TestRenderSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.md", "# Demo\n\n```weave\nval x = 1\n```\n")

	res := render(t, &pipeline.RenderRequest{Paths: []string{path}})
	if res.Failed != 0 {
		t.Fatalf("failed = %d, log: %s", res.Failed, res.Files[0].Log)
	}
	f := res.Files[0]
	if !f.Rendered || !f.Changed {
		t.Fatalf("rendered=%v changed=%v", f.Rendered, f.Changed)
	}
	want := "# Demo\n\n```weave\n@ val x = 1\nx: Int = 1\n```\n"
	if f.Output != want {
		t.Errorf("output:\n%q\nwant:\n%q", f.Output, want)
	}
	if f.Snippets != 1 {
		t.Errorf("snippets = %d, want 1", f.Snippets)
	}
}

// A file whose program fails to compile degrades to its source text
// without touching the other files of the same run.
func TestRenderFailureIsPerFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeDoc(t, dir, "bad.md", "```weave\nval x: Int = \"s\"\n```\n")
	good := writeDoc(t, dir, "good.md", "```weave\nval y = 2\n```\n")

	res := render(t, &pipeline.RenderRequest{Paths: []string{bad, good}, Jobs: 2})
	if res.Failed != 1 {
		t.Fatalf("failed = %d, want 1", res.Failed)
	}

	badRes := res.Files[0]
	if !badRes.Failed || badRes.Rendered {
		t.Errorf("bad file: failed=%v rendered=%v", badRes.Failed, badRes.Rendered)
	}
	if badRes.Output != badRes.Source {
		t.Errorf("degraded file was modified:\n%q", badRes.Output)
	}
	if !strings.Contains(badRes.Log, "error") {
		t.Errorf("bad file log carries no error:\n%s", badRes.Log)
	}

	goodRes := res.Files[1]
	if goodRes.Failed || !goodRes.Rendered {
		t.Errorf("good file: failed=%v rendered=%v, log: %s", goodRes.Failed, goodRes.Rendered, goodRes.Log)
	}
	if !strings.Contains(goodRes.Output, "y: Int = 2") {
		t.Errorf("good output:\n%q", goodRes.Output)
	}
}

func TestRenderNoSnippets(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "plain.md", "just prose\n")

	res := render(t, &pipeline.RenderRequest{Paths: []string{path}})
	f := res.Files[0]
	if f.Failed {
		t.Fatalf("no-snippet file marked failed: %s", f.Log)
	}
	if f.Changed {
		t.Errorf("no-snippet file changed")
	}
	if !strings.Contains(f.Log, "no runnable snippets") {
		t.Errorf("log missing warning:\n%s", f.Log)
	}
}

func TestRenderMissingFile(t *testing.T) {
	res := render(t, &pipeline.RenderRequest{
		Paths: []string{filepath.Join(t.TempDir(), "absent.md")},
	})
	if res.Failed != 1 {
		t.Fatalf("failed = %d, want 1", res.Failed)
	}
	if !strings.Contains(res.Files[0].Log, "cannot read file") {
		t.Errorf("log:\n%s", res.Files[0].Log)
	}
}

func TestRenderManyFilesBoundedWorkers(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.md", "b.md", "c.md", "d.md", "e.md"} {
		paths = append(paths, writeDoc(t, dir, name, "```weave\nval n = 1\n```\n"))
	}

	res := render(t, &pipeline.RenderRequest{Paths: paths, Jobs: 2})
	if res.Failed != 0 {
		t.Fatalf("failed = %d", res.Failed)
	}
	for i, f := range res.Files {
		if f.Path != paths[i] {
			t.Errorf("result %d out of order: %s", i, f.Path)
		}
		if !strings.Contains(f.Output, "n: Int = 1") {
			t.Errorf("file %s not rendered:\n%q", f.Path, f.Output)
		}
	}
}

func TestRenderLibraryPrelude(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib")
	if err := os.MkdirAll(lib, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeDoc(t, lib, "helpers.wv", "fn double(n: Int) -> Int = n * 2\n")
	path := writeDoc(t, dir, "doc.md", "```weave\ndouble(21)\n```\n")

	res := render(t, &pipeline.RenderRequest{Paths: []string{path}, LibDir: lib})
	if res.Failed != 0 {
		t.Fatalf("failed, log: %s", res.Files[0].Log)
	}
	if !strings.Contains(res.Files[0].Output, "res0: Int = 42") {
		t.Errorf("output:\n%q", res.Files[0].Output)
	}
}

// Rendering already-rendered output must be a fixed point, so a second
// pass reports Changed == false.
func TestRenderIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.md", "```weave\nval x = 1\nx + 1\n```\n")

	first := render(t, &pipeline.RenderRequest{Paths: []string{path}})
	if first.Failed != 0 {
		t.Fatalf("first render failed: %s", first.Files[0].Log)
	}
	writeDoc(t, dir, "doc.md", first.Files[0].Output)

	second := render(t, &pipeline.RenderRequest{Paths: []string{path}})
	if second.Failed != 0 {
		t.Fatalf("second render failed: %s", second.Files[0].Log)
	}
	if second.Files[0].Changed {
		t.Errorf("second render changed the document:\n%q\nvs\n%q",
			second.Files[0].Output, first.Files[0].Output)
	}
}

func TestRenderTimings(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.md", "```weave\nval x = 1\n```\n")

	res := render(t, &pipeline.RenderRequest{Paths: []string{path}, EnableTimings: true})
	f := res.Files[0]
	if f.Timing.Empty() {
		t.Fatalf("no timing report")
	}
	for _, stage := range []pipeline.Stage{pipeline.StageScan, pipeline.StageCompile, pipeline.StageRun} {
		if !f.Timings.Has(stage) {
			t.Errorf("missing %s timing", stage)
		}
	}
}

func TestRenderProgressEvents(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.md", "```weave\nval x = 1\n```\n")

	ch := make(chan pipeline.Event, 128)
	render(t, &pipeline.RenderRequest{
		Paths:    []string{path},
		Progress: pipeline.ChannelSink{Ch: ch},
	})
	close(ch)

	var events []pipeline.Event
	for ev := range ch {
		events = append(events, ev)
	}
	if len(events) == 0 {
		t.Fatalf("no progress events")
	}
	if events[0].Status != pipeline.StatusQueued {
		t.Errorf("first event %+v, want queued", events[0])
	}
	last := events[len(events)-1]
	if last.Stage != pipeline.StageRender || last.Status != pipeline.StatusDone {
		t.Errorf("last event %+v, want render done", last)
	}
	seen := map[pipeline.Stage]bool{}
	for _, ev := range events {
		seen[ev.Stage] = true
	}
	for _, stage := range []pipeline.Stage{
		pipeline.StageScan, pipeline.StageParse, pipeline.StageInstrument,
		pipeline.StageCompile, pipeline.StageRun, pipeline.StageRender,
	} {
		if !seen[stage] {
			t.Errorf("no event for stage %s", stage)
		}
	}
}

func TestRenderCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.md", "```weave\nval x = 1\n```\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pipeline.Render(ctx, &pipeline.RenderRequest{Paths: []string{path}})
	if err == nil {
		t.Fatalf("want cancellation error")
	}
}
