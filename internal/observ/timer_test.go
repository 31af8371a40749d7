package observ_test

import (
	"strings"
	"testing"
	"time"

	"weave/internal/observ"
)

func TestTimerReport(t *testing.T) {
	tm := observ.NewTimer()
	idx := tm.Begin("compile")
	time.Sleep(time.Millisecond)
	tm.End(idx, "diags=0")

	rep := tm.Report()
	if len(rep.Phases) != 1 {
		t.Fatalf("phases = %d, want 1", len(rep.Phases))
	}
	p := rep.Phases[0]
	if p.Name != "compile" || p.Note != "diags=0" {
		t.Errorf("phase = %+v", p)
	}
	if p.DurationMS <= 0 {
		t.Errorf("duration = %v, want > 0", p.DurationMS)
	}
	if rep.TotalMS < p.DurationMS {
		t.Errorf("total %v < phase %v", rep.TotalMS, p.DurationMS)
	}
}

func TestTimerEndIgnoresBadIndex(t *testing.T) {
	tm := observ.NewTimer()
	tm.End(-1, "")
	tm.End(5, "")
	if !tm.Report().Empty() {
		t.Fatalf("report not empty")
	}
}

func TestSummaryListsPhases(t *testing.T) {
	tm := observ.NewTimer()
	tm.End(tm.Begin("parse"), "snippets=2")
	tm.End(tm.Begin("run"), "")

	out := tm.Summary()
	for _, want := range []string{"timings:", "parse", "snippets=2", "run", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
