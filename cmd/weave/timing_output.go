package main

import (
	"fmt"
	"io"
	"time"

	"weave/internal/pipeline"
)

// stageVerbs maps pipeline stages to the past-tense labels used in the
// timing summary, in pipeline order.
var stageVerbs = []struct {
	stage pipeline.Stage
	verb  string
}{
	{pipeline.StageScan, "scanned"},
	{pipeline.StageParse, "parsed"},
	{pipeline.StageInstrument, "instrumented"},
	{pipeline.StageCompile, "compiled"},
	{pipeline.StageRun, "ran"},
	{pipeline.StageRender, "rendered"},
}

func aggregateTimings(results []pipeline.FileResult) pipeline.Timings {
	var total pipeline.Timings
	for _, res := range results {
		total.Merge(res.Timings)
	}
	return total
}

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	var printErr error
	for _, sv := range stageVerbs {
		if !timings.Has(sv.stage) {
			continue
		}
		_, printErr = fmt.Fprintf(out, "%s %.1f ms\n", sv.verb, toMillis(timings.Duration(sv.stage)))
		if printErr != nil {
			panic(printErr)
		}
	}
}

// printFileTimings prints the per-file phase breakdown collected by the
// engine. Degraded files keep whatever phases they got through.
func printFileTimings(out io.Writer, results []pipeline.FileResult) {
	if out == nil {
		return
	}
	for _, res := range results {
		if res.Timing.Empty() {
			continue
		}
		_, printErr := fmt.Fprintf(out, "== %s ==\n%s", res.Path, res.Timing.Summary())
		if printErr != nil {
			panic(printErr)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
