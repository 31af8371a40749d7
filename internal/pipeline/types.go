// Package pipeline renders a batch of markdown documents, fanning the
// files out over a bounded worker pool with one engine per worker.
package pipeline

import "time"

// Stage describes a high-level phase of rendering one document.
type Stage string

const (
	// StageScan is fence discovery in the markdown source.
	StageScan Stage = "scan"
	// StageParse is snippet parsing.
	StageParse Stage = "parse"
	// StageInstrument is program assembly from parsed snippets.
	StageInstrument Stage = "instrument"
	// StageCompile is the toolchain compile of the assembled program.
	StageCompile Stage = "compile"
	// StageRun is program execution.
	StageRun Stage = "run"
	// StageRender is per-snippet text production.
	StageRender Stage = "render"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is in progress.
	StatusWorking Status = "working"
	// StatusDone indicates the stage finished.
	StatusDone Status = "done"
	// StatusError indicates the file failed.
	StatusError Status = "error"
)

// Event reports progress for one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe
// for concurrent use; workers emit from their own goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds per-stage durations for one file.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Add accumulates dur into the stage's recorded duration.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] += dur
}

// Merge accumulates every stage of other into t.
func (t *Timings) Merge(other Timings) {
	if t == nil {
		return
	}
	for stage, dur := range other.stages {
		t.Add(stage, dur)
	}
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
