// Package observ collects coarse phase timings for a render run.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase holds one timed slice of the pipeline, plus a free-form note
// such as "snippets=3".
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer records phases in the order they begin. Not safe for
// concurrent use; each render owns its own timer.
type Timer struct {
	phases []Phase
}

// NewTimer creates an empty timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin opens a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase at idx. Out-of-range indexes are ignored so
// callers can pass -1 when timing is disabled.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// PhaseReport — сериализуемый срез одной фазы.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report агрегирует фазы и общую длительность в миллисекундах.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Empty reports whether nothing was timed.
func (r Report) Empty() bool { return len(r.Phases) == 0 }

// Report converts the recorded phases into millisecond form.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	rep := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.Dur
		rep.Phases[i] = PhaseReport{
			Name:       p.Name,
			DurationMS: durationToMillis(p.Dur),
			Note:       p.Note,
		}
	}
	rep.TotalMS = durationToMillis(total)
	return rep
}

// Summary renders the report as indented text for plain console output.
func (t *Timer) Summary() string {
	return t.Report().Summary()
}

// Summary renders the phases one per line with a trailing total.
func (r Report) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-12s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // ")
			sb.WriteString(p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %8.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Millis converts a report duration back to time.Duration for callers
// aggregating stage totals.
func Millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
