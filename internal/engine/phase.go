package engine

import (
	"time"

	"weave/internal/observ"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a render phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during RenderWithOptions.
type PhaseObserver func(PhaseEvent)

// phaseRun couples the optional timer with the optional observer so the
// render body marks each phase with a start call and a done call.
type phaseRun struct {
	timer    *observ.Timer
	observer PhaseObserver
	name     string
	idx      int
	start    time.Time
}

func startPhase(timer *observ.Timer, obs PhaseObserver, name string) *phaseRun {
	p := &phaseRun{timer: timer, observer: obs, name: name, idx: -1, start: time.Now()}
	if timer != nil {
		p.idx = timer.Begin(name)
	}
	if obs != nil {
		obs(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return p
}

func (p *phaseRun) done(note string) {
	if p.timer != nil && p.idx >= 0 {
		p.timer.End(p.idx, note)
	}
	if p.observer != nil {
		p.observer(PhaseEvent{Name: p.name, Status: PhaseEnd, Elapsed: time.Since(p.start)})
	}
}
