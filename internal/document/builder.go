package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"weave/internal/vm"
)

// ErrCallbackOrder reports instrumented code driving the builder out of
// the strict document > section > statement nesting.
var ErrCallbackOrder = errors.New("trace callback out of order")

// Builder accumulates a RuntimeDocument from the trace callbacks of one
// in-flight execution. It implements every vm.Host method except Probe;
// the engine supplies that half. One builder per execution, never
// shared.
type Builder struct {
	sections []Section
	stmts    []Statement

	out bytes.Buffer

	pending     Statement
	stmtActive  bool
	sectionOpen bool

	lastPos *Pos
	defect  error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BeginSection opens the next section.
func (b *Builder) BeginSection() {
	if b.sectionOpen {
		b.fail("begin-section inside an open section")
		return
	}
	b.sectionOpen = true
	b.stmts = nil
	// A stale position from an earlier section would mislocate a failure
	// that happens before this section records one.
	b.lastPos = nil
	// Prints from code that ran outside any section belong to no
	// statement and are dropped here.
	b.out.Reset()
}

// EndSection seals the open section.
func (b *Builder) EndSection() {
	if !b.sectionOpen {
		b.fail("end-section without an open section")
		return
	}
	if b.stmtActive {
		b.fail("end-section with an unfinished statement")
		return
	}
	b.sections = append(b.sections, Section{Stmts: b.stmts})
	b.stmts = nil
	b.sectionOpen = false
}

// RecordPosition stores the next statement's original range.
func (b *Builder) RecordPosition(startLine, startCol, endLine, endCol int) {
	if !b.sectionOpen {
		b.fail("position recorded outside a section")
		return
	}
	if b.stmtActive && b.pending.Pos != nil {
		b.fail("position recorded twice for one statement")
		return
	}
	pos := &Pos{StartLine: startLine, StartCol: startCol, EndLine: endLine, EndCol: endCol}
	b.stmtActive = true
	b.pending.Pos = pos
	b.lastPos = pos
}

// AddBinder appends one binder to the current statement. Unit values
// carry nothing bindable and are skipped.
func (b *Builder) AddBinder(name string, value vm.Value, line, col int) {
	if !b.sectionOpen {
		b.fail("binder recorded outside a section")
		return
	}
	b.stmtActive = true
	if value.IsUnit() {
		return
	}
	b.pending.Binders = append(b.pending.Binders, Binder{
		Name:  name,
		Value: value,
		Line:  line,
		Col:   col,
	})
}

// EndStatement seals the current statement, claiming the output printed
// since the previous seal.
func (b *Builder) EndStatement() {
	if !b.sectionOpen {
		b.fail("end-statement outside a section")
		return
	}
	b.pending.Output = b.out.String()
	b.out.Reset()
	b.stmts = append(b.stmts, b.pending)
	b.pending = Statement{}
	b.stmtActive = false
}

// Stdout is the sink instrumented programs print to.
func (b *Builder) Stdout() io.Writer {
	return &b.out
}

// Build finalizes the execution. A nil runErr yields the accumulated
// document. A *vm.RuntimeError yields an empty document plus a failure
// locating it. Any other runErr, and any callback-order defect, comes
// back as err: those are bugs, not user-facing results.
func (b *Builder) Build(runErr error) (RuntimeDocument, *PositionedFailure, error) {
	if b.defect != nil {
		return RuntimeDocument{}, nil, b.defect
	}

	var rerr *vm.RuntimeError
	switch {
	case runErr == nil:
		if b.sectionOpen {
			return RuntimeDocument{}, nil, fmt.Errorf("%w: execution ended with an open section", ErrCallbackOrder)
		}
		return RuntimeDocument{Sections: b.sections}, nil, nil
	case errors.As(runErr, &rerr):
		return RuntimeDocument{}, &PositionedFailure{
			Section: b.activeSection(),
			Pos:     b.lastPos,
			Err:     rerr,
		}, nil
	default:
		return RuntimeDocument{}, nil, runErr
	}
}

// activeSection is the index the failing statement belongs to: the open
// section, or the first one when the program failed before opening any.
func (b *Builder) activeSection() int {
	if b.sectionOpen {
		return len(b.sections)
	}
	if len(b.sections) > 0 {
		return len(b.sections) - 1
	}
	return 0
}

func (b *Builder) fail(detail string) {
	if b.defect == nil {
		b.defect = fmt.Errorf("%w: %s", ErrCallbackOrder, detail)
	}
}
