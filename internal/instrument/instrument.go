// Package instrument rewrites snippet statements into an equivalent
// program that reports sections, positions and bound values through the
// __w_ trace intrinsics while it runs.
//
// The rewrite is one linear pass. Each statement becomes a prefix
// (position call), the statement itself (padded to its original column,
// or rewritten into a named binding), and a suffix (bind calls and the
// statement close) appended on the same line after the sentinel.
package instrument

import (
	"fmt"
	"strings"

	"weave/internal/token"
)

// Sentinel separates user code from appended instrumentation on shared
// lines. Anything from the sentinel onward is stripped from diagnostic
// line previews.
const Sentinel = ";__w_"

// ReservedPrefix is the name prefix the toolchain rejects in user code.
const ReservedPrefix = "__w_"

// Options configures one instrumentation pass.
type Options struct {
	// StartCounter is the first candidate index for synthesized res<N>
	// names. The counter is document-wide and monotonic.
	StartCounter int
	// Reserved lists names the synthesizer must additionally avoid,
	// beyond those the snippets themselves declare (library prelude
	// definitions, typically).
	Reserved []string
}

// Result carries the instrumented program and the counter value after
// the last synthesized name.
type Result struct {
	Program    string
	EndCounter int
}

// Instrument rewrites all snippets into one program text, sections in
// input order. Synthesized names never collide with user declarations
// anywhere in the document.
func Instrument(snippets []Snippet, opts Options) Result {
	gen := newNameGen(opts.StartCounter)
	for _, name := range opts.Reserved {
		gen.reserve(name)
	}
	for i := range snippets {
		for _, name := range snippets[i].Fragment.DeclaredNames(nil) {
			gen.reserve(name)
		}
	}

	var sb strings.Builder
	for i := range snippets {
		writeSection(&sb, &snippets[i], gen)
	}
	return Result{Program: sb.String(), EndCounter: gen.next}
}

func writeSection(sb *strings.Builder, sn *Snippet, gen *nameGen) {
	sb.WriteString("__w_sect()\n")
	for i := range sn.Fragment.Stmts {
		st := &sn.Fragment.Stmts[i]
		if sn.Mode == ModeFail {
			writeProbe(sb, st, gen)
		} else {
			writeRun(sb, st, gen)
		}
	}
	sb.WriteString("__w_close()\n")
}

// writeRun emits a default-mode statement: position call, the statement
// at its original column, bind calls for every declared name.
func writeRun(sb *strings.Builder, st *Statement, gen *nameGen) {
	fmt.Fprintf(sb, "__w_pos(%d, %d, %d, %d)\n",
		st.Start.Line, st.Start.Col, st.End.Line, st.End.Col)

	bindings := st.Bindings
	if st.IsExpr {
		name := gen.fresh()
		fmt.Fprintf(sb, "val %s = %s", name, st.Text)
		bindings = []Binding{{Name: name, Line: st.Start.Line, Col: st.Start.Col}}
	} else {
		pad(sb, st.Start.Col)
		sb.WriteString(st.Text)
	}
	writeSuffix(sb, bindings)
}

// writeProbe emits a fail-mode statement: the original text compiles in
// isolation at run time, and the probe's outcome binds to a synthesized
// name. Declared names are discarded.
func writeProbe(sb *strings.Builder, st *Statement, gen *nameGen) {
	name := gen.fresh()
	fmt.Fprintf(sb, "val %s = __w_probe(%s)", name, token.Quote(st.Text))
	writeSuffix(sb, []Binding{{Name: name, Line: st.Start.Line, Col: st.Start.Col}})
}

func writeSuffix(sb *strings.Builder, bindings []Binding) {
	sb.WriteByte(' ')
	for _, b := range bindings {
		fmt.Fprintf(sb, `;__w_bind(%s, %s, %d, %d)`, token.Quote(b.Name), b.Name, b.Line, b.Col)
	}
	sb.WriteString(";__w_end()\n")
}

// pad keeps the statement's first line at its original column so
// in-statement columns stay valid without adjustment.
func pad(sb *strings.Builder, col uint32) {
	for i := uint32(1); i < col; i++ {
		sb.WriteByte(' ')
	}
}

// nameGen hands out res<N> names, skipping anything reserved.
type nameGen struct {
	next  int
	taken map[string]struct{}
}

func newNameGen(start int) *nameGen {
	return &nameGen{next: start, taken: make(map[string]struct{}, 16)}
}

func (g *nameGen) reserve(name string) {
	g.taken[name] = struct{}{}
}

func (g *nameGen) fresh() string {
	for {
		name := fmt.Sprintf("res%d", g.next)
		g.next++
		if _, clash := g.taken[name]; !clash {
			g.reserve(name)
			return name
		}
	}
}
