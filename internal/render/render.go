// Package render merges the runtime document with the parsed snippets
// into the final per-snippet text: echoed statements, captured output,
// binder lines, or the compile failures a fail snippet asserted.
package render

import (
	"errors"
	"fmt"
	"strings"

	"weave/internal/document"
	"weave/internal/instrument"
	"weave/internal/types"
	"weave/internal/vm"
)

// Each rendered statement opens with this marker.
const echoPrefix = "@ "

// ErrContractViolation reports a binder value outside its mode's closed
// set, or a runtime document whose shape does not match the parsed
// snippets. Both are pipeline defects, never user-facing diagnostics.
var ErrContractViolation = errors.New("runtime result violates the mode contract")

// ErrorSink receives renderer complaints that do not abort the render.
type ErrorSink interface {
	Error(msg string)
}

// Document renders every snippet of a completed run. The document must
// carry exactly one section per snippet, in input order.
func Document(doc document.RuntimeDocument, snippets []instrument.Snippet, typesIn *types.Interner, sink ErrorSink) ([]string, error) {
	if len(doc.Sections) != len(snippets) {
		return nil, fmt.Errorf("%w: %d sections for %d snippets",
			ErrContractViolation, len(doc.Sections), len(snippets))
	}
	out := make([]string, len(snippets))
	for i, sn := range snippets {
		text, err := Snippet(doc.Sections[i], sn, typesIn, sink)
		if err != nil {
			return nil, err
		}
		out[i] = text
	}
	return out, nil
}

// Snippet renders one section against its parsed fragment. Per
// statement: the echoed source, its captured output, then the binder
// lines its mode calls for.
func Snippet(sec document.Section, sn instrument.Snippet, typesIn *types.Interner, sink ErrorSink) (string, error) {
	frag := sn.Fragment
	if len(sec.Stmts) != len(frag.Stmts) {
		return "", fmt.Errorf("%w: %d runtime statements for %d parsed",
			ErrContractViolation, len(sec.Stmts), len(frag.Stmts))
	}

	var sb strings.Builder
	for i, st := range frag.Stmts {
		run := sec.Stmts[i]

		sb.WriteString(echoPrefix)
		sb.WriteString(st.Text)
		sb.WriteByte('\n')

		sb.WriteString(run.Output)
		ensureNewline(&sb)

		var err error
		if sn.Mode == instrument.ModeFail {
			err = writeFailBinder(&sb, st, run, sink)
		} else {
			writeBinders(&sb, run, typesIn)
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// writeBinders emits one "name: Type = value" line per recorded binder.
// Statements whose value was unit arrive with no binders and add no
// lines.
func writeBinders(sb *strings.Builder, run document.Statement, typesIn *types.Interner) {
	for _, b := range run.Binders {
		fmt.Fprintf(sb, "%s: %s = %s\n",
			b.Name, types.Label(typesIn, b.Value.TypeID), vm.FormatValue(b.Value))
	}
}

// writeFailBinder renders the single probe outcome of a fail statement.
// A statement that compiled is reported to the sink as an error, but its
// inferred type still renders so the user sees what went wrong.
func writeFailBinder(sb *strings.Builder, st instrument.Statement, run document.Statement, sink ErrorSink) error {
	if len(run.Binders) != 1 {
		return fmt.Errorf("%w: fail statement carries %d binders, want 1",
			ErrContractViolation, len(run.Binders))
	}
	b := run.Binders[0]
	if b.Value.Kind != vm.VKProbe || b.Value.Probe == nil {
		return fmt.Errorf("%w: fail binder %q holds %s, want a probe",
			ErrContractViolation, b.Name, b.Value.Kind)
	}

	probe := b.Value.Probe
	switch probe.Status {
	case vm.ProbeParseError, vm.ProbeTypeError:
		sb.WriteString(probe.Message())
		sb.WriteByte('\n')
	case vm.ProbeTypeChecked:
		if sink != nil {
			sink.Error(fmt.Sprintf("statement compiled in a fail snippet: %s", st.Text))
		}
		fmt.Fprintf(sb, "%s: %s\n", b.Name, probe.Label)
	default:
		return fmt.Errorf("%w: unknown probe status %d", ErrContractViolation, probe.Status)
	}
	return nil
}

// ensureNewline terminates the pending chunk so the next echo starts on
// a fresh line. Output that already ends with a newline stays verbatim.
func ensureNewline(sb *strings.Builder) {
	if s := sb.String(); len(s) > 0 && s[len(s)-1] != '\n' {
		sb.WriteByte('\n')
	}
}
